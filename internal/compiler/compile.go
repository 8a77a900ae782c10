package compiler

import (
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/predmap"
)

// Compile chains the two pre-compile validators and the three compiler
// passes in the order spec §4.3/§4.6 implies: validate, then
// assign_variable_id, assign_str_id, assign_pred_id. It is a convenience
// over calling each step separately — every sub-pass remains independently
// exported and independently idempotent; this wrapper adds no new
// semantics.
func Compile(cfg *interner.Config, pm *predmap.Map, node *expr.Node) (*expr.Node, error) {
	if err := expr.ValidateSetSides(node); err != nil {
		return nil, err
	}
	if !AllVariablesInConfig(cfg, node) {
		return nil, ValidationFailed("expression references an attribute not registered in the config")
	}
	if !AllBoundedStringsValid(cfg, node) {
		return nil, ValidationFailed("expression exceeds a bounded string attribute's interning capacity")
	}

	AssignVariableID(cfg, node)
	if err := AssignStrID(cfg, node); err != nil {
		return nil, err
	}
	return AssignPredID(pm, node), nil
}
