package compiler

import (
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/predmap"
)

// AssignPredID delegates to pm.AssignPredID, returning the canonical node
// (a deep clone of node if this is a newly-seen structural key, or the
// existing representative if an equal predicate was already compiled).
func AssignPredID(pm *predmap.Map, node *expr.Node) *expr.Node {
	return pm.AssignPredID(node)
}
