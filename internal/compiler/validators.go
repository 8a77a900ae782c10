package compiler

import (
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// AllVariablesInConfig validates that every attribute node references by
// name has already been registered in cfg. Intended to run before
// AssignVariableID, since GetIDForAttr would otherwise silently register
// an unknown attribute.
func AllVariablesInConfig(cfg *interner.Config, node *expr.Node) bool {
	ok := true
	walkAttrNames(node, func(name string) {
		if !cfg.VarExists(name) {
			ok = false
		}
	})
	return ok
}

// AllBoundedStringsValid checks every EQ-to-string predicate: if the
// attribute's string domain is bounded, the literal must either already be
// interned or the interner must have capacity remaining
// (count+1 < max). Otherwise the expression must be rejected before
// compilation.
func AllBoundedStringsValid(cfg *interner.Config, node *expr.Node) bool {
	ok := true
	expr.Walk(node, func(n *expr.Node) {
		if !ok || n.Tag() != expr.TagEquality {
			return
		}
		eq := n.Equality
		if eq.Op != expr.EQ || eq.Val.Kind != value.String {
			return
		}
		if !boundedStringOK(cfg, eq.AttrName, eq.Val.Raw) {
			ok = false
		}
	})
	return ok
}

func boundedStringOK(cfg *interner.Config, attrName, literal string) bool {
	varID, err := cfg.AttrVarID(attrName)
	if err != nil {
		// Not yet registered: AllVariablesInConfig is responsible for
		// rejecting this case; treat it as vacuously valid here.
		return true
	}
	domain, err := cfg.Domain(varID)
	if err != nil {
		return true
	}
	if !domain.Bound.StringBounded {
		return true
	}
	if cfg.IsStringInterned(varID, literal) {
		return true
	}
	return cfg.StringCount(varID)+1 < domain.Bound.MaxCardinality
}

// walkAttrNames calls visit once per textual attribute name node
// references (before AssignVariableID has replaced names with ids).
func walkAttrNames(node *expr.Node, visit func(name string)) {
	expr.Walk(node, func(n *expr.Node) {
		switch n.Tag() {
		case expr.TagNumericCompare:
			visit(n.NumericCompare.AttrName)
		case expr.TagEquality:
			visit(n.Equality.AttrName)
		case expr.TagBool:
			if n.Bool.Op == expr.VARIABLE {
				visit(n.Bool.AttrName)
			}
		case expr.TagSet:
			s := n.Set
			if s.LeftIsVar {
				visit(s.LeftName)
			} else {
				visit(s.RightName)
			}
		case expr.TagList:
			visit(n.List.AttrName)
		case expr.TagSpecial:
			if sm := n.Special.String; sm != nil {
				visit(sm.AttrName)
			}
		}
	})
}
