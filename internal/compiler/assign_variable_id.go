// Package compiler holds the three passes spec §4.3 runs over a freshly
// parsed tree before it enters the enclosing index — assign_variable_id,
// assign_str_id, assign_pred_id — plus the two pre-compile validators and a
// Compile convenience wrapper chaining all five.
package compiler

import (
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// AssignVariableID replaces every textual attribute reference in node with
// its interned variable id, recursing through Bool combinators. For Set
// expressions only the variable side is assigned. Pure aside from
// appending fresh attributes to cfg; safe to run twice (GetIDForAttr is
// idempotent).
func AssignVariableID(cfg *interner.Config, node *expr.Node) {
	if node == nil {
		return
	}

	switch node.Tag() {
	case expr.TagNumericCompare:
		n := node.NumericCompare
		n.AttrVar = cfg.GetIDForAttr(n.AttrName, interner.AttrDomain{ValueType: n.Val.Kind})

	case expr.TagEquality:
		n := node.Equality
		n.AttrVar = cfg.GetIDForAttr(n.AttrName, interner.AttrDomain{ValueType: n.Val.Kind})

	case expr.TagBool:
		b := node.Bool
		switch b.Op {
		case expr.AND, expr.OR:
			AssignVariableID(cfg, b.LHS)
			AssignVariableID(cfg, b.RHS)
		case expr.NOT:
			AssignVariableID(cfg, b.Child)
		case expr.VARIABLE:
			b.AttrVar = cfg.GetIDForAttr(b.AttrName, interner.AttrDomain{ValueType: value.Bool})
		}

	case expr.TagSet:
		s := node.Set
		if s.LeftIsVar {
			s.LeftVar = cfg.GetIDForAttr(s.LeftName, interner.AttrDomain{ValueType: scalarKindOfList(s.RightLit.Kind)})
		} else {
			s.RightVar = cfg.GetIDForAttr(s.RightName, interner.AttrDomain{ValueType: listKindOfScalar(s.LeftLit.Kind)})
		}

	case expr.TagList:
		n := node.List
		n.AttrVar = cfg.GetIDForAttr(n.AttrName, interner.AttrDomain{ValueType: n.Val.Kind})

	case expr.TagSpecial:
		if sm := node.Special.String; sm != nil {
			sm.AttrVar = cfg.GetIDForAttr(sm.AttrName, interner.AttrDomain{ValueType: value.String})
		}
	}
}

// scalarKindOfList returns the scalar Kind an attribute must have to be
// compared, element-wise, against a list of listKind (IntList -> Int64,
// StringList -> String).
func scalarKindOfList(listKind value.Kind) value.Kind {
	if listKind == value.StringList {
		return value.String
	}
	return value.Int64
}

// listKindOfScalar returns the list Kind an attribute must have to be
// searched for a literal of scalarKind (Int64 -> IntList, String ->
// StringList).
func listKindOfScalar(scalarKind value.Kind) value.Kind {
	if scalarKind == value.String {
		return value.StringList
	}
	return value.IntList
}
