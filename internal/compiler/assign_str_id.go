package compiler

import (
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// AssignStrID interns every string literal in node under its owning
// attribute and stamps the Value's VarID/StrID fields. For Set expressions
// the owning attribute is whichever side is the variable; for frequency
// caps the namespace is interned under the reserved frequency_caps
// attribute. Must run after AssignVariableID. Safe to run twice.
func AssignStrID(cfg *interner.Config, node *expr.Node) error {
	if node == nil {
		return nil
	}

	switch node.Tag() {
	case expr.TagEquality:
		n := node.Equality
		if n.Val.Kind == value.String {
			if err := internString(cfg, n.AttrVar, &n.Val); err != nil {
				return err
			}
		}

	case expr.TagBool:
		b := node.Bool
		switch b.Op {
		case expr.AND, expr.OR:
			if err := AssignStrID(cfg, b.LHS); err != nil {
				return err
			}
			return AssignStrID(cfg, b.RHS)
		case expr.NOT:
			return AssignStrID(cfg, b.Child)
		}

	case expr.TagSet:
		s := node.Set
		owner := s.LeftVar
		if s.RightIsVar {
			owner = s.RightVar
		}
		if !s.LeftIsVar && s.LeftLit.Kind == value.String {
			if err := internString(cfg, owner, &s.LeftLit); err != nil {
				return err
			}
		}
		if !s.RightIsVar {
			if err := internStringList(cfg, owner, &s.RightLit); err != nil {
				return err
			}
		}

	case expr.TagList:
		n := node.List
		if n.Val.Kind == value.StringList {
			if err := internStringList(cfg, n.AttrVar, &n.Val); err != nil {
				return err
			}
		}

	case expr.TagSpecial:
		if fc := node.Special.FrequencyCap; fc != nil {
			nsVar := cfg.FrequencyCapsVarID()
			id, err := cfg.GetIDForString(nsVar, fc.Namespace)
			if err != nil {
				return err
			}
			fc.NamespaceStrID = id
		}
	}

	return nil
}

func internString(cfg *interner.Config, attrVar int32, v *value.Value) error {
	id, err := cfg.GetIDForString(attrVar, v.Raw)
	if err != nil {
		return err
	}
	v.VarID = attrVar
	v.StrID = id
	return nil
}

func internStringList(cfg *interner.Config, attrVar int32, v *value.Value) error {
	if v.Kind != value.StringList {
		return nil
	}
	for i := range v.StringListVal {
		id, err := cfg.GetIDForString(attrVar, v.StringListVal[i].Raw)
		if err != nil {
			return err
		}
		v.StringListVal[i].VarID = attrVar
		v.StringListVal[i].StrID = id
	}
	return nil
}
