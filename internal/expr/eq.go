package expr

import "github.com/ritamzico/bexpr/internal/value"

// Eq is eq_expr: strict structural equality by tag and payload. Numeric and
// integer values compare by exact equality; floats use value.FeqFloat.
// Strings compare by (VarID, StrID). Lists compare by length then
// element-wise equality in order. Bool combinators compare by op then
// recursively. Special predicates compare every payload field, with
// pattern strings compared lexically.
//
// The predicate map guarantees Eq(a,b) => a.ID == b.ID once both have been
// compiled against the same Config.
func Eq(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag() != b.Tag() {
		return false
	}

	switch a.Tag() {
	case TagNumericCompare:
		x, y := a.NumericCompare, b.NumericCompare
		return x.Op == y.Op && x.AttrVar == y.AttrVar && valueEq(x.Val, y.Val)
	case TagEquality:
		x, y := a.Equality, b.Equality
		return x.Op == y.Op && x.AttrVar == y.AttrVar && valueEq(x.Val, y.Val)
	case TagBool:
		x, y := a.Bool, b.Bool
		if x.Op != y.Op {
			return false
		}
		switch x.Op {
		case AND, OR:
			return Eq(x.LHS, y.LHS) && Eq(x.RHS, y.RHS)
		case NOT:
			return Eq(x.Child, y.Child)
		case VARIABLE:
			return x.AttrVar == y.AttrVar
		}
		return false
	case TagSet:
		x, y := a.Set, b.Set
		if x.Op != y.Op || x.LeftIsVar != y.LeftIsVar || x.RightIsVar != y.RightIsVar {
			return false
		}
		if x.LeftIsVar {
			if x.LeftVar != y.LeftVar {
				return false
			}
		} else if !valueEq(x.LeftLit, y.LeftLit) {
			return false
		}
		if x.RightIsVar {
			return x.RightVar == y.RightVar
		}
		return valueEq(x.RightLit, y.RightLit)
	case TagList:
		x, y := a.List, b.List
		return x.Op == y.Op && x.AttrVar == y.AttrVar && valueEq(x.Val, y.Val)
	case TagSpecial:
		return specialEq(a.Special, b.Special)
	}
	return false
}

func specialEq(a, b *SpecialNode) bool {
	switch {
	case a.FrequencyCap != nil && b.FrequencyCap != nil:
		x, y := a.FrequencyCap, b.FrequencyCap
		return x.Type == y.Type && x.NamespaceStrID == y.NamespaceStrID && x.Namespace == y.Namespace &&
			x.Value == y.Value && x.Length == y.Length
	case a.Segment != nil && b.Segment != nil:
		x, y := a.Segment, b.Segment
		return x.Op == y.Op && x.ID == y.ID && x.Seconds == y.Seconds
	case a.Geo != nil && b.Geo != nil:
		x, y := a.Geo, b.Geo
		return feq(x.Lat, y.Lat) && feq(x.Lon, y.Lon) && feq(x.RadiusKM, y.RadiusKM)
	case a.String != nil && b.String != nil:
		x, y := a.String, b.String
		return x.Op == y.Op && x.AttrVar == y.AttrVar && x.Pattern == y.Pattern
	default:
		return false
	}
}

func feq(a, b float64) bool {
	return value.FeqFloat(a, b)
}

func valueEq(a, b value.Value) bool {
	return value.Equal(a, b)
}
