package expr

import "github.com/ritamzico/bexpr/internal/value"

// Clone deep-copies node, preserving predicate ids. Used by the predicate
// map to take ownership of a canonical representative independent of the
// caller's original tree.
func Clone(node *Node) *Node {
	if node == nil {
		return nil
	}

	out := &Node{ID: node.ID}

	switch node.Tag() {
	case TagNumericCompare:
		nc := *node.NumericCompare
		nc.Val = cloneValue(nc.Val)
		out.NumericCompare = &nc
	case TagEquality:
		eq := *node.Equality
		eq.Val = cloneValue(eq.Val)
		out.Equality = &eq
	case TagBool:
		b := *node.Bool
		b.LHS = Clone(node.Bool.LHS)
		b.RHS = Clone(node.Bool.RHS)
		b.Child = Clone(node.Bool.Child)
		out.Bool = &b
	case TagSet:
		s := *node.Set
		s.LeftLit = cloneValue(s.LeftLit)
		s.RightLit = cloneValue(s.RightLit)
		out.Set = &s
	case TagList:
		l := *node.List
		l.Val = cloneValue(l.Val)
		out.List = &l
	case TagSpecial:
		out.Special = cloneSpecial(node.Special)
	}

	return out
}

func cloneSpecial(s *SpecialNode) *SpecialNode {
	out := &SpecialNode{}
	switch {
	case s.FrequencyCap != nil:
		fc := *s.FrequencyCap
		out.FrequencyCap = &fc
	case s.Segment != nil:
		sg := *s.Segment
		out.Segment = &sg
	case s.Geo != nil:
		g := *s.Geo
		out.Geo = &g
	case s.String != nil:
		sm := *s.String
		out.String = &sm
	}
	return out
}

func cloneValue(v value.Value) value.Value {
	out := v
	out.IntListVal = append([]int64(nil), v.IntListVal...)
	out.StringListVal = append([]value.StringValue(nil), v.StringListVal...)
	out.Segments = append([]value.Segment(nil), v.Segments...)
	out.FreqCaps = append([]value.FrequencyCap(nil), v.FreqCaps...)
	return out
}
