package testdsl

import (
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/value"
)

func convertOrExpr(o *OrExpr) (*expr.Node, error) {
	node, err := convertAndExpr(o.Left)
	if err != nil {
		return nil, err
	}
	for _, rhs := range o.Rest {
		r, err := convertAndExpr(rhs)
		if err != nil {
			return nil, err
		}
		node = expr.Or(node, r)
	}
	return node, nil
}

func convertAndExpr(a *AndExpr) (*expr.Node, error) {
	node, err := convertNotExpr(a.Left)
	if err != nil {
		return nil, err
	}
	for _, rhs := range a.Rest {
		r, err := convertNotExpr(rhs)
		if err != nil {
			return nil, err
		}
		node = expr.And(node, r)
	}
	return node, nil
}

func convertNotExpr(n *NotExpr) (*expr.Node, error) {
	node, err := convertPrimary(n.Primary)
	if err != nil {
		return nil, err
	}
	if n.Negate {
		return expr.Not(node), nil
	}
	return node, nil
}

func convertPrimary(p *Primary) (*expr.Node, error) {
	switch {
	case p.Group != nil:
		return convertOrExpr(p.Group)
	case p.Special != nil:
		return convertSpecialCall(p.Special)
	case p.List != nil:
		return convertListExpr(p.List)
	case p.Set != nil:
		return convertSetExpr(p.Set)
	case p.Compare != nil:
		return convertCompareExpr(p.Compare)
	case p.Var != nil:
		return expr.Variable(*p.Var), nil
	default:
		return nil, SyntaxError{Kind: "EmptyPrimary", Message: "expression has no recognizable content"}
	}
}

func literalValue(l *Literal) (value.Value, error) {
	switch {
	case l.Str != nil:
		return value.Str(*l.Str), nil
	case l.Float != nil:
		return value.FloatVal(*l.Float), nil
	case l.Int != nil:
		return value.IntVal(*l.Int), nil
	default:
		return value.Value{}, unsupportedLiteral("literal")
	}
}

func convertCompareExpr(c *CompareExpr) (*expr.Node, error) {
	val, err := literalValue(c.Val)
	if err != nil {
		return nil, err
	}

	switch c.Op {
	case "==":
		return expr.Equality(expr.EQ, c.Attr, val), nil
	case "!=":
		return expr.Equality(expr.NE, c.Attr, val), nil
	case "<", "<=", ">", ">=":
		if val.Kind == value.String {
			return nil, unsupportedLiteral("ordered comparison against a string literal")
		}
		return expr.NumericCompare(compareOp(c.Op), c.Attr, val), nil
	default:
		return nil, unknownCompareOp(c.Op)
	}
}

func compareOp(op string) expr.CompareOp {
	switch op {
	case "<":
		return expr.LT
	case "<=":
		return expr.LE
	case ">":
		return expr.GT
	default:
		return expr.GE
	}
}

func convertSetExpr(s *SetExpr) (*expr.Node, error) {
	op := expr.IN
	if s.Op == "NOT_IN" {
		op = expr.NOT_IN
	}

	if len(s.Items) == 0 {
		return nil, SyntaxError{Kind: "EmptySet", Message: "IN/NOT_IN requires at least one item"}
	}
	first, err := literalValue(s.Items[0])
	if err != nil {
		return nil, err
	}

	switch first.Kind {
	case value.String:
		strs := make([]string, len(s.Items))
		for i, it := range s.Items {
			v, err := literalValue(it)
			if err != nil {
				return nil, err
			}
			if v.Kind != value.String {
				return nil, unsupportedLiteral("IN/NOT_IN with mixed literal kinds")
			}
			strs[i] = v.Raw
		}
		return expr.SetIntVar(op, s.Attr, value.Strs(strs...)), nil
	default:
		ints := make([]int64, len(s.Items))
		for i, it := range s.Items {
			v, err := literalValue(it)
			if err != nil {
				return nil, err
			}
			if v.Kind == value.String {
				return nil, unsupportedLiteral("IN/NOT_IN with mixed literal kinds")
			}
			ints[i] = toInt(v)
		}
		return expr.SetIntVar(op, s.Attr, value.Ints(ints...)), nil
	}
}

func toInt(v value.Value) int64 {
	if v.Kind == value.Float64 {
		return int64(v.F)
	}
	return v.I
}

func convertListExpr(l *ListExpr) (*expr.Node, error) {
	var op expr.ListOp
	switch l.Op {
	case "ALL_OF":
		op = expr.ALL_OF
	case "NONE_OF":
		op = expr.NONE_OF
	default:
		op = expr.ONE_OF
	}
	return expr.List(op, l.Attr, value.Ints(l.Items...)), nil
}

func convertSpecialCall(s *SpecialCall) (*expr.Node, error) {
	switch {
	case s.FreqCap != nil:
		capType, err := freqCapType(s.FreqCap.Type)
		if err != nil {
			return nil, err
		}
		return expr.WithinFrequencyCap(capType, s.FreqCap.Namespace, s.FreqCap.Value, s.FreqCap.Length), nil
	case s.SegWithin != nil:
		return expr.SegmentWithinPredicate(s.SegWithin.ID, s.SegWithin.Seconds), nil
	case s.SegBefore != nil:
		return expr.SegmentBeforePredicate(s.SegBefore.ID, s.SegBefore.Seconds), nil
	case s.Geo != nil:
		return expr.GeoWithinRadius(s.Geo.Lat.F(), s.Geo.Lon.F(), s.Geo.Radius.F()), nil
	case s.Contains != nil:
		return expr.StringMatch(expr.Contains, s.Contains.Attr, s.Contains.Pattern), nil
	case s.StartsWith != nil:
		return expr.StringMatch(expr.StartsWith, s.StartsWith.Attr, s.StartsWith.Pattern), nil
	case s.EndsWith != nil:
		return expr.StringMatch(expr.EndsWith, s.EndsWith.Attr, s.EndsWith.Pattern), nil
	default:
		return nil, SyntaxError{Kind: "EmptySpecialCall", Message: "special predicate call matched no known form"}
	}
}

func freqCapType(raw string) (value.FreqCapType, error) {
	switch raw {
	case "ADVERTISER":
		return value.FreqCapAdvertiser, nil
	case "CAMPAIGN":
		return value.FreqCapCampaign, nil
	case "FLIGHT":
		return value.FreqCapFlight, nil
	case "PRODUCT":
		return value.FreqCapProduct, nil
	default:
		return 0, SyntaxError{Kind: "UnknownFreqCapType", Message: "unrecognized frequency cap type " + raw}
	}
}
