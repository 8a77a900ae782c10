// Package matcher is the memoized, short-circuit evaluator of a compiled
// expression tree against one event, plus the specialized predicate
// semantics (frequency cap, segment age, geo distance, string match) that
// make this more than a generic Boolean evaluator.
package matcher

import (
	"strings"

	"github.com/ritamzico/bexpr/internal/event"
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// MatchNode evaluates node against ev. memo and report are both optional:
// a nil memo disables memoization, a nil report silently drops the
// counters. cfg must be the same (or an equivalent) Config the tree was
// compiled against — it resolves declared attribute domains and
// allow_undefined flags.
func MatchNode(cfg *interner.Config, ev *event.Event, node *expr.Node, memo *Memoize, report *Report) (bool, error) {
	result, _, err := matchNode(cfg, ev, node, memo, report, true)
	return result, err
}

// MustMatch is MatchNode for callers that want a contract violation to
// abort the process immediately, per spec §7's "fatal assertion" language
// for a MISSING attribute, rather than propagate an error value.
func MustMatch(cfg *interner.Config, ev *event.Event, node *expr.Node, memo *Memoize, report *Report) bool {
	result, err := MatchNode(cfg, ev, node, memo, report)
	if err != nil {
		panic(err)
	}
	return result
}

// matchNode is the recursive worker. It returns (result, undefined, err):
// undefined is set when result is false solely because a referenced
// attribute resolved as the spec's UNDEFINED outcome, so that a wrapping
// NOT can honor "the negation does not flip an undefined" instead of
// naively inverting the boolean. A result that comes out undefined is not
// memoized, so a memo hit always stands for a plain defined answer and a
// wrapping NOT never flips a cached undefined.
func matchNode(cfg *interner.Config, ev *event.Event, node *expr.Node, memo *Memoize, report *Report, topLevel bool) (bool, bool, error) {
	if node.ID != expr.PredIDUnassigned {
		if memo.Pass(node.ID) {
			report.recordHit(topLevel)
			return true, false, nil
		}
		if memo.Fail(node.ID) {
			report.recordHit(topLevel)
			return false, false, nil
		}
	}

	result, undefined, err := dispatch(cfg, ev, node, memo, report)
	if err != nil {
		return false, false, err
	}

	if node.ID != expr.PredIDUnassigned && !undefined {
		if result {
			memo.SetPass(node.ID)
		} else {
			memo.SetFail(node.ID)
		}
	}
	return result, undefined, nil
}

func dispatch(cfg *interner.Config, ev *event.Event, node *expr.Node, memo *Memoize, report *Report) (bool, bool, error) {
	switch node.Tag() {
	case expr.TagBool:
		return matchBool(cfg, ev, node.Bool, memo, report)
	case expr.TagNumericCompare:
		return matchNumericCompare(cfg, ev, node.NumericCompare)
	case expr.TagEquality:
		return matchEquality(cfg, ev, node.Equality)
	case expr.TagSet:
		return matchSet(cfg, ev, node.Set)
	case expr.TagList:
		return matchList(cfg, ev, node.List)
	case expr.TagSpecial:
		return matchSpecial(cfg, ev, node.Special)
	default:
		return false, false, Fault{Kind: "MalformedNode", Message: "node carries no recognized payload"}
	}
}

func matchBool(cfg *interner.Config, ev *event.Event, n *expr.BoolNode, memo *Memoize, report *Report) (bool, bool, error) {
	switch n.Op {
	case expr.AND:
		lhs, lhsUndef, err := matchNode(cfg, ev, n.LHS, memo, report, false)
		if err != nil {
			return false, false, err
		}
		if !lhs {
			return false, lhsUndef, nil
		}
		return matchNode(cfg, ev, n.RHS, memo, report, false)
	case expr.OR:
		lhs, lhsUndef, err := matchNode(cfg, ev, n.LHS, memo, report, false)
		if err != nil {
			return false, false, err
		}
		if lhs {
			return true, lhsUndef, nil
		}
		return matchNode(cfg, ev, n.RHS, memo, report, false)
	case expr.NOT:
		child, childUndef, err := matchNode(cfg, ev, n.Child, memo, report, false)
		if err != nil {
			return false, false, err
		}
		if childUndef {
			return false, true, nil
		}
		return !child, false, nil
	case expr.VARIABLE:
		val, defined, err := resolveVariable(cfg, ev, n.AttrVar)
		if err != nil {
			return false, false, err
		}
		if !defined {
			return false, true, nil
		}
		return val.B, false, nil
	default:
		return false, false, Fault{Kind: "UnknownBoolOp", Message: n.Op.String()}
	}
}

func matchNumericCompare(cfg *interner.Config, ev *event.Event, n *expr.NumericCompareNode) (bool, bool, error) {
	val, defined, err := resolveVariable(cfg, ev, n.AttrVar)
	if err != nil {
		return false, false, err
	}
	if !defined {
		return false, true, nil
	}
	if val.Kind != n.Val.Kind {
		return false, false, TypeMismatch(n.AttrVar, n.Val.Kind, val.Kind)
	}

	var cmp int
	switch val.Kind {
	case value.Int64:
		cmp = compareInt64(val.I, n.Val.I)
	case value.Float64:
		cmp = compareFloat64(val.F, n.Val.F)
	default:
		return false, false, Fault{Kind: "UnsupportedNumericKind", Message: val.Kind.String()}
	}

	switch n.Op {
	case expr.LT:
		return cmp < 0, false, nil
	case expr.LE:
		return cmp <= 0, false, nil
	case expr.GT:
		return cmp > 0, false, nil
	case expr.GE:
		return cmp >= 0, false, nil
	default:
		return false, false, Fault{Kind: "UnknownCompareOp", Message: n.Op.String()}
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func matchEquality(cfg *interner.Config, ev *event.Event, n *expr.EqualityNode) (bool, bool, error) {
	val, defined, err := resolveVariable(cfg, ev, n.AttrVar)
	if err != nil {
		return false, false, err
	}
	if !defined {
		return false, true, nil
	}
	if val.Kind != n.Val.Kind {
		return false, false, TypeMismatch(n.AttrVar, n.Val.Kind, val.Kind)
	}

	var equal bool
	switch val.Kind {
	case value.Int64:
		equal = val.I == n.Val.I
	case value.Float64:
		equal = value.FeqFloat(val.F, n.Val.F)
	case value.String:
		equal, err = value.EqualString(val, n.Val)
		if err != nil {
			return false, false, InvalidStringComparison(err.Error())
		}
	default:
		return false, false, Fault{Kind: "UnsupportedEqualityKind", Message: val.Kind.String()}
	}

	switch n.Op {
	case expr.EQ:
		return equal, false, nil
	case expr.NE:
		return !equal, false, nil
	default:
		return false, false, Fault{Kind: "UnknownEqualityOp", Message: n.Op.String()}
	}
}

func matchSet(cfg *interner.Config, ev *event.Event, n *expr.SetNode) (bool, bool, error) {
	var (
		val     value.Value
		lit     value.Value
		defined bool
		err     error
		attrVar int32
	)
	if n.LeftIsVar {
		attrVar, lit = n.LeftVar, n.RightLit
	} else {
		attrVar, lit = n.RightVar, n.LeftLit
	}
	val, defined, err = resolveVariable(cfg, ev, attrVar)
	if err != nil {
		return false, false, err
	}
	if !defined {
		return false, true, nil
	}

	var member bool
	switch lit.Kind {
	case value.IntList:
		if val.Kind != value.Int64 {
			return false, false, TypeMismatch(attrVar, value.Int64, val.Kind)
		}
		member = containsInt64(lit.IntListVal, val.I)
	case value.StringList:
		if val.Kind != value.String {
			return false, false, TypeMismatch(attrVar, value.String, val.Kind)
		}
		member, err = containsString(lit.StringListVal, val)
		if err != nil {
			return false, false, InvalidStringComparison(err.Error())
		}
	default:
		return false, false, Fault{Kind: "UnsupportedSetLiteralKind", Message: lit.Kind.String()}
	}

	switch n.Op {
	case expr.IN:
		return member, false, nil
	case expr.NOT_IN:
		return !member, false, nil
	default:
		return false, false, Fault{Kind: "UnknownSetOp", Message: n.Op.String()}
	}
}

func containsInt64(list []int64, want int64) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func containsString(list []value.StringValue, want value.Value) (bool, error) {
	for _, v := range list {
		eq, err := value.EqualString(want, value.InternedStr(v.VarID, v.StrID, v.Raw))
		if err != nil {
			return false, err
		}
		if eq {
			return true, nil
		}
	}
	return false, nil
}

func matchList(cfg *interner.Config, ev *event.Event, n *expr.ListNode) (bool, bool, error) {
	val, defined, err := resolveVariable(cfg, ev, n.AttrVar)
	if err != nil {
		return false, false, err
	}
	if !defined {
		return false, true, nil
	}
	if val.Kind != n.Val.Kind {
		return false, false, TypeMismatch(n.AttrVar, n.Val.Kind, val.Kind)
	}

	switch n.Val.Kind {
	case value.IntList:
		return matchIntList(n.Op, val.IntListVal, n.Val.IntListVal), false, nil
	case value.StringList:
		ok, err := matchStringList(n.Op, val.StringListVal, n.Val.StringListVal)
		if err != nil {
			return false, false, InvalidStringComparison(err.Error())
		}
		return ok, false, nil
	default:
		return false, false, Fault{Kind: "UnsupportedListKind", Message: n.Val.Kind.String()}
	}
}

func matchIntList(op expr.ListOp, have, want []int64) bool {
	switch op {
	case expr.ONE_OF:
		for _, w := range want {
			if containsInt64(have, w) {
				return true
			}
		}
		return false
	case expr.NONE_OF:
		for _, w := range want {
			if containsInt64(have, w) {
				return false
			}
		}
		return true
	case expr.ALL_OF:
		for _, w := range want {
			if !containsInt64(have, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func matchStringList(op expr.ListOp, have, want []value.StringValue) (bool, error) {
	haveVal := func(sv value.StringValue) value.Value { return value.InternedStr(sv.VarID, sv.StrID, sv.Raw) }
	contains := func(hay []value.StringValue, needle value.StringValue) (bool, error) {
		return containsString(hay, haveVal(needle))
	}
	switch op {
	case expr.ONE_OF:
		for _, w := range want {
			ok, err := contains(have, w)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case expr.NONE_OF:
		for _, w := range want {
			ok, err := contains(have, w)
			if err != nil {
				return false, err
			}
			if ok {
				return false, nil
			}
		}
		return true, nil
	case expr.ALL_OF:
		for _, w := range want {
			ok, err := contains(have, w)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, nil
	}
}

func matchSpecial(cfg *interner.Config, ev *event.Event, n *expr.SpecialNode) (bool, bool, error) {
	switch {
	case n.FrequencyCap != nil:
		return matchFrequencyCapNode(cfg, ev, n.FrequencyCap)
	case n.Segment != nil:
		return matchSegmentNode(cfg, ev, n.Segment)
	case n.Geo != nil:
		return matchGeoNode(cfg, ev, n.Geo)
	case n.String != nil:
		return matchStringNode(cfg, ev, n.String)
	default:
		return false, false, Fault{Kind: "MalformedSpecialNode", Message: "no special predicate payload set"}
	}
}

func matchFrequencyCapNode(cfg *interner.Config, ev *event.Event, n *expr.FrequencyCapNode) (bool, bool, error) {
	now, nowDefined, err := resolveVariable(cfg, ev, cfg.NowVarID())
	if err != nil {
		return false, false, err
	}
	if !nowDefined {
		return false, true, nil
	}
	caps, capsDefined, err := resolveVariable(cfg, ev, cfg.ObservedFrequencyCapsVarID())
	if err != nil {
		return false, false, err
	}
	if !capsDefined {
		// No caps recorded for this event: spec's "no matching cap found"
		// default applies.
		return true, false, nil
	}
	ok := matchFrequencyCap(now.I, caps.FreqCaps, n.Type, n.NamespaceStrID, n.Value, n.Length)
	return ok, false, nil
}

func matchSegmentNode(cfg *interner.Config, ev *event.Event, n *expr.SegmentNode) (bool, bool, error) {
	now, nowDefined, err := resolveVariable(cfg, ev, cfg.NowVarID())
	if err != nil {
		return false, false, err
	}
	if !nowDefined {
		return false, true, nil
	}
	segs, segsDefined, err := resolveVariable(cfg, ev, cfg.SegmentsVarID())
	if err != nil {
		return false, false, err
	}
	if !segsDefined {
		return false, false, nil
	}
	ok := matchSegment(now.I, segs.Segments, n.Op, n.ID, n.Seconds)
	return ok, false, nil
}

func matchGeoNode(cfg *interner.Config, ev *event.Event, n *expr.GeoNode) (bool, bool, error) {
	lat, latDefined, err := resolveVariable(cfg, ev, cfg.LatitudeVarID())
	if err != nil {
		return false, false, err
	}
	if !latDefined {
		return false, true, nil
	}
	lon, lonDefined, err := resolveVariable(cfg, ev, cfg.LongitudeVarID())
	if err != nil {
		return false, false, err
	}
	if !lonDefined {
		return false, true, nil
	}
	dist := haversineKM(n.Lat, n.Lon, lat.F, lon.F)
	return dist <= n.RadiusKM, false, nil
}

func matchStringNode(cfg *interner.Config, ev *event.Event, n *expr.StringMatchNode) (bool, bool, error) {
	val, defined, err := resolveVariable(cfg, ev, n.AttrVar)
	if err != nil {
		return false, false, err
	}
	if !defined {
		return false, true, nil
	}
	if val.Kind != value.String {
		return false, false, TypeMismatch(n.AttrVar, value.String, val.Kind)
	}

	switch n.Op {
	case expr.Contains:
		return strings.Contains(val.Raw, n.Pattern), false, nil
	case expr.StartsWith:
		return strings.HasPrefix(val.Raw, n.Pattern), false, nil
	case expr.EndsWith:
		return strings.HasSuffix(val.Raw, n.Pattern), false, nil
	default:
		return false, false, Fault{Kind: "UnknownStringOp", Message: n.Op.String()}
	}
}

// resolveVariable is get_variable from spec §4.4.1, folded into a
// two-outcome signature: (value, true, nil) for DEFINED, (zero, false, nil)
// for UNDEFINED, (zero, false, err) for the fatal MISSING case.
func resolveVariable(cfg *interner.Config, ev *event.Event, varID int32) (value.Value, bool, error) {
	if v, ok := ev.Get(varID); ok {
		return v, true, nil
	}
	allow, err := cfg.IsVariableAllowUndefined(varID)
	if err != nil {
		return value.Value{}, false, err
	}
	if allow {
		return value.Value{}, false, nil
	}
	return value.Value{}, false, MissingAttribute(varID)
}
