package expr

import "github.com/ritamzico/bexpr/internal/value"

func newNode() *Node {
	return &Node{ID: PredIDUnassigned}
}

// NumericCompare builds an unassigned NumericCompare node.
func NumericCompare(op CompareOp, attrName string, v value.Value) *Node {
	n := newNode()
	n.NumericCompare = &NumericCompareNode{Op: op, AttrName: attrName, Val: v}
	return n
}

// Equality builds an unassigned Equality node.
func Equality(op EqualityOp, attrName string, v value.Value) *Node {
	n := newNode()
	n.Equality = &EqualityNode{Op: op, AttrName: attrName, Val: v}
	return n
}

// And builds an unassigned AND node.
func And(lhs, rhs *Node) *Node {
	n := newNode()
	n.Bool = &BoolNode{Op: AND, LHS: lhs, RHS: rhs}
	return n
}

// Or builds an unassigned OR node.
func Or(lhs, rhs *Node) *Node {
	n := newNode()
	n.Bool = &BoolNode{Op: OR, LHS: lhs, RHS: rhs}
	return n
}

// Not builds an unassigned NOT node.
func Not(child *Node) *Node {
	n := newNode()
	n.Bool = &BoolNode{Op: NOT, Child: child}
	return n
}

// Variable builds an unassigned Bool-attribute VARIABLE node.
func Variable(attrName string) *Node {
	n := newNode()
	n.Bool = &BoolNode{Op: VARIABLE, AttrName: attrName}
	return n
}

// SetIntVar builds `attrName IN/NOT_IN literalList` (variable on the left,
// integer list literal on the right).
func SetIntVar(op SetOp, attrName string, lit value.Value) *Node {
	n := newNode()
	n.Set = &SetNode{Op: op, LeftIsVar: true, LeftName: attrName, RightIsVar: false, RightLit: lit}
	return n
}

// SetIntLit builds `literal IN/NOT_IN attrName` (integer literal on the
// left, variable list on the right).
func SetIntLit(op SetOp, lit value.Value, attrName string) *Node {
	n := newNode()
	n.Set = &SetNode{Op: op, LeftIsVar: false, LeftLit: lit, RightIsVar: true, RightName: attrName}
	return n
}

// List builds an unassigned ONE_OF/NONE_OF/ALL_OF node.
func List(op ListOp, attrName string, lit value.Value) *Node {
	n := newNode()
	n.List = &ListNode{Op: op, AttrName: attrName, Val: lit}
	return n
}

// WithinFrequencyCap builds a FrequencyCap special node.
func WithinFrequencyCap(capType value.FreqCapType, namespace string, v, length int64) *Node {
	n := newNode()
	n.Special = &SpecialNode{FrequencyCap: &FrequencyCapNode{
		Type:      capType,
		Namespace: namespace,
		Value:     v,
		Length:    length,
	}}
	return n
}

// SegmentWithinPredicate builds a Segment(WITHIN) special node.
func SegmentWithinPredicate(id, seconds int64) *Node {
	n := newNode()
	n.Special = &SpecialNode{Segment: &SegmentNode{Op: SegmentWithin, ID: id, Seconds: seconds}}
	return n
}

// SegmentBeforePredicate builds a Segment(BEFORE) special node.
func SegmentBeforePredicate(id, seconds int64) *Node {
	n := newNode()
	n.Special = &SpecialNode{Segment: &SegmentNode{Op: SegmentBefore, ID: id, Seconds: seconds}}
	return n
}

// GeoWithinRadius builds a Geo special node.
func GeoWithinRadius(lat, lon, radiusKM float64) *Node {
	n := newNode()
	n.Special = &SpecialNode{Geo: &GeoNode{Lat: lat, Lon: lon, RadiusKM: radiusKM}}
	return n
}

// StringMatch builds a String special node.
func StringMatch(op StringOp, attrName, pattern string) *Node {
	n := newNode()
	n.Special = &SpecialNode{String: &StringMatchNode{Op: op, AttrName: attrName, Pattern: pattern}}
	return n
}
