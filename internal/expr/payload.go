package expr

import "github.com/ritamzico/bexpr/internal/value"

// CompareOp is the operator of a NumericCompareNode.
type CompareOp int

const (
	LT CompareOp = iota
	LE
	GT
	GE
)

func (op CompareOp) String() string {
	return [...]string{"<", "<=", ">", ">="}[op]
}

// NumericCompareNode is `attr_var <op> value` for an Int64 or Float64
// value, before variable-id assignment AttrName holds the textual
// attribute name and AttrVar is unset.
type NumericCompareNode struct {
	Op       CompareOp
	AttrName string
	AttrVar  int32
	Val      value.Value
}

// EqualityOp is the operator of an EqualityNode.
type EqualityOp int

const (
	EQ EqualityOp = iota
	NE
)

func (op EqualityOp) String() string {
	return [...]string{"==", "!="}[op]
}

// EqualityNode is `attr_var <op> value` for an Int64, Float64, or String
// value.
type EqualityNode struct {
	Op       EqualityOp
	AttrName string
	AttrVar  int32
	Val      value.Value
}

// BoolOp is the operator of a BoolNode.
type BoolOp int

const (
	AND BoolOp = iota
	OR
	NOT
	VARIABLE
)

func (op BoolOp) String() string {
	return [...]string{"AND", "OR", "NOT", "VARIABLE"}[op]
}

// BoolNode combines Boolean sub-expressions. AND/OR use LHS/RHS, NOT uses
// Child, VARIABLE reads a Bool-typed attribute directly (AttrName/AttrVar).
type BoolNode struct {
	Op       BoolOp
	LHS, RHS *Node
	Child    *Node
	AttrName string
	AttrVar  int32
}

// SetOp is the operator of a SetNode.
type SetOp int

const (
	IN SetOp = iota
	NOT_IN
)

func (op SetOp) String() string {
	return [...]string{"IN", "NOT IN"}[op]
}

// SetNode is `literal-or-var IN list-or-var`: exactly one side is a
// Variable, the other a literal (Int64/String) or a list (IntList/
// StringList).
type SetNode struct {
	Op SetOp

	LeftIsVar bool
	LeftName  string
	LeftVar   int32
	LeftLit   value.Value

	RightIsVar bool
	RightName  string
	RightVar   int32
	RightLit   value.Value
}

// ListOp is the operator of a ListNode.
type ListOp int

const (
	ONE_OF ListOp = iota
	NONE_OF
	ALL_OF
)

func (op ListOp) String() string {
	switch op {
	case ONE_OF:
		return "ONE_OF"
	case NONE_OF:
		return "NONE_OF"
	case ALL_OF:
		return "ALL_OF"
	default:
		return "?"
	}
}

// ListNode is `attr_var <op> (literal list)`, attr_var itself an IntList
// or StringList attribute.
type ListNode struct {
	Op       ListOp
	AttrName string
	AttrVar  int32
	Val      value.Value
}

// SpecialNode carries exactly one of the specialized predicate kinds.
type SpecialNode struct {
	FrequencyCap *FrequencyCapNode
	Segment      *SegmentNode
	Geo          *GeoNode
	String       *StringMatchNode
}

// FrequencyCapNode is `within_frequency_cap(type, namespace, value,
// length)`. Its only operator is WITHIN per spec.
type FrequencyCapNode struct {
	Type           value.FreqCapType
	Namespace      string
	NamespaceStrID int32
	Value          int64
	Length         int64
}

// SegmentOp is the operator of a SegmentNode.
type SegmentOp int

const (
	SegmentWithin SegmentOp = iota
	SegmentBefore
)

func (op SegmentOp) String() string {
	if op == SegmentWithin {
		return "WITHIN"
	}
	return "BEFORE"
}

// SegmentNode is `segment_within(id, seconds)` or
// `segment_before(id, seconds)`.
type SegmentNode struct {
	Op      SegmentOp
	ID      int64
	Seconds int64
}

// GeoNode is `geo_within_radius(lat, lon, radius_km)`. It reads the event's
// `latitude`/`longitude` attributes at match time.
type GeoNode struct {
	Lat, Lon, RadiusKM float64
}

// StringOp is the operator of a StringMatchNode.
type StringOp int

const (
	Contains StringOp = iota
	StartsWith
	EndsWith
)

func (op StringOp) String() string {
	switch op {
	case Contains:
		return "CONTAINS"
	case StartsWith:
		return "STARTS_WITH"
	case EndsWith:
		return "ENDS_WITH"
	default:
		return "?"
	}
}

// StringMatchNode is `attr_var <op> pattern`.
type StringMatchNode struct {
	Op       StringOp
	AttrName string
	AttrVar  int32
	Pattern  string
}
