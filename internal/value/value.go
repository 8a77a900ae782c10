// Package value defines the tagged primitive value model that flows through
// expression trees, events, and attribute domains: a single Kind
// discriminant plus every payload field, switched on exhaustively by every
// consumer rather than dispatched through an interface.
package value

import "fmt"

// Kind tags the shape of a Value's payload.
type Kind int

const (
	Bool Kind = iota
	Int64
	Float64
	String
	IntList
	StringList
	SegmentList
	FrequencyCapList
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case String:
		return "string"
	case IntList:
		return "int_list"
	case StringList:
		return "string_list"
	case SegmentList:
		return "segment_list"
	case FrequencyCapList:
		return "frequency_cap_list"
	default:
		return fmt.Sprintf("value.Kind(%d)", int(k))
	}
}

// FloatEpsilon is the fixed epsilon used by the matcher's feq/fne and by
// structural equality when comparing Float64 values. A single documented
// constant is used everywhere a float literal is compared for equality, per
// spec's instruction to pick one epsilon and apply it consistently. The bound
// analyzer's LT/GT tightening uses a different, machine-epsilon-based step;
// see internal/bound.
const FloatEpsilon = 1e-9

// FreqCapType enumerates the supported frequency cap namespaces; their
// mapping to a fixed object id is matcher.FrequencyTypeObjectID.
type FreqCapType int

const (
	FreqCapAdvertiser FreqCapType = iota
	FreqCapCampaign
	FreqCapFlight
	FreqCapProduct
)

func (t FreqCapType) String() string {
	switch t {
	case FreqCapAdvertiser:
		return "advertiser"
	case FreqCapCampaign:
		return "campaign"
	case FreqCapFlight:
		return "flight"
	case FreqCapProduct:
		return "product"
	default:
		return fmt.Sprintf("value.FreqCapType(%d)", int(t))
	}
}

// Segment is one element of a SegmentList value: a segment id the event
// belongs to, how long ago ("age", in seconds) the segment enrollment was
// recorded, and the microsecond timestamp it was recorded at.
type Segment struct {
	ID              int64
	Seconds         int64
	TimestampMicros int64
}

// FrequencyCap is one element of a FrequencyCapList value: an observed
// impression/click count ("Value") against a cap namespace identified by
// (Type, ID, NamespaceStrID), recorded at TimestampMicros.
type FrequencyCap struct {
	Type            FreqCapType
	ID              int64
	NamespaceStrID  int32
	Value           int64
	TimestampMicros int64
}

// Value is the single tagged union used for literal values, attribute
// observations in an event, and domain bound endpoints.
//
// A String value's identity is the pair (VarID, StrID): the interned
// string id is only meaningful relative to the attribute it belongs to, so
// two String values must never be compared unless VarID matches on both
// sides (EqualString enforces this).
type Value struct {
	Kind Kind

	B bool
	I int64
	F float64

	VarID int32
	StrID int32
	// Raw holds the original string bytes. It is populated for string
	// literals before assign_str_id has interned them (so parsers/tests can
	// build a Value before compilation), and is kept alongside VarID/StrID
	// once interned, which String special predicates match against.
	Raw string

	IntListVal    []int64
	StringListVal []StringValue
	Segments      []Segment
	FreqCaps      []FrequencyCap
}

// StringValue is a single interned-or-raw string element, used inside
// StringList values.
type StringValue struct {
	VarID int32
	StrID int32
	Raw   string
}

// BoolVal builds a Bool value.
func BoolVal(b bool) Value { return Value{Kind: Bool, B: b} }

// IntVal builds an Int64 value.
func IntVal(i int64) Value { return Value{Kind: Int64, I: i} }

// FloatVal builds a Float64 value.
func FloatVal(f float64) Value { return Value{Kind: Float64, F: f} }

// Str builds a String value from raw text, before string-id interning.
func Str(raw string) Value { return Value{Kind: String, Raw: raw} }

// InternedStr builds a String value that has already been interned.
func InternedStr(varID, strID int32, raw string) Value {
	return Value{Kind: String, VarID: varID, StrID: strID, Raw: raw}
}

// Ints builds an IntList value.
func Ints(vals ...int64) Value {
	return Value{Kind: IntList, IntListVal: append([]int64(nil), vals...)}
}

// Strs builds a StringList value from raw text, before interning.
func Strs(vals ...string) Value {
	sv := make([]StringValue, len(vals))
	for i, s := range vals {
		sv[i] = StringValue{Raw: s}
	}
	return Value{Kind: StringList, StringListVal: sv}
}

// FeqFloat reports whether a and b are equal within FloatEpsilon.
func FeqFloat(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= FloatEpsilon
}

// EqualString compares two String values, asserting the per-variable
// identity invariant: comparing strings belonging to different variables is
// a contract violation, not merely "not equal".
func EqualString(a, b Value) (bool, error) {
	if a.Kind != String || b.Kind != String {
		return false, fmt.Errorf("value: EqualString called on non-string kinds %v/%v", a.Kind, b.Kind)
	}
	if a.VarID != b.VarID {
		return false, fmt.Errorf("value: comparing strings of different variables (%d vs %d) is a contract violation", a.VarID, b.VarID)
	}
	return a.StrID == b.StrID, nil
}

// Equal reports whether two values are equal under the matcher's fixed
// epsilon float semantics. It does not itself enforce the string
// cross-variable invariant; callers needing that assertion use EqualString.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Bool:
		return a.B == b.B
	case Int64:
		return a.I == b.I
	case Float64:
		return FeqFloat(a.F, b.F)
	case String:
		return a.VarID == b.VarID && a.StrID == b.StrID
	case IntList:
		return equalInt64s(a.IntListVal, b.IntListVal)
	case StringList:
		return equalStringValues(a.StringListVal, b.StringListVal)
	case SegmentList:
		return equalSegments(a.Segments, b.Segments)
	case FrequencyCapList:
		return equalFreqCaps(a.FreqCaps, b.FreqCaps)
	default:
		return false
	}
}

func equalInt64s(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStringValues(a, b []StringValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].VarID != b[i].VarID || a[i].StrID != b[i].StrID {
			return false
		}
	}
	return true
}

func equalSegments(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFreqCaps(a, b []FrequencyCap) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
