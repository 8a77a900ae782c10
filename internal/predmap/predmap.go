// Package predmap is the content-addressed predicate deduplicator
// described in spec §4.2: it assigns each structurally unique node a
// stable, dense predicate id starting at zero, and stores a canonical
// deep-cloned representative the first time a structural key is seen.
package predmap

import (
	"fmt"
	"strings"

	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/value"
)

// Map is the predicate map. The zero value is not usable; construct with
// New.
type Map struct {
	byKey  map[string]*expr.Node
	nextID uint32
}

// New creates an empty predicate map.
func New() *Map {
	return &Map{byKey: make(map[string]*expr.Node)}
}

// AssignPredID walks node bottom-up. For each Bool combinator it first
// canonicalizes its children (so AND/OR/NOT subtrees may themselves be
// shared across expressions), then computes node's own structural key: on
// a hit it stamps node.ID with the existing id and returns the canonical
// representative; on a miss it allocates a fresh dense id, stamps node.ID,
// stores a deep clone as the new representative, and returns it.
//
// Equal structural keys always resolve to the same representative, so
// eq_expr(a,b) => a.ID == b.ID holds for nodes whose literals are not
// floats. For float literals the key is coarser than expr.Eq's epsilon
// test (see writeValue and writeSpecialKey): two floats that expr.Eq
// treats as equal can still receive different ids.
func (m *Map) AssignPredID(node *expr.Node) *expr.Node {
	if node == nil {
		return nil
	}

	if node.Tag() == expr.TagBool {
		b := node.Bool
		switch b.Op {
		case expr.AND, expr.OR:
			b.LHS = m.AssignPredID(b.LHS)
			b.RHS = m.AssignPredID(b.RHS)
		case expr.NOT:
			b.Child = m.AssignPredID(b.Child)
		}
	}

	key := canonicalKey(node)
	if existing, ok := m.byKey[key]; ok {
		node.ID = existing.ID
		return existing
	}

	id := m.nextID
	m.nextID++
	node.ID = id

	canon := expr.Clone(node)
	m.byKey[key] = canon
	return canon
}

// PredCount returns the number of distinct predicates assigned so far;
// predicate ids are dense over [0, PredCount()).
func (m *Map) PredCount() int {
	return int(m.nextID)
}

// canonicalKey renders node's structural content (tag, payload, and for
// Bool combinators, children's own canonical content) as a string unique
// within an equivalence class under expr.Eq. It does not depend on any
// id already assigned to node or its children, so it is safe to compute
// before or after ids are stamped.
func canonicalKey(node *expr.Node) string {
	var b strings.Builder
	writeKey(&b, node)
	return b.String()
}

func writeKey(b *strings.Builder, node *expr.Node) {
	if node == nil {
		b.WriteString("<nil>")
		return
	}

	switch node.Tag() {
	case expr.TagNumericCompare:
		n := node.NumericCompare
		fmt.Fprintf(b, "NC(%d,%d,", n.Op, n.AttrVar)
		writeValue(b, n.Val)
		b.WriteByte(')')
	case expr.TagEquality:
		n := node.Equality
		fmt.Fprintf(b, "EQ(%d,%d,", n.Op, n.AttrVar)
		writeValue(b, n.Val)
		b.WriteByte(')')
	case expr.TagBool:
		n := node.Bool
		switch n.Op {
		case expr.AND, expr.OR:
			fmt.Fprintf(b, "B(%d,", n.Op)
			writeKey(b, n.LHS)
			b.WriteByte(',')
			writeKey(b, n.RHS)
			b.WriteByte(')')
		case expr.NOT:
			b.WriteString("B(NOT,")
			writeKey(b, n.Child)
			b.WriteByte(')')
		case expr.VARIABLE:
			fmt.Fprintf(b, "B(VAR,%d)", n.AttrVar)
		}
	case expr.TagSet:
		n := node.Set
		fmt.Fprintf(b, "SET(%d,%v,%v,", n.Op, n.LeftIsVar, n.RightIsVar)
		if n.LeftIsVar {
			fmt.Fprintf(b, "%d,", n.LeftVar)
		} else {
			writeValue(b, n.LeftLit)
			b.WriteByte(',')
		}
		if n.RightIsVar {
			fmt.Fprintf(b, "%d", n.RightVar)
		} else {
			writeValue(b, n.RightLit)
		}
		b.WriteByte(')')
	case expr.TagList:
		n := node.List
		fmt.Fprintf(b, "LIST(%d,%d,", n.Op, n.AttrVar)
		writeValue(b, n.Val)
		b.WriteByte(')')
	case expr.TagSpecial:
		writeSpecialKey(b, node.Special)
	}
}

func writeSpecialKey(b *strings.Builder, s *expr.SpecialNode) {
	switch {
	case s.FrequencyCap != nil:
		fc := s.FrequencyCap
		fmt.Fprintf(b, "FC(%d,%d,%q,%d,%d)", fc.Type, fc.NamespaceStrID, fc.Namespace, fc.Value, fc.Length)
	case s.Segment != nil:
		sg := s.Segment
		fmt.Fprintf(b, "SEG(%d,%d,%d)", sg.Op, sg.ID, sg.Seconds)
	case s.Geo != nil:
		// Geo coordinates are keyed by their exact %g rendering, not
		// quantized like float literals.
		g := s.Geo
		fmt.Fprintf(b, "GEO(%g,%g,%g)", g.Lat, g.Lon, g.RadiusKM)
	case s.String != nil:
		sm := s.String
		fmt.Fprintf(b, "STR(%d,%d,%q)", sm.Op, sm.AttrVar, sm.Pattern)
	}
}

func writeValue(b *strings.Builder, v value.Value) {
	switch v.Kind {
	case value.Bool:
		fmt.Fprintf(b, "b%v", v.B)
	case value.Int64:
		fmt.Fprintf(b, "i%d", v.I)
	case value.Float64:
		// Quantize to the matcher's fixed equality epsilon so that most
		// float literals expr.Eq treats as equal also collide here; two
		// values on either side of a multiple of the epsilon do not.
		fmt.Fprintf(b, "f%.9f", quantize(v.F))
	case value.String:
		fmt.Fprintf(b, "s%d:%d", v.VarID, v.StrID)
	case value.IntList:
		b.WriteString("il[")
		for i, x := range v.IntListVal {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%d", x)
		}
		b.WriteByte(']')
	case value.StringList:
		b.WriteString("sl[")
		for i, x := range v.StringListVal {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%d:%d", x.VarID, x.StrID)
		}
		b.WriteByte(']')
	case value.SegmentList:
		b.WriteString("gl[")
		for i, x := range v.Segments {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%d:%d:%d", x.ID, x.Seconds, x.TimestampMicros)
		}
		b.WriteByte(']')
	case value.FrequencyCapList:
		b.WriteString("cl[")
		for i, x := range v.FreqCaps {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%d:%d:%d:%d:%d", x.Type, x.ID, x.NamespaceStrID, x.Value, x.TimestampMicros)
		}
		b.WriteByte(']')
	}
}

// quantize truncates f toward zero to a multiple of value.FloatEpsilon.
// Values in the same epsilon-wide bucket produce the same key; values
// within one epsilon of each other that straddle a bucket boundary do not.
func quantize(f float64) float64 {
	if value.FloatEpsilon == 0 {
		return f
	}
	return float64(int64(f/value.FloatEpsilon)) * value.FloatEpsilon
}
