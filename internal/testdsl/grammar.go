// Package testdsl is a small text grammar for writing expression trees by
// hand in tests and the bound/match demo CLI, grounded on
// internal/dsl/grammar.go's participle lexer/grammar shape. It is
// deliberately framed as test/demo tooling: spec places the "real" textual
// parser for this engine out of core scope as an external collaborator,
// unlike the teacher where its DSL is the production query surface.
package testdsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(AND|OR|NOT|IN|NOT_IN|ALL_OF|NONE_OF|ONE_OF|WITHIN_FREQUENCY_CAP|SEGMENT_WITHIN|SEGMENT_BEFORE|GEO_WITHIN_RADIUS|CONTAINS|STARTS_WITH|ENDS_WITH|ADVERTISER|CAMPAIGN|FLIGHT|PRODUCT)\b`},
	{Name: "Op", Pattern: `>=|<=|==|!=|>|<`},
	{Name: "Float", Pattern: `-?\d+\.\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Grammar is the top-level AST node: a single Boolean expression.
type Grammar struct {
	Expr *OrExpr `parser:"@@"`
}

// OrExpr is a left-associative chain of AndExprs joined by OR.
type OrExpr struct {
	Left  *AndExpr   `parser:"@@"`
	Rest  []*AndExpr `parser:"( \"OR\" @@ )*"`
}

// AndExpr is a left-associative chain of NotExprs joined by AND.
type AndExpr struct {
	Left *NotExpr   `parser:"@@"`
	Rest []*NotExpr `parser:"( \"AND\" @@ )*"`
}

// NotExpr is an optionally-negated Primary.
type NotExpr struct {
	Negate  bool     `parser:"( @\"NOT\" )?"`
	Primary *Primary `parser:"@@"`
}

// Primary dispatches on every leaf expression shape. Group, Special, List,
// Set, and Compare all start with a distinguishing keyword or the Ident
// token followed by a distinguishing operator; Var is the fallback for a
// bare Boolean attribute reference, tried last.
type Primary struct {
	Group   *OrExpr      `parser:"  \"(\" @@ \")\""`
	Special *SpecialCall `parser:"| @@"`
	List    *ListExpr    `parser:"| @@"`
	Set     *SetExpr     `parser:"| @@"`
	Compare *CompareExpr `parser:"| @@"`
	Var     *string      `parser:"| @Ident"`
}

// Number is an integer or floating-point literal.
type Number struct {
	Float *float64 `parser:"  @Float"`
	Int   *int64   `parser:"| @Int"`
}

// F returns n as a float64 regardless of which alternative matched.
func (n Number) F() float64 {
	if n.Float != nil {
		return *n.Float
	}
	if n.Int != nil {
		return float64(*n.Int)
	}
	return 0
}

// Literal is any scalar value a comparison or set element can hold.
type Literal struct {
	Str   *string  `parser:"  @String"`
	Float *float64 `parser:"| @Float"`
	Int   *int64   `parser:"| @Int"`
}

// CompareExpr is `attr <op> literal`, op one of >=, <=, >, <, ==, !=.
type CompareExpr struct {
	Attr string   `parser:"@Ident"`
	Op   string   `parser:"@Op"`
	Val  *Literal `parser:"@@"`
}

// SetExpr is `attr (IN|NOT_IN) (literal, ...)`.
type SetExpr struct {
	Attr  string     `parser:"@Ident"`
	Op    string     `parser:"@( \"IN\" | \"NOT_IN\" )"`
	Items []*Literal `parser:"\"(\" @@ ( \",\" @@ )* \")\""`
}

// ListExpr is `attr (ALL_OF|NONE_OF|ONE_OF) (int, ...)`.
type ListExpr struct {
	Attr  string  `parser:"@Ident"`
	Op    string  `parser:"@( \"ALL_OF\" | \"NONE_OF\" | \"ONE_OF\" )"`
	Items []int64 `parser:"\"(\" @Int ( \",\" @Int )* \")\""`
}

// SpecialCall dispatches on the specialized predicate keyword.
type SpecialCall struct {
	FreqCap    *FreqCapCall `parser:"  \"WITHIN_FREQUENCY_CAP\" \"(\" @@ \")\""`
	SegWithin  *SegmentCall `parser:"| \"SEGMENT_WITHIN\" \"(\" @@ \")\""`
	SegBefore  *SegmentCall `parser:"| \"SEGMENT_BEFORE\" \"(\" @@ \")\""`
	Geo        *GeoCall     `parser:"| \"GEO_WITHIN_RADIUS\" \"(\" @@ \")\""`
	Contains   *StringCall  `parser:"| \"CONTAINS\" \"(\" @@ \")\""`
	StartsWith *StringCall  `parser:"| \"STARTS_WITH\" \"(\" @@ \")\""`
	EndsWith   *StringCall  `parser:"| \"ENDS_WITH\" \"(\" @@ \")\""`
}

// FreqCapCall: <type>, "<namespace>", <value>, <length>
type FreqCapCall struct {
	Type      string `parser:"@( \"ADVERTISER\" | \"CAMPAIGN\" | \"FLIGHT\" | \"PRODUCT\" )"`
	Namespace string `parser:"\",\" @String"`
	Value     int64  `parser:"\",\" @Int"`
	Length    int64  `parser:"\",\" @Int"`
}

// SegmentCall: <id>, <seconds>
type SegmentCall struct {
	ID      int64 `parser:"@Int"`
	Seconds int64 `parser:"\",\" @Int"`
}

// GeoCall: <lat>, <lon>, <radius_km>
type GeoCall struct {
	Lat    Number `parser:"@@"`
	Lon    Number `parser:"\",\" @@"`
	Radius Number `parser:"\",\" @@"`
}

// StringCall: <attr>, "<pattern>"
type StringCall struct {
	Attr    string `parser:"@Ident"`
	Pattern string `parser:"\",\" @String"`
}

var exprParser = participle.MustBuild[Grammar](
	participle.Lexer(exprLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)
