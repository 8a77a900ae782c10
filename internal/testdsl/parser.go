package testdsl

import "github.com/ritamzico/bexpr/internal/expr"

// ParseString parses input into an uncompiled *expr.Node, ready to be
// handed to compiler.Compile. Grounded on internal/dsl/parser.go's
// Parser.ParseLine: participle parse, then a semantic conversion pass.
func ParseString(input string) (*expr.Node, error) {
	g, err := exprParser.ParseString("", input)
	if err != nil {
		return nil, enrichParseError(input, err)
	}
	return convertOrExpr(g.Expr)
}
