package testdsl

import "fmt"

// SyntaxError is returned for both participle parse failures and semantic
// rejections found while converting a parsed Grammar into an *expr.Node.
type SyntaxError struct {
	Kind    string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error (%v): %v", e.Kind, e.Message)
}

func enrichParseError(input string, err error) error {
	return SyntaxError{
		Kind:    "InvalidSyntax",
		Message: fmt.Sprintf("%v (input: %q)", err, input),
	}
}

func unsupportedLiteral(context string) error {
	return SyntaxError{
		Kind:    "UnsupportedLiteral",
		Message: fmt.Sprintf("%s requires a literal value this grammar does not accept here", context),
	}
}

func unknownCompareOp(op string) error {
	return SyntaxError{
		Kind:    "UnknownOperator",
		Message: fmt.Sprintf("unrecognized comparison operator %q", op),
	}
}
