package compiler

import "fmt"

// CompileError is returned by Compile when validation fails before the
// tree is handed to the passes.
type CompileError struct {
	Kind    string
	Message string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("compile error (%v): %v", e.Kind, e.Message)
}

func ValidationFailed(reason string) error {
	return CompileError{Kind: "ValidationFailed", Message: reason}
}
