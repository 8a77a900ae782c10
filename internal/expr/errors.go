package expr

import "fmt"

// TreeError is returned when a node violates one of the invariants spec §3
// requires (e.g. a Set node with both or neither side a Variable).
type TreeError struct {
	Kind    string
	Message string
}

func (e TreeError) Error() string {
	return fmt.Sprintf("expr error (%v): %v", e.Kind, e.Message)
}

func InvalidSetSides() error {
	return TreeError{
		Kind:    "InvalidSetSides",
		Message: "set expressions require exactly one side to be a Variable",
	}
}
