package bound

import "fmt"

// UnsupportedTypeError reports a domain.ValueType outside {Bool, Int64,
// Float64, String}: spec §4.5's precondition says this is an abort, not a
// degraded answer.
type UnsupportedTypeError struct {
	Kind fmt.Stringer
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("bound: unsupported domain value type %v", e.Kind)
}
