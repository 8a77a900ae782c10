package matcher

import "fmt"

// Fault is a contract violation per spec §7 detected by the matcher:
// invalid tag combinations, declared/observed type mismatches, comparing
// strings of different variables, or a missing non-undefined-allowed
// attribute at match time. (A bound request on an unsupported type is
// reported by internal/bound's own UnsupportedTypeError.) These represent bugs, not
// recoverable conditions. MatchNode returns a Fault as an ordinary error so
// a host process is not forced to crash; MustMatch panics on one for
// callers that want the spec's literal "abort" behavior.
type Fault struct {
	Kind    string
	Message string
}

func (e Fault) Error() string {
	return fmt.Sprintf("contract violation (%v): %v", e.Kind, e.Message)
}

func MissingAttribute(varID int32) error {
	return Fault{
		Kind:    "MissingAttribute",
		Message: fmt.Sprintf("variable %d is absent from the event and is not allow-undefined", varID),
	}
}

func UnknownAttributeName(name string) error {
	return Fault{
		Kind:    "UnknownAttributeName",
		Message: fmt.Sprintf("attribute %q is not registered in the config", name),
	}
}

func TypeMismatch(attrVar int32, declared, observed fmt.Stringer) error {
	return Fault{
		Kind:    "TypeMismatch",
		Message: fmt.Sprintf("variable %d declared %v, observed %v", attrVar, declared, observed),
	}
}

func InvalidStringComparison(reason string) error {
	return Fault{
		Kind:    "InvalidStringComparison",
		Message: reason,
	}
}
