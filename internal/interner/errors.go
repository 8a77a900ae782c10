package interner

import "fmt"

// ConfigError is the single error type returned by this package, in the
// teacher's Kind+Message struct-error shape.
type ConfigError struct {
	Kind    string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config error (%v): %v", e.Kind, e.Message)
}

func UnknownAttribute(name string) error {
	return ConfigError{
		Kind:    "UnknownAttribute",
		Message: fmt.Sprintf("attribute %q is not registered", name),
	}
}

func AttributeAlreadyExists(name string) error {
	return ConfigError{
		Kind:    "AttributeAlreadyExists",
		Message: fmt.Sprintf("attribute %q already has a domain", name),
	}
}

func UnknownVariable(varID int32) error {
	return ConfigError{
		Kind:    "UnknownVariable",
		Message: fmt.Sprintf("variable id %d is not registered", varID),
	}
}

func DomainTypeMismatch(name string, declared, observed fmt.Stringer) error {
	return ConfigError{
		Kind:    "DomainTypeMismatch",
		Message: fmt.Sprintf("attribute %q has declared type %v, observed %v", name, declared, observed),
	}
}

func StringCapacityExceeded(name string) error {
	return ConfigError{
		Kind:    "StringCapacityExceeded",
		Message: fmt.Sprintf("attribute %q string domain has no capacity left for a new literal", name),
	}
}

func UnsupportedDomainType(t fmt.Stringer) error {
	return ConfigError{
		Kind:    "UnsupportedDomainType",
		Message: fmt.Sprintf("value type %v does not support a bound", t),
	}
}
