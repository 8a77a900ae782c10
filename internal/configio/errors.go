package configio

import "fmt"

// DecodeError is the single error type this package returns, in the same
// Kind+Message shape used throughout the rest of the module.
type DecodeError struct {
	Kind    string
	Message string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("configio error (%v): %v", e.Kind, e.Message)
}

func UnknownValueType(raw string) error {
	return DecodeError{
		Kind:    "UnknownValueType",
		Message: fmt.Sprintf("unrecognized attribute type %q", raw),
	}
}

func UnknownFreqCapType(raw string) error {
	return DecodeError{
		Kind:    "UnknownFreqCapType",
		Message: fmt.Sprintf("unrecognized frequency cap type %q", raw),
	}
}

func UnsupportedAttributeValue(name string, kind fmt.Stringer) error {
	return DecodeError{
		Kind:    "UnsupportedAttributeValue",
		Message: fmt.Sprintf("attribute %q has a domain type (%v) this decoder cannot build a JSON value for", name, kind),
	}
}
