package predmap

import "fmt"

// MapError is returned for misuse of the predicate map.
type MapError struct {
	Kind    string
	Message string
}

func (e MapError) Error() string {
	return fmt.Sprintf("predmap error (%v): %v", e.Kind, e.Message)
}
