// Package event is the consumed event format spec §6 describes: an ordered
// list of (variable_id, value) predicates. Decoding events from a wire
// format is out of scope for the core; internal/configio provides a JSON
// reader for host tooling.
package event

import "github.com/ritamzico/bexpr/internal/value"

// Predicate is one (variable_id, value) observation in an event.
type Predicate struct {
	VarID int32
	Value value.Value
}

// Event is a sparse set of attribute observations.
type Event struct {
	Predicates []Predicate
}

// New builds an Event from a set of predicates.
func New(predicates ...Predicate) *Event {
	return &Event{Predicates: predicates}
}

// Get scans the event's predicate list for a matching variable id, per
// spec §4.4.1's get_variable. Returns ok=false if varID is not present.
func (e *Event) Get(varID int32) (value.Value, bool) {
	for _, p := range e.Predicates {
		if p.VarID == varID {
			return p.Value, true
		}
	}
	return value.Value{}, false
}
