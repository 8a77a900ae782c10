// Package configio decodes the JSON formats cmd/bexpr-match reads from
// disk: attribute domain declarations and event batches. Grounded on
// cmd/server/main.go's encoding/json request shape; this is host tooling
// layered on top of the core, not the core's own event representation
// (internal/event's Predicate/Event types are what the matcher consumes).
package configio

import (
	"encoding/json"
	"io"

	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// DomainFile is the top-level shape of a domain declaration document.
type DomainFile struct {
	Attributes []AttrDomainJSON `json:"attributes"`
}

// AttrDomainJSON is one attribute's declaration.
type AttrDomainJSON struct {
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	AllowUndefined bool       `json:"allow_undefined"`
	Bound          *BoundJSON `json:"bound,omitempty"`
}

// BoundJSON is an attribute's optional declared bound. Min/Max apply to
// Int64/Float64 attributes; StringBounded/MaxCardinality apply to String
// attributes with a fixed literal universe.
type BoundJSON struct {
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	StringBounded  bool     `json:"string_bounded,omitempty"`
	MaxCardinality int32    `json:"max_cardinality,omitempty"`
}

var valueTypeByName = map[string]value.Kind{
	"bool":               value.Bool,
	"int64":              value.Int64,
	"float64":            value.Float64,
	"string":             value.String,
	"int_list":           value.IntList,
	"string_list":        value.StringList,
	"segment_list":       value.SegmentList,
	"frequency_cap_list": value.FrequencyCapList,
}

func parseValueType(raw string) (value.Kind, error) {
	k, ok := valueTypeByName[raw]
	if !ok {
		return 0, UnknownValueType(raw)
	}
	return k, nil
}

// LoadDomains decodes a DomainFile from r and registers every attribute in
// cfg via AddAttrDomain, in document order.
func LoadDomains(r io.Reader, cfg *interner.Config) error {
	var file DomainFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return err
	}
	for _, a := range file.Attributes {
		kind, err := parseValueType(a.Type)
		if err != nil {
			return err
		}
		bound := interner.Bound{}
		if a.Bound != nil {
			if a.Bound.Min != nil {
				bound.Min = boundEndpoint(kind, *a.Bound.Min)
			}
			if a.Bound.Max != nil {
				bound.Max = boundEndpoint(kind, *a.Bound.Max)
			}
			bound.StringBounded = a.Bound.StringBounded
			bound.MaxCardinality = a.Bound.MaxCardinality
		}
		if _, err := cfg.AddAttrDomain(a.Name, kind, bound, a.AllowUndefined); err != nil {
			return err
		}
	}
	return nil
}

func boundEndpoint(kind value.Kind, v float64) value.Value {
	if kind == value.Float64 {
		return value.FloatVal(v)
	}
	return value.IntVal(int64(v))
}
