package configio

import (
	"encoding/json"
	"io"

	"github.com/ritamzico/bexpr/internal/event"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/matcher"
	"github.com/ritamzico/bexpr/internal/value"
)

// EventBatchFile is the top-level shape of an event batch document.
type EventBatchFile struct {
	Events []EventJSON `json:"events"`
}

// EventJSON is one event. Attributes holds ordinary, host-declared
// attribute observations keyed by name; the remaining fields feed the
// matcher's reserved Special-predicate attributes directly, since those
// are never declared through LoadDomains.
type EventJSON struct {
	Attributes map[string]json.RawMessage `json:"attributes"`

	Now                   *int64             `json:"now,omitempty"`
	Latitude              *float64           `json:"latitude,omitempty"`
	Longitude             *float64           `json:"longitude,omitempty"`
	Segments              []SegmentJSON      `json:"segments,omitempty"`
	FrequencyCapsObserved []FrequencyCapJSON `json:"frequency_caps_observed,omitempty"`
}

// SegmentJSON is one element of an event's observed segment membership
// list.
type SegmentJSON struct {
	ID              int64 `json:"id"`
	Seconds         int64 `json:"seconds"`
	TimestampMicros int64 `json:"timestamp_micros"`
}

// FrequencyCapJSON is one element of an event's observed frequency-cap
// counters.
type FrequencyCapJSON struct {
	Type            string `json:"type"`
	Namespace       string `json:"namespace"`
	Value           int64  `json:"value"`
	TimestampMicros int64  `json:"timestamp_micros"`
}

var freqCapTypeByName = map[string]value.FreqCapType{
	"advertiser": value.FreqCapAdvertiser,
	"campaign":   value.FreqCapCampaign,
	"flight":     value.FreqCapFlight,
	"product":    value.FreqCapProduct,
}

func parseFreqCapType(raw string) (value.FreqCapType, error) {
	t, ok := freqCapTypeByName[raw]
	if !ok {
		return 0, UnknownFreqCapType(raw)
	}
	return t, nil
}

// LoadEventBatch decodes an EventBatchFile from r.
func LoadEventBatch(r io.Reader) (EventBatchFile, error) {
	var file EventBatchFile
	err := json.NewDecoder(r).Decode(&file)
	return file, err
}

// DecodeEvent converts one EventJSON into an *event.Event, resolving every
// attribute name against cfg and interning string literals exactly as
// internal/compiler's assign_str_id pass would for a tree literal, so
// in-event strings compare correctly against compiled string predicates.
func DecodeEvent(cfg *interner.Config, ej EventJSON) (*event.Event, error) {
	var predicates []event.Predicate

	for name, raw := range ej.Attributes {
		varID, err := cfg.AttrVarID(name)
		if err != nil {
			return nil, err
		}
		domain, err := cfg.Domain(varID)
		if err != nil {
			return nil, err
		}
		v, err := decodeAttrValue(cfg, varID, domain.ValueType, raw)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, event.Predicate{VarID: varID, Value: v})
	}

	if ej.Now != nil {
		predicates = append(predicates, event.Predicate{VarID: cfg.NowVarID(), Value: value.IntVal(*ej.Now)})
	}
	if ej.Latitude != nil {
		predicates = append(predicates, event.Predicate{VarID: cfg.LatitudeVarID(), Value: value.FloatVal(*ej.Latitude)})
	}
	if ej.Longitude != nil {
		predicates = append(predicates, event.Predicate{VarID: cfg.LongitudeVarID(), Value: value.FloatVal(*ej.Longitude)})
	}
	if len(ej.Segments) > 0 {
		segments := make([]value.Segment, len(ej.Segments))
		for i, s := range ej.Segments {
			segments[i] = value.Segment{ID: s.ID, Seconds: s.Seconds, TimestampMicros: s.TimestampMicros}
		}
		predicates = append(predicates, event.Predicate{
			VarID: cfg.SegmentsVarID(),
			Value: value.Value{Kind: value.SegmentList, Segments: segments},
		})
	}
	if len(ej.FrequencyCapsObserved) > 0 {
		nsVar := cfg.FrequencyCapsVarID()
		caps := make([]value.FrequencyCap, len(ej.FrequencyCapsObserved))
		for i, c := range ej.FrequencyCapsObserved {
			capType, err := parseFreqCapType(c.Type)
			if err != nil {
				return nil, err
			}
			nsID, err := cfg.GetIDForString(nsVar, c.Namespace)
			if err != nil {
				return nil, err
			}
			caps[i] = value.FrequencyCap{
				Type:            capType,
				ID:              matcher.FrequencyTypeObjectID(capType),
				NamespaceStrID:  nsID,
				Value:           c.Value,
				TimestampMicros: c.TimestampMicros,
			}
		}
		predicates = append(predicates, event.Predicate{
			VarID: cfg.ObservedFrequencyCapsVarID(),
			Value: value.Value{Kind: value.FrequencyCapList, FreqCaps: caps},
		})
	}

	return event.New(predicates...), nil
}

func decodeAttrValue(cfg *interner.Config, varID int32, kind value.Kind, raw json.RawMessage) (value.Value, error) {
	switch kind {
	case value.Bool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return value.Value{}, err
		}
		return value.BoolVal(b), nil

	case value.Int64:
		var i int64
		if err := json.Unmarshal(raw, &i); err != nil {
			return value.Value{}, err
		}
		return value.IntVal(i), nil

	case value.Float64:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return value.Value{}, err
		}
		return value.FloatVal(f), nil

	case value.String:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return value.Value{}, err
		}
		strID, err := cfg.GetIDForString(varID, s)
		if err != nil {
			return value.Value{}, err
		}
		return value.InternedStr(varID, strID, s), nil

	case value.IntList:
		var ints []int64
		if err := json.Unmarshal(raw, &ints); err != nil {
			return value.Value{}, err
		}
		return value.Ints(ints...), nil

	case value.StringList:
		var strs []string
		if err := json.Unmarshal(raw, &strs); err != nil {
			return value.Value{}, err
		}
		sv := make([]value.StringValue, len(strs))
		for i, s := range strs {
			strID, err := cfg.GetIDForString(varID, s)
			if err != nil {
				return value.Value{}, err
			}
			sv[i] = value.StringValue{VarID: varID, StrID: strID, Raw: s}
		}
		return value.Value{Kind: value.StringList, StringListVal: sv}, nil

	default:
		domain, err := cfg.Domain(varID)
		if err != nil {
			return value.Value{}, err
		}
		return value.Value{}, UnsupportedAttributeValue(domain.Name, kind)
	}
}
