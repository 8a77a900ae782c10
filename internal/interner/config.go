// Package interner is the process-wide registry mapping attribute names to
// dense variable ids and, per attribute, string literals to dense string
// ids, plus the declared value-type/bound "domain" of every attribute.
//
// A Config is single-writer during a setup phase (AddAttrDomain,
// GetIDForAttr, GetIDForString all mutate it) and is safe for concurrent
// *read-only* use by any number of matcher evaluations once setup is
// complete. The package itself does not lock: the caller must finish
// compiling every expression before the first MatchNode call, exactly as
// spec's concurrency model requires.
package interner

import "github.com/ritamzico/bexpr/internal/value"

// Bound is an attribute's declared domain bound. For Bool/Int64/Float64 it
// is the closed interval [Min,Max]. For String, StringBounded indicates
// whether the attribute's string universe is bounded; when it is, Min/Max
// (as String values carrying StrID) and MaxCardinality describe the bound.
type Bound struct {
	Min, Max       value.Value
	StringBounded  bool
	MaxCardinality int32
}

// AttrDomain is everything the Config stores about one registered
// attribute.
type AttrDomain struct {
	Name           string
	VarID          int32
	ValueType      value.Kind
	AllowUndefined bool
	Bound          Bound
}

type stringTable struct {
	byLiteral map[string]int32
	literals  []string
}

// Config is the interner and attribute-domain registry described in spec
// §4.1. The zero value is not usable; construct with New.
type Config struct {
	attrsByName map[string]int32
	domains     []AttrDomain
	strings     []stringTable
}

// New creates an empty Config.
func New() *Config {
	return &Config{
		attrsByName: make(map[string]int32),
	}
}

// GetIDForAttr is idempotent: the first call allocates a fresh variable id
// and records the attribute with the given domain template (VarID is
// overwritten with the assigned id); subsequent calls with the same name
// return the existing id and ignore the domain argument.
func (c *Config) GetIDForAttr(name string, domain AttrDomain) int32 {
	if id, ok := c.attrsByName[name]; ok {
		return id
	}
	id := int32(len(c.domains))
	domain.Name = name
	domain.VarID = id
	c.attrsByName[name] = id
	c.domains = append(c.domains, domain)
	c.strings = append(c.strings, stringTable{byLiteral: make(map[string]int32)})
	return id
}

// AddAttrDomain registers name with an explicit domain and returns its
// variable id. It is equivalent to GetIDForAttr but returns an error
// instead of silently ignoring a re-registration of an existing attribute,
// matching spec §6's "add_attr_domain" constructor entry point.
func (c *Config) AddAttrDomain(name string, valueType value.Kind, bound Bound, allowUndefined bool) (int32, error) {
	if _, ok := c.attrsByName[name]; ok {
		return 0, AttributeAlreadyExists(name)
	}
	id := c.GetIDForAttr(name, AttrDomain{
		ValueType:      valueType,
		AllowUndefined: allowUndefined,
		Bound:          bound,
	})
	return id, nil
}

// GetIDForString interns literal in the per-attribute string table of
// attrVar, returning a dense, zero-based id.
func (c *Config) GetIDForString(attrVar int32, literal string) (int32, error) {
	if attrVar < 0 || int(attrVar) >= len(c.strings) {
		return 0, UnknownVariable(attrVar)
	}
	tbl := &c.strings[attrVar]
	if id, ok := tbl.byLiteral[literal]; ok {
		return id, nil
	}
	id := int32(len(tbl.literals))
	tbl.byLiteral[literal] = id
	tbl.literals = append(tbl.literals, literal)
	return id, nil
}

// LookupString returns the literal previously interned under attrVar/strID,
// if any.
func (c *Config) LookupString(attrVar, strID int32) (string, bool) {
	if attrVar < 0 || int(attrVar) >= len(c.strings) {
		return "", false
	}
	tbl := &c.strings[attrVar]
	if strID < 0 || int(strID) >= len(tbl.literals) {
		return "", false
	}
	return tbl.literals[strID], true
}

// StringCount returns how many distinct literals have been interned for
// attrVar so far.
func (c *Config) StringCount(attrVar int32) int32 {
	if attrVar < 0 || int(attrVar) >= len(c.strings) {
		return 0
	}
	return int32(len(c.strings[attrVar].literals))
}

// IsStringInterned reports whether literal has already been interned for
// attrVar, without allocating a new id.
func (c *Config) IsStringInterned(attrVar int32, literal string) bool {
	if attrVar < 0 || int(attrVar) >= len(c.strings) {
		return false
	}
	_, ok := c.strings[attrVar].byLiteral[literal]
	return ok
}

// VarExists reports whether name has been registered.
func (c *Config) VarExists(name string) bool {
	_, ok := c.attrsByName[name]
	return ok
}

// AttrVarID returns the variable id registered for name.
func (c *Config) AttrVarID(name string) (int32, error) {
	id, ok := c.attrsByName[name]
	if !ok {
		return 0, UnknownAttribute(name)
	}
	return id, nil
}

// Domain returns the registered domain for varID.
func (c *Config) Domain(varID int32) (AttrDomain, error) {
	if varID < 0 || int(varID) >= len(c.domains) {
		return AttrDomain{}, UnknownVariable(varID)
	}
	return c.domains[varID], nil
}

// IsVariableAllowUndefined reports whether varID's attribute permits
// match-time absence (spec §4.4.1's UNDEFINED outcome) rather than being a
// fatal MISSING contract violation.
func (c *Config) IsVariableAllowUndefined(varID int32) (bool, error) {
	d, err := c.Domain(varID)
	if err != nil {
		return false, err
	}
	return d.AllowUndefined, nil
}

// Clone returns a deep, independent copy of c's attribute, domain and
// string-interning tables; later mutations of either copy do not affect the
// other. Predicate-dedup state lives in predmap and is not part of a Config.
func (c *Config) Clone() *Config {
	out := New()
	out.attrsByName = make(map[string]int32, len(c.attrsByName))
	for k, v := range c.attrsByName {
		out.attrsByName[k] = v
	}
	out.domains = append([]AttrDomain(nil), c.domains...)
	out.strings = make([]stringTable, len(c.strings))
	for i, tbl := range c.strings {
		nt := stringTable{byLiteral: make(map[string]int32, len(tbl.byLiteral))}
		for k, v := range tbl.byLiteral {
			nt.byLiteral[k] = v
		}
		nt.literals = append([]string(nil), tbl.literals...)
		out.strings[i] = nt
	}
	return out
}

// frequencyCapsAttr is the reserved attribute namespace frequency-cap
// literals are interned under, per spec §4.3.
const frequencyCapsAttr = "frequency_caps"

// FrequencyCapsVarID returns (registering if necessary) the variable id
// reserved for interning frequency-cap namespace strings. This is purely an
// interning-table key: it is never looked up against an event's predicate
// list. The event's own observed frequency-cap list lives under the
// distinct reserved id ObservedFrequencyCapsVarID returns, so that the two
// concerns (namespace string interning vs. the runtime FrequencyCapList
// value the matcher reads) never collide under one variable id.
func (c *Config) FrequencyCapsVarID() int32 {
	return c.GetIDForAttr(frequencyCapsAttr, AttrDomain{
		ValueType:      value.String,
		AllowUndefined: true,
	})
}

// Reserved variable names for the fixed attributes the matcher's Special
// predicates read directly at match time (spec §4.4.2), registered
// on demand under internal names that cannot collide with a host's
// user-declared attributes or with FrequencyCapsVarID's interning-only
// "frequency_caps" slot.
const (
	nowAttr              = "$now"
	observedFreqCapsAttr = "$frequency_caps_observed"
	segmentsAttr         = "$segments"
	latitudeAttr         = "$latitude"
	longitudeAttr        = "$longitude"
)

// NowVarID returns the reserved variable id for the event's "now" Int64
// clock reading, required by Frequency and Segment predicates.
func (c *Config) NowVarID() int32 {
	return c.GetIDForAttr(nowAttr, AttrDomain{ValueType: value.Int64})
}

// ObservedFrequencyCapsVarID returns the reserved variable id for the
// event's observed FrequencyCapList, distinct from FrequencyCapsVarID's
// namespace-interning slot. Absence is treated as "no caps recorded"
// (AllowUndefined), matching the WITHIN_CAP "no matching cap found" default
// of true.
func (c *Config) ObservedFrequencyCapsVarID() int32 {
	return c.GetIDForAttr(observedFreqCapsAttr, AttrDomain{ValueType: value.FrequencyCapList, AllowUndefined: true})
}

// SegmentsVarID returns the reserved variable id for the event's observed
// SegmentList.
func (c *Config) SegmentsVarID() int32 {
	return c.GetIDForAttr(segmentsAttr, AttrDomain{ValueType: value.SegmentList, AllowUndefined: true})
}

// LatitudeVarID and LongitudeVarID return the reserved variable ids for the
// event's observed Float64 location, read by the Geo predicate.
func (c *Config) LatitudeVarID() int32 {
	return c.GetIDForAttr(latitudeAttr, AttrDomain{ValueType: value.Float64, AllowUndefined: true})
}

func (c *Config) LongitudeVarID() int32 {
	return c.GetIDForAttr(longitudeAttr, AttrDomain{ValueType: value.Float64, AllowUndefined: true})
}
