// Package bexpr is the root facade over the Boolean expression matching
// engine: a config/compile/match surface re-exporting the internal
// packages' types, grounded on pgraph.go's own re-export-and-wrap shape.
package bexpr

import (
	"io"

	"github.com/ritamzico/bexpr/internal/bound"
	"github.com/ritamzico/bexpr/internal/compiler"
	"github.com/ritamzico/bexpr/internal/configio"
	"github.com/ritamzico/bexpr/internal/event"
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/matcher"
	"github.com/ritamzico/bexpr/internal/predmap"
	"github.com/ritamzico/bexpr/internal/testdsl"
	"github.com/ritamzico/bexpr/internal/value"
)

type (
	Node       = expr.Node
	Value      = value.Value
	Kind       = value.Kind
	Event      = event.Event
	Predicate  = event.Predicate
	AttrDomain = interner.AttrDomain
	Bound      = interner.Bound
	Interval   = bound.Interval
	Memoize    = matcher.Memoize
	Report     = matcher.Report
	EventJSON  = configio.EventJSON
	DomainFile = configio.DomainFile
)

// Engine owns a single Config and predicate dedup map: one per independent
// batch of compiled expressions, per spec §4's "single-writer-setup,
// multi-reader-eval" concurrency model.
type Engine struct {
	cfg *interner.Config
	pm  *predmap.Map
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{
		cfg: interner.New(),
		pm:  predmap.New(),
	}
}

// AddAttrDomain registers an attribute's declared type and bound.
func (e *Engine) AddAttrDomain(name string, valueType value.Kind, b interner.Bound, allowUndefined bool) (int32, error) {
	return e.cfg.AddAttrDomain(name, valueType, b, allowUndefined)
}

// LoadDomains decodes and registers a batch of attribute declarations from
// a JSON document.
func (e *Engine) LoadDomains(r io.Reader) error {
	return configio.LoadDomains(r, e.cfg)
}

// Parse parses a testdsl expression into an uncompiled tree.
func (e *Engine) Parse(text string) (*Node, error) {
	return testdsl.ParseString(text)
}

// Compile runs the three compiler passes over node against this Engine's
// Config and predicate map, returning the compiled tree ready for MatchNode
// or GetVariableBound.
func (e *Engine) Compile(node *Node) (*Node, error) {
	return compiler.Compile(e.cfg, e.pm, node)
}

// ParseAndCompile is a convenience wrapper chaining Parse and Compile.
func (e *Engine) ParseAndCompile(text string) (*Node, error) {
	node, err := e.Parse(text)
	if err != nil {
		return nil, err
	}
	return e.Compile(node)
}

// DecodeEvent converts a decoded EventJSON into a runtime *Event, resolving
// attribute names and interning string literals against this Engine's
// Config.
func (e *Engine) DecodeEvent(ej configio.EventJSON) (*Event, error) {
	return configio.DecodeEvent(e.cfg, ej)
}

// Match evaluates a compiled tree against ev, optionally recording
// memoization state/statistics in memo/report (either may be nil).
func (e *Engine) Match(ev *Event, node *Node, memo *Memoize, report *Report) (bool, error) {
	return matcher.MatchNode(e.cfg, ev, node, memo, report)
}

// MustMatch is Match, panicking on a contract-violation error instead of
// returning it, for callers that want spec §7's literal "abort" behavior.
func (e *Engine) MustMatch(ev *Event, node *Node, memo *Memoize, report *Report) bool {
	return matcher.MustMatch(e.cfg, ev, node, memo, report)
}

// Bound computes the tightest static interval node can constrain attrName
// to, per spec §4.5.
func (e *Engine) Bound(attrName string, node *Node) (Interval, error) {
	varID, err := e.cfg.AttrVarID(attrName)
	if err != nil {
		return Interval{}, err
	}
	domain, err := e.cfg.Domain(varID)
	if err != nil {
		return Interval{}, err
	}
	return bound.GetVariableBound(domain, node)
}

// Config exposes the Engine's underlying interner, for callers that need
// direct access to the reserved Special-predicate variable ids or string
// interning beyond what Engine itself wraps.
func (e *Engine) Config() *interner.Config {
	return e.cfg
}

// PredCount returns the number of distinct predicates compiled so far
// through this Engine, the size a caller should allocate a Memoize with.
func (e *Engine) PredCount() int {
	return e.pm.PredCount()
}

// NewMemoize allocates a Memoize sized for every predicate compiled so far
// through this Engine.
func (e *Engine) NewMemoize() *Memoize {
	return matcher.NewMemoize(e.pm.PredCount())
}
