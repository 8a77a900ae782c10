package matcher

import "github.com/willf/bitset"

// Memoize is the per-evaluation pass/fail bitset pair spec §4.4/§9
// describes: two bitsets of length pred_count encode three states (unknown,
// pass, fail) without a tri-state enum. It is owned exclusively by one
// MatchNode call tree over one event and must never be shared across
// goroutines. The bitsets are allocated lazily on first Set call, per spec
// §9's "allocate lazily if pred_count is large" note — a tree that never
// produces a memoizable hit (e.g. every node id unassigned) never pays for
// either bitset.
type Memoize struct {
	predCount uint
	pass      *bitset.BitSet
	fail      *bitset.BitSet
}

// NewMemoize allocates a Memoize sized for predCount distinct predicate ids.
// Passing a nil *Memoize to MatchNode disables memoization entirely.
func NewMemoize(predCount int) *Memoize {
	return &Memoize{predCount: uint(predCount)}
}

// Pass reports whether node id has a cached passing result.
func (m *Memoize) Pass(id uint32) bool {
	if m == nil || m.pass == nil {
		return false
	}
	return m.pass.Test(uint(id))
}

// Fail reports whether node id has a cached failing result.
func (m *Memoize) Fail(id uint32) bool {
	if m == nil || m.fail == nil {
		return false
	}
	return m.fail.Test(uint(id))
}

// SetPass records a passing result for node id.
func (m *Memoize) SetPass(id uint32) {
	if m == nil {
		return
	}
	if m.pass == nil {
		m.pass = bitset.New(m.predCount)
	}
	m.pass.Set(uint(id))
}

// SetFail records a failing result for node id.
func (m *Memoize) SetFail(id uint32) {
	if m == nil {
		return
	}
	if m.fail == nil {
		m.fail = bitset.New(m.predCount)
	}
	m.fail.Set(uint(id))
}
