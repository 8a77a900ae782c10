// Package bound computes the tightest static value interval a compiled
// expression tree can constrain a single attribute to, without evaluating
// any event. Used ahead of matching to prune candidate trees whose bound
// cannot possibly be satisfied by a given event, per spec §4.5.
package bound

import (
	"math"

	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/interner"
	"github.com/ritamzico/bexpr/internal/value"
)

// Interval is a closed value range [Min, Max], both inclusive.
type Interval struct {
	Min, Max value.Value
}

// GetVariableBound computes the tightest interval over domain.VarID that
// root can constrain, following spec §4.5's algorithm: a single shared
// accumulator folded across the whole tree regardless of AND/OR structure
// (a deliberately conservative union, not a per-branch intersection — see
// the worked example in DESIGN.md), an is_reversed flag toggled by every
// NOT, and one-ULP/one-unit tightening for strict LT/GT.
func GetVariableBound(domain interner.AttrDomain, root *expr.Node) (Interval, error) {
	switch domain.ValueType {
	case value.Bool, value.Int64, value.Float64, value.String:
	default:
		return Interval{}, UnsupportedTypeError{Kind: domain.ValueType}
	}

	acc := emptyAccumulator(domain)
	st := state{}
	visit(root, false, domain, &acc, &st)

	if !st.touched {
		return fullDomain(domain), nil
	}
	// A side that was never folded by any predicate (e.g. "x < k" never
	// touches the lower side) stays at its inverted sentinel; widen it to
	// domain's real endpoint per spec §4.5 step 3, once, after the whole
	// tree has been folded — not per predicate, since a later predicate on
	// the other side (an AND'd upper-bound, say) must still be free to
	// tighten the side this one left alone.
	if !st.lowerTouched {
		acc.Min = domainMin(domain)
	}
	if !st.upperTouched {
		acc.Max = domainMax(domain)
	}
	return acc, nil
}

// state tracks whether the attribute was referenced at all, and
// independently which side(s) of the interval have been folded by a real
// predicate (as opposed to still sitting at the empty-accumulator
// sentinel).
type state struct {
	touched, lowerTouched, upperTouched bool
}

func domainMin(domain interner.AttrDomain) value.Value {
	if domain.ValueType == value.Bool {
		return value.BoolVal(false)
	}
	return domain.Bound.Min
}

func domainMax(domain interner.AttrDomain) value.Value {
	if domain.ValueType == value.Bool {
		return value.BoolVal(true)
	}
	return domain.Bound.Max
}

// emptyAccumulator is step 1's "[domain.max, domain.min] (inverted)":
// Min starts at the domain's upper sentinel so the first real lower-side
// touch can only shrink it; Max starts at the domain's lower sentinel so
// the first real upper-side touch can only grow it.
func emptyAccumulator(domain interner.AttrDomain) Interval {
	if domain.ValueType == value.Bool {
		return Interval{Min: value.BoolVal(true), Max: value.BoolVal(false)}
	}
	return Interval{Min: domain.Bound.Max, Max: domain.Bound.Min}
}

func fullDomain(domain interner.AttrDomain) Interval {
	if domain.ValueType == value.Bool {
		return Interval{Min: value.BoolVal(false), Max: value.BoolVal(true)}
	}
	return Interval{Min: domain.Bound.Min, Max: domain.Bound.Max}
}

// visit recurses the tree, folding every comparison/equality node that
// references domain.VarID into acc. reversed flips on every NOT and is
// otherwise threaded unchanged through AND/OR, per spec §4.5 step 2.
func visit(node *expr.Node, reversed bool, domain interner.AttrDomain, acc *Interval, st *state) {
	if node == nil {
		return
	}

	switch node.Tag() {
	case expr.TagBool:
		b := node.Bool
		switch b.Op {
		case expr.AND, expr.OR:
			visit(b.LHS, reversed, domain, acc, st)
			visit(b.RHS, reversed, domain, acc, st)
		case expr.NOT:
			visit(b.Child, !reversed, domain, acc, st)
		case expr.VARIABLE:
			if b.AttrVar != domain.VarID || domain.ValueType != value.Bool {
				return
			}
			st.touched = true
			foldPoint(acc, domain, st, value.BoolVal(!reversed))
		}

	case expr.TagNumericCompare:
		n := node.NumericCompare
		if n.AttrVar != domain.VarID {
			return
		}
		st.touched = true
		foldCompare(acc, domain, st, n.Op, reversed, n.Val)

	case expr.TagEquality:
		n := node.Equality
		if n.AttrVar != domain.VarID {
			return
		}
		st.touched = true
		foldEquality(acc, domain, st, n.Op, reversed, n.Val)

	// List, Set, Special, and every other node kind are skipped entirely
	// per spec §4.5 step 4, whether or not they reference domain.VarID.
	default:
	}
}

// foldCompare folds a single-sided LT/LE/GT/GE predicate into acc. Each
// branch constrains only one side of the interval (e.g. "x < k" says
// nothing about how low x can go); the untouched side is left alone here
// and widened to domain's real endpoint once, after the whole tree has
// been visited, only if no predicate anywhere ever touches it (see the
// lowerTouched/upperTouched cleanup in GetVariableBound) — folding it
// inline here would wipe out a tighter bound an AND'd sibling predicate
// contributes to that same side.
func foldCompare(acc *Interval, domain interner.AttrDomain, st *state, op expr.CompareOp, reversed bool, k value.Value) {
	switch op {
	case expr.LT:
		if !reversed {
			foldUpper(acc, domain, st, tightenDown(domain, k))
		} else {
			foldLower(acc, domain, st, k)
		}
	case expr.LE:
		if !reversed {
			foldUpper(acc, domain, st, k)
		} else {
			foldLower(acc, domain, st, tightenUp(domain, k))
		}
	case expr.GT:
		if !reversed {
			foldLower(acc, domain, st, tightenUp(domain, k))
		} else {
			foldUpper(acc, domain, st, k)
		}
	case expr.GE:
		if !reversed {
			foldLower(acc, domain, st, k)
		} else {
			foldUpper(acc, domain, st, tightenDown(domain, k))
		}
	}
}

func foldEquality(acc *Interval, domain interner.AttrDomain, st *state, op expr.EqualityOp, reversed bool, k value.Value) {
	isEQ := (op == expr.EQ && !reversed) || (op == expr.NE && reversed)
	if isEQ {
		foldPoint(acc, domain, st, k)
		return
	}
	// NE un-reversed, or EQ reversed (i.e. the effective predicate is !=):
	// expands to the full domain, contributing no real tightening but
	// still marking the attribute as referenced.
	foldLower(acc, domain, st, domain.Bound.Min)
	foldUpper(acc, domain, st, domain.Bound.Max)
}

func foldPoint(acc *Interval, domain interner.AttrDomain, st *state, k value.Value) {
	foldLower(acc, domain, st, k)
	foldUpper(acc, domain, st, k)
}

func foldLower(acc *Interval, domain interner.AttrDomain, st *state, v value.Value) {
	acc.Min = minValue(acc.Min, v, domain.ValueType)
	st.lowerTouched = true
}

func foldUpper(acc *Interval, domain interner.AttrDomain, st *state, v value.Value) {
	acc.Max = maxValue(acc.Max, v, domain.ValueType)
	st.upperTouched = true
}

// tightenDown/tightenUp implement spec §4.5's "Int LT/GT tightened by one,
// Float LT/GT tightened by one epsilon" rule, via math.Nextafter for
// floats — the bound analyzer's own one-ULP step, independent of the
// matcher's fixed value.FloatEpsilon (see DESIGN.md).
func tightenDown(domain interner.AttrDomain, k value.Value) value.Value {
	switch domain.ValueType {
	case value.Int64:
		return value.IntVal(k.I - 1)
	case value.Float64:
		return value.FloatVal(math.Nextafter(k.F, math.Inf(-1)))
	default:
		return k
	}
}

func tightenUp(domain interner.AttrDomain, k value.Value) value.Value {
	switch domain.ValueType {
	case value.Int64:
		return value.IntVal(k.I + 1)
	case value.Float64:
		return value.FloatVal(math.Nextafter(k.F, math.Inf(1)))
	default:
		return k
	}
}

// less reports whether a sorts strictly before b under kind's natural
// ordering (numeric for Int64/Float64, false<true for Bool, interned
// string id order for String).
func less(a, b value.Value, kind value.Kind) bool {
	switch kind {
	case value.Bool:
		return !a.B && b.B
	case value.Int64:
		return a.I < b.I
	case value.Float64:
		return a.F < b.F
	case value.String:
		return a.StrID < b.StrID
	default:
		return false
	}
}

func minValue(a, b value.Value, kind value.Kind) value.Value {
	if less(b, a, kind) {
		return b
	}
	return a
}

func maxValue(a, b value.Value, kind value.Kind) value.Value {
	if less(a, b, kind) {
		return b
	}
	return a
}
