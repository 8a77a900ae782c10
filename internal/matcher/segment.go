package matcher

import (
	"github.com/ritamzico/bexpr/internal/expr"
	"github.com/ritamzico/bexpr/internal/value"
)

// matchSegment implements the WITHIN/BEFORE segment-age semantics.
// segments is assumed sorted ascending by id (the event producer's
// contract, not re-validated here): the scan skips ids below target, and
// stops at the first id >= target. A greater id, or running off the end of
// the list, means the segment was never recorded and the predicate is
// false.
func matchSegment(now int64, segments []value.Segment, op expr.SegmentOp, targetID, seconds int64) bool {
	for _, s := range segments {
		if s.ID < targetID {
			continue
		}
		if s.ID > targetID {
			return false
		}
		tsSeconds := s.TimestampMicros / 1_000_000
		if op == expr.SegmentWithin {
			return now-seconds <= tsSeconds
		}
		return now-seconds > tsSeconds
	}
	return false
}
