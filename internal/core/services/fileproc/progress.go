package fileproc

import (
	"time"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
)

// ProgressFunc receives progress snapshots during a file operation.
// Returning false requests a cooperative stop: the operation aborts
// after the current chunk boundary with a Cancelled error. Partial
// output already written stays on disk; cleanup is the caller's
// responsibility.
type ProgressFunc func(domain.ProgressSnapshot) bool

// tracker accumulates progress state for one operation and decides
// when snapshots are due.
type tracker struct {
	total     uint64
	processed uint64
	started   time.Time
	lastEmit  time.Time
	interval  time.Duration
	emitted   bool
}

func newTracker(total int64, interval time.Duration) *tracker {
	t := &tracker{interval: interval, started: time.Now()}
	if total > 0 {
		t.total = uint64(total)
	}
	return t
}

func (t *tracker) add(n int) {
	t.processed += uint64(n)
}

// due reports whether a periodic snapshot should be emitted now. The
// first and last chunk emit unconditionally, handled by the caller.
func (t *tracker) due(now time.Time) bool {
	if !t.emitted {
		return true
	}
	return t.interval > 0 && now.Sub(t.lastEmit) >= t.interval
}

// snapshot produces an immutable progress view for the given phase.
func (t *tracker) snapshot(phase domain.Phase, now time.Time) domain.ProgressSnapshot {
	t.emitted = true
	t.lastEmit = now

	snap := domain.ProgressSnapshot{
		ProcessedBytes: t.processed,
		TotalBytes:     t.total,
		Phase:          phase,
		Timestamp:      now,
	}
	elapsed := now.Sub(t.started).Seconds()
	if elapsed > 0 {
		snap.Throughput = float64(t.processed) / elapsed
	}
	if t.total > 0 {
		snap.Percentage = float64(t.processed) / float64(t.total) * 100
		if snap.Throughput > 0 && t.processed < t.total {
			remaining := float64(t.total-t.processed) / snap.Throughput
			snap.ETA = time.Duration(remaining * float64(time.Second))
		}
	}
	return snap
}
