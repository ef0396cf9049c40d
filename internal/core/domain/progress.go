package domain

import "time"

// Phase identifies what the chunked file processor was doing when a
// progress snapshot was taken.
type Phase uint8

const (
	PhaseReading Phase = iota
	PhaseTransforming
	PhaseWriting
	PhaseFlushing
	PhaseFinished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReading:
		return "reading"
	case PhaseTransforming:
		return "transforming"
	case PhaseWriting:
		return "writing"
	case PhaseFlushing:
		return "flushing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ProgressSnapshot is an immutable view of a file operation's
// progress, produced periodically by the chunked file processor.
type ProgressSnapshot struct {
	// ProcessedBytes counts source bytes consumed so far.
	ProcessedBytes uint64

	// TotalBytes is the source size, or zero when unknown (pipes).
	TotalBytes uint64

	// Percentage is ProcessedBytes over TotalBytes, 0-100. Zero when
	// the total is unknown.
	Percentage float64

	// Throughput is the observed processing rate in bytes per second
	// since the operation started.
	Throughput float64

	// ETA estimates the remaining duration at the observed throughput.
	// Zero when the total is unknown or nothing was processed yet.
	ETA time.Duration

	// Phase is the processor's activity at snapshot time.
	Phase Phase

	// Timestamp is when the snapshot was taken.
	Timestamp time.Time
}
