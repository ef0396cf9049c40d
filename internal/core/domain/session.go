package domain

// SessionState tracks where a codec session is in its lifecycle.
// Process is valid only in StateInitialized; Finish transitions to
// StateFinished; a fatal native failure enters StateError, after which
// only Reset or Close are useful.
type SessionState uint8

const (
	StateUninitialized SessionState = iota
	StateInitialized
	StateFinished
	StateError
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateFinished:
		return "finished"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// StreamInfo is a read-only snapshot of a session's byte counters.
type StreamInfo struct {
	TotalIn  uint64 // Bytes consumed from caller input so far.
	TotalOut uint64 // Bytes produced to the caller so far.
	Active   bool   // True while the session can accept more input.
}

// StreamStats extends StreamInfo with the compression ratio observed
// so far. Ratio is output over input for compression sessions and
// input over output for decompression sessions, so smaller is better
// in both directions.
type StreamStats struct {
	StreamInfo
	Ratio float64
}

// TuneParams adjusts the native compressor's internal match-search
// heuristics. Only meaningful on compression sessions; all four values
// must be positive.
type TuneParams struct {
	GoodLength int // Match length that reduces further search effort.
	MaxLazy    int // Ceiling for deferred (lazy) matching.
	NiceLength int // Match length considered good enough to stop.
	MaxChain   int // Hash-chain search depth limit.
}
