package ports

import (
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
)

// StepResult reports what one native step call achieved.
type StepResult struct {
	Consumed int  // Input bytes the codec took from the caller slice.
	Produced int  // Output bytes the codec wrote into the caller slice.
	Done     bool // True once the codec reported end of stream.
}

// Deflater is the native compression primitive consumed by sessions.
// Implementations own exactly one native handle; Close must release it
// exactly once and be safe to call repeatedly.
type Deflater interface {
	// Step feeds input and drains output through the native codec
	// once. Callers loop until the input is consumed and the output
	// buffer is no longer filled completely.
	Step(in, out []byte, flush domain.FlushMode) (StepResult, error)

	// SetDictionary primes the compressor. Legal only before any
	// input has been consumed.
	SetDictionary(dict []byte) error

	// SetHeader attaches gzip header metadata. Legal only on
	// gzip-framed streams before any input has been consumed.
	SetHeader(meta *domain.GzipMetadata) error

	// Params changes level and strategy mid-stream, flushing first so
	// already-fed input is compressed with the old parameters.
	Params(level int, strategy domain.Strategy) error

	// Tune adjusts internal match-search heuristics.
	Tune(p domain.TuneParams) error

	// Prime injects up to 16 low-order bits of value ahead of the
	// next output byte.
	Prime(bits, value int) error

	// Pending reports output still buffered inside the codec, in
	// whole bytes plus bits of an unfinished byte.
	Pending() (bytes int, bits int, err error)

	// Bound returns an upper bound on compressed size for sourceLen
	// input bytes under the current parameters.
	Bound(sourceLen int) int

	// Reset reinitializes codec state keeping the configured
	// parameters.
	Reset() error

	// Copy deep-duplicates the entire native state.
	Copy() (Deflater, error)

	// TotalIn and TotalOut expose the native byte counters.
	TotalIn() uint64
	TotalOut() uint64

	// Close releases the native handle. Idempotent.
	Close() error
}

// Inflater is the native decompression primitive consumed by sessions.
type Inflater interface {
	// Step feeds input and drains output through the native codec
	// once. A NeedDictionary classification means the stream requires
	// a preset dictionary before decoding can continue.
	Step(in, out []byte, flush domain.FlushMode) (StepResult, error)

	// SetDictionary installs the preset dictionary requested by the
	// stream.
	SetDictionary(dict []byte) error

	// Header returns gzip metadata once the stream header has been
	// fully consumed; ok is false until then or for non-gzip framing.
	Header() (meta *domain.GzipMetadata, ok bool, err error)

	// Prime injects up to 16 low-order bits of value ahead of the
	// next input byte.
	Prime(bits, value int) error

	// Pending estimates output still buffered inside the codec.
	Pending() (bytes int, bits int, err error)

	// Reset reinitializes codec state keeping the configured
	// parameters.
	Reset() error

	// Copy deep-duplicates the entire native state.
	Copy() (Inflater, error)

	// TotalIn and TotalOut expose the native byte counters.
	TotalIn() uint64
	TotalOut() uint64

	// Close releases the native handle. Idempotent.
	Close() error
}
