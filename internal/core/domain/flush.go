package domain

// FlushMode controls whether a process call may leave produced data
// buffered inside the native codec or must emit it immediately. The
// numeric values are the native codec's own flush directives.
type FlushMode int

const (
	// NoFlush lets the codec buffer internally for best compression.
	// A process call with NoFlush may legitimately return zero bytes.
	NoFlush FlushMode = 0

	// PartialFlush emits enough output for the decoder to make
	// progress, without a full byte-alignment point.
	PartialFlush FlushMode = 1

	// SyncFlush emits all pending output and aligns to a byte
	// boundary, so everything fed so far can be decoded.
	SyncFlush FlushMode = 2

	// FullFlush is SyncFlush plus a compression state reset, allowing
	// decoding to restart from this point. Degrades ratio if overused.
	FullFlush FlushMode = 3

	// Finish completes the stream, emitting trailers where the format
	// carries them. Driven by the session's Finish operation.
	Finish FlushMode = 4

	// Block stops at the next deflate block boundary.
	Block FlushMode = 5

	// Trees is Block plus enough output to inspect the block header.
	Trees FlushMode = 6
)

// Valid reports whether the value is one of the defined directives.
func (f FlushMode) Valid() bool { return f >= NoFlush && f <= Trees }

// String returns the flush directive name.
func (f FlushMode) String() string {
	switch f {
	case NoFlush:
		return "no-flush"
	case PartialFlush:
		return "partial-flush"
	case SyncFlush:
		return "sync-flush"
	case FullFlush:
		return "full-flush"
	case Finish:
		return "finish"
	case Block:
		return "block"
	case Trees:
		return "trees"
	default:
		return "unknown"
	}
}

// Strategy tunes the native compressor for particular data shapes.
// The numeric values are the native codec's own strategy constants.
type Strategy int

const (
	// DefaultStrategy suits general-purpose data.
	DefaultStrategy Strategy = 0

	// Filtered suits data produced by a filter or predictor, where
	// small values with random distribution dominate.
	Filtered Strategy = 1

	// HuffmanOnly disables string matching entirely.
	HuffmanOnly Strategy = 2

	// RLE limits match distances to one, for image-like data.
	RLE Strategy = 3

	// Fixed prevents dynamic Huffman codes, for specialized decoders.
	Fixed Strategy = 4
)

// Valid reports whether the value is one of the defined strategies.
func (s Strategy) Valid() bool { return s >= DefaultStrategy && s <= Fixed }

// Compression levels understood by the native codec.
const (
	DefaultCompression = -1 // The codec's own default trade-off.
	NoCompression      = 0  // Stored blocks only.
	BestSpeed          = 1
	BestCompression    = 9
)
