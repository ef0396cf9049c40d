package domain

import "time"

// SessionOptions configures a codec session. A session is initialized
// once with a fixed configuration; reconfiguring for a different
// logical stream requires a new session.
type SessionOptions struct {
	// Format selects the framing. FormatAuto is decode-only.
	Format FormatVariant

	// Level is the compression level, DefaultCompression or 0-9.
	// Ignored on decompression sessions.
	Level int

	// WindowSize is the sliding-window exponent, MinWindowBits to
	// MaxWindowBits. Zero selects MaxWindowBits.
	WindowSize int

	// MemoryLevel trades internal compression state memory for speed,
	// MinMemLevel to MaxMemLevel. Zero selects DefaultMemLevel.
	// Ignored on decompression sessions.
	MemoryLevel int

	// Strategy tunes the compressor for particular data shapes.
	// Ignored on decompression sessions.
	Strategy Strategy

	// Dictionary, when non-empty, primes compression sessions before
	// any input is consumed. Decompression sessions ignore it here;
	// they install a dictionary on the NeedDictionary signal instead.
	Dictionary []byte
}

// FileOptions configures the chunked file processor.
type FileOptions struct {
	// ChunkSize is the fixed read size in bytes. Memory use of a file
	// operation stays proportional to this, independent of file size.
	// Zero selects DefaultChunkSize.
	ChunkSize int

	// ProgressInterval is the minimum time between progress
	// snapshots. The first and last chunk always emit one. Zero
	// disables periodic emission (boundary snapshots still fire).
	ProgressInterval time.Duration
}
