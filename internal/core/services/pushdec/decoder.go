// Package pushdec implements push-style ("inversion of control")
// decoding: instead of the caller looping over Process, the native
// callback-driven decoding primitive pulls compressed input and pushes
// decompressed output through two caller-supplied functions inside one
// blocking call.
//
// Push decoding operates only on raw DEFLATE streams and uses a fixed,
// pre-allocated window sized to the configured window bits, so its
// memory use is constant regardless of stream size.
package pushdec

import (
	"github.com/Kosikowski/swift-zlib-sub001/internal/adapters/czlib"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
)

// InputProvider returns the next compressed chunk. An empty chunk with
// a nil error signals end of input.
type InputProvider = czlib.InputProvider

// OutputConsumer receives one decompressed chunk. Returning false
// stops decoding after the current chunk; the stop surfaces as a
// Cancelled error, distinguishing caller intent from codec failure.
type OutputConsumer = czlib.OutputConsumer

// Decoder decodes exactly one raw DEFLATE stream in push mode.
type Decoder struct {
	back *czlib.BackReader
}

// New allocates a push decoder with the given window size exponent
// (domain.MinWindowBits to domain.MaxWindowBits; zero selects the full
// window). The window must be at least as large as the one the stream
// was compressed with.
func New(windowBits int) (*Decoder, error) {
	if windowBits == 0 {
		windowBits = domain.MaxWindowBits
	}
	back, err := czlib.NewBackReader(windowBits)
	if err != nil {
		return nil, err
	}
	return &Decoder{back: back}, nil
}

// Run decodes the stream, pulling input through provide and pushing
// output through consume. It blocks until the stream ends, a callback
// stops the operation, or decoding fails. Input provider failures are
// classified as I/O errors exactly once; a consumer stop is reported
// as Cancelled.
func (d *Decoder) Run(provide InputProvider, consume OutputConsumer) error {
	return d.back.Run(provide, consume)
}

// Close releases the native stream and the window. Idempotent.
func (d *Decoder) Close() error {
	return d.back.Close()
}
