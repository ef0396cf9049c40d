// Package session implements the stateful codec sessions layered over
// the native primitive: incremental compression and decompression,
// dictionary negotiation, priming, introspection, and the one-shot
// helpers with bounded output growth.
//
// A session owns exactly one native handle and is not safe for
// concurrent use; each concurrent logical stream needs its own
// session. All calls are synchronous and block until the native codec
// returns.
package session

import (
	"github.com/Kosikowski/swift-zlib-sub001/internal/adapters/czlib"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/ports"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// maxPrimeBits is the per-call ceiling of the native priming
// primitive. Callers injecting more bits loop over Prime.
const maxPrimeBits = czlib.MaxPrimeBits

// Compressor is a compression session. Created with a fixed
// configuration, driven through Process calls, then finished with
// Finish and released with Close. Reusing a session for an unrelated
// logical stream is disallowed by convention; create a new one.
type Compressor struct {
	opts    domain.SessionOptions
	def     ports.Deflater
	state   domain.SessionState
	dict    []byte
	started bool // Input has reached the native codec.
}

// NewCompressor validates the configuration and wires the native
// adapter as the codec primitive. A dictionary supplied in the options
// is installed before any input is consumed, so its bytes participate
// from the first block.
func NewCompressor(opts *domain.SessionOptions) (*Compressor, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	applyDefaults(&o)
	if err := validateOptions(&o, false); err != nil {
		return nil, err
	}

	def, err := czlib.NewDeflater(o.Level, o.Format.WindowBits(o.WindowSize), o.MemoryLevel, o.Strategy)
	if err != nil {
		return nil, err
	}
	return NewCompressorWith(def, &o)
}

// NewCompressorWith builds a session around an already-initialized
// codec primitive: the seam for wiring adapters from a composition
// root or fakes from tests. The primitive's framing and parameters
// must match the options; NewCompressor is what most callers want.
func NewCompressorWith(def ports.Deflater, opts *domain.SessionOptions) (*Compressor, error) {
	if def == nil {
		return nil, errors.New(errors.KindParameter, "initialize", "nil codec primitive")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	applyDefaults(&o)
	if err := validateOptions(&o, false); err != nil {
		return nil, err
	}

	c := &Compressor{opts: o, def: def, state: domain.StateInitialized}
	if len(o.Dictionary) > 0 {
		if err := c.SetDictionary(o.Dictionary); err != nil {
			def.Close()
			return nil, err
		}
	}
	return c, nil
}

// Process feeds input to the codec under the given flush directive and
// returns whatever output it emitted. With NoFlush the codec may
// buffer everything and return nothing; with SyncFlush and stronger
// directives all produced output is emitted. No input byte is ever
// dropped: the internal loop runs the native step until the whole
// input is consumed and the output scratch is no longer filled.
func (c *Compressor) Process(input []byte, flush domain.FlushMode) ([]byte, error) {
	if err := c.usable("process"); err != nil {
		return nil, err
	}
	if !flush.Valid() {
		return nil, errors.Newf(errors.KindParameter, "process", "invalid flush directive %d", flush)
	}
	if flush == domain.Finish {
		return nil, errors.New(errors.KindProtocol, "process", "finishing the stream is done via Finish")
	}

	c.started = true
	out := []byte(nil)
	chunk := make([]byte, stepChunkSize)
	in := input
	for {
		res, err := c.def.Step(in, chunk, flush)
		out = append(out, chunk[:res.Produced]...)
		in = in[res.Consumed:]
		if err != nil {
			// A buffer-space signal here only means the codec made no
			// progress on this combination, e.g. a repeated flush with
			// nothing pending. Not fatal.
			if errors.Is(err, errors.KindBufferTooSmall) {
				return out, nil
			}
			c.state = domain.StateError
			return out, err
		}
		if len(in) == 0 && res.Produced < len(chunk) {
			return out, nil
		}
	}
}

// Finish completes the stream, emitting any buffered data and the
// format trailer, and transitions the session to the finished state.
func (c *Compressor) Finish() ([]byte, error) {
	if c.state == domain.StateFinished {
		return nil, nil
	}
	if err := c.usable("finish"); err != nil {
		return nil, err
	}

	c.started = true
	out := []byte(nil)
	chunk := make([]byte, stepChunkSize)
	for {
		res, err := c.def.Step(nil, chunk, domain.Finish)
		out = append(out, chunk[:res.Produced]...)
		if err != nil {
			c.state = domain.StateError
			return out, err
		}
		if res.Done {
			c.state = domain.StateFinished
			return out, nil
		}
	}
}

// SetDictionary primes the compressor. Legal only after initialization
// and before the first Process call: a dictionary installed later
// produces output no matching decoder dictionary will align with.
func (c *Compressor) SetDictionary(dict []byte) error {
	if err := c.usable("set-dictionary"); err != nil {
		return err
	}
	if c.started {
		return errors.New(errors.KindProtocol, "set-dictionary", "dictionary must be set before any input is processed")
	}
	if c.opts.Format == domain.FormatGzip {
		return errors.New(errors.KindProtocol, "set-dictionary", "gzip framing cannot carry a preset dictionary")
	}
	if err := c.def.SetDictionary(dict); err != nil {
		return err
	}
	c.dict = append([]byte(nil), dict...)
	return nil
}

// GetDictionary returns the currently loaded dictionary bytes, empty
// if none was set. The returned slice is an owned copy.
func (c *Compressor) GetDictionary() []byte {
	return append([]byte(nil), c.dict...)
}

// SetHeader attaches gzip metadata to the stream header. Legal only on
// gzip-format sessions before the header has been emitted.
func (c *Compressor) SetHeader(meta *domain.GzipMetadata) error {
	if err := c.usable("set-header"); err != nil {
		return err
	}
	if c.opts.Format != domain.FormatGzip {
		return errors.Newf(errors.KindProtocol, "set-header", "header metadata requires gzip format, session uses %s", c.opts.Format)
	}
	if c.started {
		return errors.New(errors.KindProtocol, "set-header", "header must be set before any input is processed")
	}
	return c.def.SetHeader(meta)
}

// Prime injects raw bits into the codec's output bit accumulator.
// Restricted to the raw format; at most maxPrimeBits per call.
func (c *Compressor) Prime(bits, value int) error {
	if err := c.usable("prime"); err != nil {
		return err
	}
	if err := validatePrime(c.opts.Format, bits, "prime"); err != nil {
		return err
	}
	return c.def.Prime(bits, value)
}

// Params changes compression level and strategy mid-stream. Input
// consumed so far keeps the old parameters.
func (c *Compressor) Params(level int, strategy domain.Strategy) error {
	if err := c.usable("params"); err != nil {
		return err
	}
	if level != domain.DefaultCompression &&
		(level < domain.NoCompression || level > domain.BestCompression) {
		return errors.Newf(errors.KindParameter, "params", "invalid level %d", level)
	}
	if !strategy.Valid() {
		return errors.Newf(errors.KindParameter, "params", "unknown strategy %d", strategy)
	}
	return c.def.Params(level, strategy)
}

// Tune adjusts the codec's internal match-search heuristics.
func (c *Compressor) Tune(p domain.TuneParams) error {
	if err := c.usable("tune"); err != nil {
		return err
	}
	if p.GoodLength <= 0 || p.MaxLazy <= 0 || p.NiceLength <= 0 || p.MaxChain <= 0 {
		return errors.New(errors.KindParameter, "tune", "tune parameters must be positive")
	}
	return c.def.Tune(p)
}

// Pending reports output buffered inside the codec: whole bytes plus
// bits of an unfinished byte.
func (c *Compressor) Pending() (int, int, error) {
	if err := c.usable("pending"); err != nil {
		return 0, 0, err
	}
	return c.def.Pending()
}

// Bound returns an upper bound on compressed size for sourceLen input
// bytes under the session's parameters.
func (c *Compressor) Bound(sourceLen int) int {
	if c.def == nil {
		return 0
	}
	return c.def.Bound(sourceLen)
}

// Reset reinitializes codec state retaining the configured parameters.
// The dictionary is cleared and must be installed again; the session
// becomes usable for more data of the same logical stream setup. It
// also clears the error state after a fatal native failure.
func (c *Compressor) Reset() error {
	if c.def == nil {
		return errors.New(errors.KindUninitialized, "reset", "session is closed")
	}
	if err := c.def.Reset(); err != nil {
		return err
	}
	c.state = domain.StateInitialized
	c.started = false
	c.dict = nil
	return nil
}

// Copy deep-duplicates the entire native state into a new, independent
// session. Used for speculative branching: both sessions continue from
// the same point without affecting each other.
func (c *Compressor) Copy() (*Compressor, error) {
	if c.def == nil {
		return nil, errors.New(errors.KindUninitialized, "copy", "session is closed")
	}
	def, err := c.def.Copy()
	if err != nil {
		return nil, err
	}
	return &Compressor{
		opts:    c.opts,
		def:     def,
		state:   c.state,
		dict:    append([]byte(nil), c.dict...),
		started: c.started,
	}, nil
}

// State returns the session's lifecycle state.
func (c *Compressor) State() domain.SessionState { return c.state }

// StreamInfo returns a read-only snapshot of the byte counters.
func (c *Compressor) StreamInfo() domain.StreamInfo {
	if c.def == nil {
		return domain.StreamInfo{}
	}
	return domain.StreamInfo{
		TotalIn:  c.def.TotalIn(),
		TotalOut: c.def.TotalOut(),
		Active:   c.state == domain.StateInitialized,
	}
}

// StreamStats extends StreamInfo with the observed compression ratio
// (output over input; smaller is better).
func (c *Compressor) StreamStats() domain.StreamStats {
	info := c.StreamInfo()
	stats := domain.StreamStats{StreamInfo: info}
	if info.TotalIn > 0 {
		stats.Ratio = float64(info.TotalOut) / float64(info.TotalIn)
	}
	return stats
}

// Close releases the native handle exactly once. Idempotent.
func (c *Compressor) Close() error {
	if c.def == nil {
		return nil
	}
	err := c.def.Close()
	c.def = nil
	c.state = domain.StateUninitialized
	return err
}

// usable gates operations that require a live, unfinished session.
func (c *Compressor) usable(operation string) error {
	switch {
	case c.def == nil:
		return errors.New(errors.KindUninitialized, operation, "session is closed")
	case c.state == domain.StateFinished:
		return errors.New(errors.KindProtocol, operation, "stream already finished")
	case c.state == domain.StateError:
		return errors.New(errors.KindProtocol, operation, "session is in error state; reset it first")
	}
	return nil
}
