package session

import (
	"github.com/Kosikowski/swift-zlib-sub001/internal/adapters/czlib"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/ports"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// Decompressor is a decompression session. The format may be any
// variant including FormatAuto, which lets the codec sniff zlib vs
// gzip framing from the magic bytes.
type Decompressor struct {
	opts  domain.SessionOptions
	inf   ports.Inflater
	state domain.SessionState
	dict  []byte

	// Dictionary negotiation: when the codec signals NeedDictionary,
	// the unconsumed input is retained so the caller can install the
	// dictionary and simply call Process again to resume.
	awaitingDict bool
	backlog      []byte
}

// NewDecompressor validates the configuration and wires the native
// adapter as the codec primitive. Level, memory level and strategy are
// compression-side knobs and are ignored here.
func NewDecompressor(opts *domain.SessionOptions) (*Decompressor, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	applyDefaults(&o)
	if err := validateOptions(&o, true); err != nil {
		return nil, err
	}

	inf, err := czlib.NewInflater(o.Format.WindowBits(o.WindowSize))
	if err != nil {
		return nil, err
	}
	return NewDecompressorWith(inf, &o)
}

// NewDecompressorWith builds a session around an already-initialized
// codec primitive: the seam for wiring adapters from a composition
// root or fakes from tests. The primitive's framing must match the
// options; NewDecompressor is what most callers want.
func NewDecompressorWith(inf ports.Inflater, opts *domain.SessionOptions) (*Decompressor, error) {
	if inf == nil {
		return nil, errors.New(errors.KindParameter, "initialize", "nil codec primitive")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	applyDefaults(&o)
	if err := validateOptions(&o, true); err != nil {
		return nil, err
	}
	return &Decompressor{opts: o, inf: inf, state: domain.StateInitialized}, nil
}

// Process feeds compressed input and returns the decoded bytes
// produced so far. When the stream was compressed against a preset
// dictionary, Process returns a NeedDictionary error; install the
// dictionary with SetDictionary and call Process again (more input is
// optional) to resume from the retained unconsumed bytes.
//
// Input remaining after the end of the stream is ignored, matching
// the native codec, and the session transitions to the finished state.
func (d *Decompressor) Process(input []byte, flush domain.FlushMode) ([]byte, error) {
	if err := d.usable("process"); err != nil {
		return nil, err
	}
	if !flush.Valid() {
		return nil, errors.Newf(errors.KindParameter, "process", "invalid flush directive %d", flush)
	}

	in := input
	if len(d.backlog) > 0 {
		in = append(d.backlog, input...)
	}
	d.backlog = nil

	out := []byte(nil)
	chunk := make([]byte, stepChunkSize)
	for {
		res, err := d.inf.Step(in, chunk, flush)
		out = append(out, chunk[:res.Produced]...)
		in = in[res.Consumed:]
		if err != nil {
			if errors.IsNeedDictionary(err) {
				d.awaitingDict = true
				d.backlog = append([]byte(nil), in...)
				return out, err
			}
			// No-progress signal: the codec wants more input. Benign
			// for streaming callers, who feed the next chunk. Anything
			// unconsumed is retained for the next call.
			if errors.Is(err, errors.KindBufferTooSmall) {
				if len(in) > 0 {
					d.backlog = append([]byte(nil), in...)
				}
				return out, nil
			}
			d.state = domain.StateError
			return out, err
		}
		if res.Done {
			d.state = domain.StateFinished
			return out, nil
		}
		if len(in) == 0 && res.Produced < len(chunk) {
			return out, nil
		}
	}
}

// Finish drains any remaining buffered output and verifies the stream
// completed. A stream cut off mid-way surfaces as DataCorruption;
// whether truncation instead yields a silent partial result earlier is
// native-build-dependent, and both outcomes are accepted by callers of
// this layer.
func (d *Decompressor) Finish() ([]byte, error) {
	if d.state == domain.StateFinished {
		return nil, nil
	}
	if err := d.usable("finish"); err != nil {
		return nil, err
	}
	if d.awaitingDict {
		return nil, errors.New(errors.KindNeedDictionary, "finish", "stream is waiting for a preset dictionary")
	}

	out := []byte(nil)
	chunk := make([]byte, stepChunkSize)
	in := d.backlog
	d.backlog = nil
	for {
		res, err := d.inf.Step(in, chunk, domain.Finish)
		out = append(out, chunk[:res.Produced]...)
		in = in[res.Consumed:]
		if err != nil {
			if errors.Is(err, errors.KindBufferTooSmall) {
				d.state = domain.StateError
				return out, errors.New(errors.KindDataCorruption, "finish", "truncated or incomplete stream")
			}
			d.state = domain.StateError
			return out, err
		}
		if res.Done {
			d.state = domain.StateFinished
			return out, nil
		}
		if res.Produced < len(chunk) && len(in) == 0 {
			d.state = domain.StateError
			return out, errors.New(errors.KindDataCorruption, "finish", "truncated or incomplete stream")
		}
	}
}

// SetDictionary installs the preset dictionary the stream asked for.
// Legal only immediately after Process returned NeedDictionary; any
// other timing is a protocol violation. A wrong dictionary surfaces as
// DataCorruption and the session keeps waiting for the right one.
func (d *Decompressor) SetDictionary(dict []byte) error {
	if err := d.usable("set-dictionary"); err != nil {
		return err
	}
	if !d.awaitingDict {
		return errors.New(errors.KindProtocol, "set-dictionary",
			"dictionary may only be set after a need-dictionary signal")
	}
	if err := d.inf.SetDictionary(dict); err != nil {
		return err
	}
	d.awaitingDict = false
	d.dict = append([]byte(nil), dict...)
	return nil
}

// GetDictionary returns the currently loaded dictionary bytes, empty
// if none was installed. The returned slice is an owned copy.
func (d *Decompressor) GetDictionary() []byte {
	return append([]byte(nil), d.dict...)
}

// Header returns gzip metadata once the stream header has been fully
// consumed. ok stays false for non-gzip framing.
func (d *Decompressor) Header() (*domain.GzipMetadata, bool, error) {
	if d.inf == nil {
		return nil, false, errors.New(errors.KindUninitialized, "header", "session is closed")
	}
	return d.inf.Header()
}

// Prime injects raw bits into the codec's input bit accumulator.
// Restricted to the raw format; at most maxPrimeBits per call.
func (d *Decompressor) Prime(bits, value int) error {
	if err := d.usable("prime"); err != nil {
		return err
	}
	if err := validatePrime(d.opts.Format, bits, "prime"); err != nil {
		return err
	}
	return d.inf.Prime(bits, value)
}

// Pending estimates output still buffered inside the codec.
func (d *Decompressor) Pending() (int, int, error) {
	if err := d.usable("pending"); err != nil {
		return 0, 0, err
	}
	return d.inf.Pending()
}

// Reset reinitializes codec state retaining the configured parameters,
// clearing dictionary negotiation and any retained input. It also
// clears the error state after a fatal native failure.
func (d *Decompressor) Reset() error {
	if d.inf == nil {
		return errors.New(errors.KindUninitialized, "reset", "session is closed")
	}
	if err := d.inf.Reset(); err != nil {
		return err
	}
	d.state = domain.StateInitialized
	d.awaitingDict = false
	d.backlog = nil
	d.dict = nil
	return nil
}

// Copy deep-duplicates the entire native state into a new, independent
// session, including any retained unconsumed input.
func (d *Decompressor) Copy() (*Decompressor, error) {
	if d.inf == nil {
		return nil, errors.New(errors.KindUninitialized, "copy", "session is closed")
	}
	inf, err := d.inf.Copy()
	if err != nil {
		return nil, err
	}
	return &Decompressor{
		opts:         d.opts,
		inf:          inf,
		state:        d.state,
		dict:         append([]byte(nil), d.dict...),
		awaitingDict: d.awaitingDict,
		backlog:      append([]byte(nil), d.backlog...),
	}, nil
}

// State returns the session's lifecycle state.
func (d *Decompressor) State() domain.SessionState { return d.state }

// StreamInfo returns a read-only snapshot of the byte counters.
func (d *Decompressor) StreamInfo() domain.StreamInfo {
	if d.inf == nil {
		return domain.StreamInfo{}
	}
	return domain.StreamInfo{
		TotalIn:  d.inf.TotalIn(),
		TotalOut: d.inf.TotalOut(),
		Active:   d.state == domain.StateInitialized,
	}
}

// StreamStats extends StreamInfo with the observed compression ratio
// (input over output; smaller is better).
func (d *Decompressor) StreamStats() domain.StreamStats {
	info := d.StreamInfo()
	stats := domain.StreamStats{StreamInfo: info}
	if info.TotalOut > 0 {
		stats.Ratio = float64(info.TotalIn) / float64(info.TotalOut)
	}
	return stats
}

// Close releases the native handle exactly once. Idempotent.
func (d *Decompressor) Close() error {
	if d.inf == nil {
		return nil
	}
	err := d.inf.Close()
	d.inf = nil
	d.state = domain.StateUninitialized
	return err
}

func (d *Decompressor) usable(operation string) error {
	switch {
	case d.inf == nil:
		return errors.New(errors.KindUninitialized, operation, "session is closed")
	case d.state == domain.StateFinished:
		return errors.New(errors.KindProtocol, operation, "stream already finished")
	case d.state == domain.StateError:
		return errors.New(errors.KindProtocol, operation, "session is in error state; reset it first")
	}
	return nil
}
