package session

import (
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// growthPolicy resolves unknown decompression output sizes by bounded,
// doubling retries. The ceiling is tighter for large inputs so a
// pathological stream cannot blow memory up proportionally to its
// (already large) compressed size.
type growthPolicy struct {
	initialFactor  int // Initial guess as a multiple of input size.
	minInitial     int // Floor for the initial guess in bytes.
	smallCeiling   int // Ceiling multiplier for small inputs.
	largeCeiling   int // Ceiling multiplier for large inputs.
	largeThreshold int // Input size where the large ceiling applies.
}

var defaultGrowth = growthPolicy{
	initialFactor:  4,
	minInitial:     64 * 1024,
	smallCeiling:   32,
	largeCeiling:   16,
	largeThreshold: 1 << 20,
}

func (g growthPolicy) initial(inputLen int) int {
	size := inputLen * g.initialFactor
	if size < g.minInitial {
		size = g.minInitial
	}
	return size
}

func (g growthPolicy) ceiling(inputLen int) int {
	factor := g.smallCeiling
	if inputLen > g.largeThreshold {
		factor = g.largeCeiling
	}
	limit := inputLen * factor
	if limit < g.minInitial {
		limit = g.minInitial
	}
	return limit
}

// Compress compresses a whole buffer in one call. nil options select
// the defaults. Works for every format except Auto.
func Compress(input []byte, opts *domain.SessionOptions) ([]byte, error) {
	c, err := NewCompressor(opts)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	out, err := c.Process(input, domain.NoFlush)
	if err != nil {
		return nil, err
	}
	tail, err := c.Finish()
	if err != nil {
		return nil, err
	}
	return append(out, tail...), nil
}

// Decompress decompresses a whole buffer without the caller knowing
// the output size. The output buffer starts at a heuristic guess and
// doubles on each buffer-space failure up to the bounded ceiling;
// exceeding the ceiling surfaces a decompression failure.
func Decompress(input []byte, opts *domain.SessionOptions) ([]byte, error) {
	return decompressGrow(input, nil, opts)
}

// DecompressWithDictionary is Decompress for streams compressed
// against a preset dictionary. The dictionary is installed when the
// codec signals it is required; streams that never ask for one decode
// as usual.
func DecompressWithDictionary(input, dict []byte, opts *domain.SessionOptions) ([]byte, error) {
	return decompressGrow(input, dict, opts)
}

// DecompressPartial decompresses at most limit output bytes from the
// input, returning what fits. Streams larger than the cap yield a
// partial prefix without error; the cap replaces buffer growth.
func DecompressPartial(input []byte, limit int, opts *domain.SessionOptions) ([]byte, error) {
	if limit <= 0 {
		return nil, errors.Newf(errors.KindParameter, "decompress", "output cap must be positive, got %d", limit)
	}
	d, err := NewDecompressor(opts)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	produced, _, err := oneAttempt(d, input, make([]byte, limit), nil)
	if err != nil && !errors.Is(err, errors.KindBufferTooSmall) {
		return nil, err
	}
	return produced, nil
}

// decompressGrow runs the bounded grow-and-retry loop shared by the
// whole-buffer decompression entry points.
func decompressGrow(input, dict []byte, opts *domain.SessionOptions) ([]byte, error) {
	d, err := NewDecompressor(opts)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	size := defaultGrowth.initial(len(input))
	limit := defaultGrowth.ceiling(len(input))
	if size > limit {
		size = limit
	}
	for {
		out, done, err := oneAttempt(d, input, make([]byte, size), dict)
		if err == nil && done {
			return out, nil
		}
		if err != nil && !errors.Is(err, errors.KindBufferTooSmall) {
			return nil, err
		}

		// Output space ran out before the stream ended.
		if size >= limit {
			return nil, errors.Newf(errors.KindDecompression, "decompress",
				"output exceeded the growth ceiling of %d bytes", limit)
		}
		size *= 2
		if size > limit {
			size = limit
		}
		if err := d.Reset(); err != nil {
			return nil, err
		}
	}
}

// oneAttempt drives a single whole-buffer decode into dst, installing
// the dictionary if the stream requests one. Returns the produced
// prefix of dst and whether the stream ended.
func oneAttempt(d *Decompressor, input, dst, dict []byte) ([]byte, bool, error) {
	in := input
	produced := 0
	for {
		if produced == len(dst) {
			// Full buffer without stream end: needs growth.
			return dst[:produced], false, errors.New(errors.KindBufferTooSmall, "inflate", "output buffer exhausted")
		}
		res, err := d.inf.Step(in, dst[produced:], domain.Finish)
		produced += res.Produced
		in = in[res.Consumed:]
		if err != nil {
			if errors.IsNeedDictionary(err) && dict != nil {
				if derr := d.inf.SetDictionary(dict); derr != nil {
					return dst[:produced], false, derr
				}
				d.dict = append([]byte(nil), dict...)
				continue
			}
			if errors.Is(err, errors.KindBufferTooSmall) {
				if produced == len(dst) {
					return dst[:produced], false, err
				}
				// No progress with output space left means the input
				// ran out mid-stream. Whether a native build reports
				// truncation or silently returns the partial result
				// is platform-dependent; this layer reports it.
				return dst[:produced], false, errors.New(errors.KindDataCorruption, "decompress", "truncated or incomplete stream")
			}
			return dst[:produced], false, err
		}
		if res.Done {
			return dst[:produced], true, nil
		}
		if len(in) == 0 && produced < len(dst) {
			return dst[:produced], false, errors.New(errors.KindDataCorruption, "decompress", "truncated or incomplete stream")
		}
	}
}
