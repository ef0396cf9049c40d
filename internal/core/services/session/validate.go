package session

import (
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// validateOptions checks session options against the direction they
// will drive. Defaults must have been applied already.
func validateOptions(opts *domain.SessionOptions, decode bool) error {
	if !opts.Format.Valid() {
		return errors.Newf(errors.KindParameter, "initialize", "unknown format %d", opts.Format)
	}
	if !decode && opts.Format.DecodeOnly() {
		return errors.New(errors.KindParameter, "initialize", "auto format is decode-only; there is no auto encoder")
	}

	if opts.WindowSize < domain.MinWindowBits || opts.WindowSize > domain.MaxWindowBits {
		return errors.Newf(errors.KindParameter, "initialize",
			"window size %d outside %d..%d", opts.WindowSize, domain.MinWindowBits, domain.MaxWindowBits)
	}

	if decode {
		return nil
	}

	if opts.Level != domain.DefaultCompression &&
		(opts.Level < domain.NoCompression || opts.Level > domain.BestCompression) {
		return errors.Newf(errors.KindParameter, "initialize",
			"compression level must be %d or %d..%d, got %d",
			domain.DefaultCompression, domain.NoCompression, domain.BestCompression, opts.Level)
	}
	if opts.MemoryLevel < domain.MinMemLevel || opts.MemoryLevel > domain.MaxMemLevel {
		return errors.Newf(errors.KindParameter, "initialize",
			"memory level must be %d..%d, got %d", domain.MinMemLevel, domain.MaxMemLevel, opts.MemoryLevel)
	}
	if !opts.Strategy.Valid() {
		return errors.Newf(errors.KindParameter, "initialize", "unknown strategy %d", opts.Strategy)
	}
	if len(opts.Dictionary) > 0 && opts.Format == domain.FormatGzip {
		return errors.New(errors.KindParameter, "initialize", "gzip framing cannot carry a preset dictionary")
	}
	return nil
}

// validatePrime checks a priming request against the session format.
// Priming only makes sense on raw streams: zlib/gzip framing interacts
// incompatibly with injected bits and round-trip is not guaranteed.
func validatePrime(format domain.FormatVariant, bits int, operation string) error {
	if format != domain.FormatRaw {
		return errors.Newf(errors.KindParameter, operation, "priming requires raw format, session uses %s", format)
	}
	if bits < 0 || bits > maxPrimeBits {
		return errors.Newf(errors.KindParameter, operation, "bit count %d outside 0..%d", bits, maxPrimeBits)
	}
	return nil
}
