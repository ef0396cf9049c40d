package session

import (
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
)

// Output scratch size for one native step. Streaming callers consume
// output per chunk, so a fixed size suffices and no growth is needed
// on this path.
const stepChunkSize = 64 * 1024

// DefaultOptions returns session options with the codec's recommended
// defaults: zlib framing, default compression trade-off, full 32 KiB
// window.
func DefaultOptions() *domain.SessionOptions {
	return &domain.SessionOptions{
		Format:      domain.FormatZlib,
		Level:       domain.DefaultCompression,
		WindowSize:  domain.MaxWindowBits,
		MemoryLevel: domain.DefaultMemLevel,
		Strategy:    domain.DefaultStrategy,
	}
}

// applyDefaults fills unset fields with their defaults.
func applyDefaults(opts *domain.SessionOptions) {
	if opts.WindowSize == 0 {
		opts.WindowSize = domain.MaxWindowBits
	}
	if opts.MemoryLevel == 0 {
		opts.MemoryLevel = domain.DefaultMemLevel
	}
}
