package pool

import (
	"sync"
)

// BufferPool manages a pool of fixed-size byte slices used as codec
// input/output scratch buffers. Pooling keeps the per-chunk allocation
// cost of streaming paths flat regardless of file size.
type BufferPool struct {
	size int       // Size of each buffer.
	pool sync.Pool // Thread-safe pool of buffers.
}

// NewBufferPool creates a new buffer pool with a specified buffer size.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Get retrieves a buffer of exactly the configured size from the pool.
func (bp *BufferPool) Get() []byte {
	buf := bp.pool.Get().(*[]byte)
	return (*buf)[:bp.size]
}

// Put returns a buffer to the pool.
func (bp *BufferPool) Put(buf []byte) {
	// Don't pool buffers that were reallocated elsewhere.
	if cap(buf) < bp.size {
		return
	}
	buf = buf[:bp.size]
	bp.pool.Put(&buf)
}

// Size returns the configured buffer size.
func (bp *BufferPool) Size() int { return bp.size }
