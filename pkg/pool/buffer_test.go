package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPool_GetPut(t *testing.T) {
	bp := NewBufferPool(1024)
	require.Equal(t, 1024, bp.Size())

	buf := bp.Get()
	require.Len(t, buf, 1024)
	bp.Put(buf)

	// A shrunk slice comes back at full length.
	buf = bp.Get()
	bp.Put(buf[:10])
	buf = bp.Get()
	require.Len(t, buf, 1024)
}

func TestBufferPool_RejectsUndersizedBuffers(t *testing.T) {
	bp := NewBufferPool(1024)
	bp.Put(make([]byte, 16)) // Silently dropped.
	require.Len(t, bp.Get(), 1024)
}
