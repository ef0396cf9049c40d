package czlib

import (
	"hash/adler32"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdler32(t *testing.T) {
	data := []byte("checksum agreement between native and pure Go")

	seed := Adler32(0, nil)
	require.Equal(t, uint32(1), seed)
	require.Equal(t, adler32.Checksum(data), Adler32(seed, data))

	// Incremental feeding threads the running value.
	half := len(data) / 2
	running := Adler32(seed, data[:half])
	running = Adler32(running, data[half:])
	require.Equal(t, adler32.Checksum(data), running)
}

func TestCrc32(t *testing.T) {
	data := []byte("checksum agreement between native and pure Go")

	seed := Crc32(0, nil)
	require.Zero(t, seed)
	require.Equal(t, crc32.ChecksumIEEE(data), Crc32(seed, data))

	half := len(data) / 2
	running := Crc32(seed, data[:half])
	running = Crc32(running, data[half:])
	require.Equal(t, crc32.ChecksumIEEE(data), running)
}

func TestChecksumCombine(t *testing.T) {
	first := []byte("first half, hashed on its own; ")
	second := []byte("second half, hashed on its own")
	whole := append(append([]byte(nil), first...), second...)

	a1 := Adler32(Adler32(0, nil), first)
	a2 := Adler32(Adler32(0, nil), second)
	require.Equal(t, adler32.Checksum(whole), Adler32Combine(a1, a2, int64(len(second))))

	c1 := Crc32(0, first)
	c2 := Crc32(0, second)
	require.Equal(t, crc32.ChecksumIEEE(whole), Crc32Combine(c1, c2, int64(len(second))))
}

func TestCompressBound(t *testing.T) {
	require.GreaterOrEqual(t, CompressBound(0), 1)
	require.Greater(t, CompressBound(1<<20), 1<<20)
}

func TestVersion(t *testing.T) {
	require.NotEmpty(t, Version())
}
