package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

func TestOneShot_RoundTrip(t *testing.T) {
	payload := repeatedBlock(t, 4096, 16)

	for _, format := range []domain.FormatVariant{domain.FormatRaw, domain.FormatZlib, domain.FormatGzip} {
		t.Run(format.String(), func(t *testing.T) {
			compressed, err := Compress(payload, opts(format))
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload))

			got, err := Decompress(compressed, opts(format))
			require.NoError(t, err)
			require.Equal(t, payload, got)
		})
	}
}

func TestOneShot_EqualsStreaming(t *testing.T) {
	payload := repeatedBlock(t, 1024, 64)

	c, err := NewCompressor(opts(domain.FormatGzip))
	require.NoError(t, err)
	defer c.Close()
	streamed := compressAll(t, c, payload)

	single, err := Compress(payload, opts(domain.FormatGzip))
	require.NoError(t, err)
	require.Equal(t, streamed, single)
}

func TestOneShot_EmptyInput(t *testing.T) {
	compressed, err := Compress(nil, opts(domain.FormatZlib))
	require.NoError(t, err)
	got, err := Decompress(compressed, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestOneShot_GrowthConvergence(t *testing.T) {
	// A 16 KiB block repeated 8 times compresses to roughly the block
	// size, so the initial guess of four times the compressed input is
	// too small and the output buffer must double at least once before
	// the stream fits.
	payload := repeatedBlock(t, 16*1024, 8)

	compressed, err := Compress(payload, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Less(t, defaultGrowth.initial(len(compressed)), len(payload))
	require.GreaterOrEqual(t, defaultGrowth.ceiling(len(compressed)), len(payload))

	got, err := Decompress(compressed, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestOneShot_GrowthCeiling(t *testing.T) {
	// A 16 KiB block repeated 64 times expands far past the ceiling
	// multiplier, so whole-buffer decompression must refuse rather than
	// grow without bound.
	payload := repeatedBlock(t, 16*1024, 64)

	compressed, err := Compress(payload, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Less(t, defaultGrowth.ceiling(len(compressed)), len(payload))

	_, err = Decompress(compressed, opts(domain.FormatZlib))
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.KindDecompression))
}

func TestOneShot_DecompressPartial(t *testing.T) {
	payload := repeatedBlock(t, 16*1024, 64)
	compressed, err := Compress(payload, opts(domain.FormatZlib))
	require.NoError(t, err)

	// The cap replaces buffer growth: oversized streams yield a prefix.
	got, err := DecompressPartial(compressed, 1000, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Equal(t, payload[:1000], got)

	// Streams that fit are returned whole.
	small, err := Compress([]byte("fits easily"), opts(domain.FormatZlib))
	require.NoError(t, err)
	got, err = DecompressPartial(small, 1024, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Equal(t, []byte("fits easily"), got)

	_, err = DecompressPartial(compressed, 0, opts(domain.FormatZlib))
	require.True(t, errors.IsParameter(err))
}

func TestOneShot_DecompressWithDictionary(t *testing.T) {
	dict := []byte("one-shot dictionary material")
	payload := []byte("one-shot dictionary material in use")

	o := opts(domain.FormatZlib)
	o.Dictionary = dict
	compressed, err := Compress(payload, o)
	require.NoError(t, err)

	got, err := DecompressWithDictionary(compressed, dict, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Equal(t, payload, got)

	// Streams that never ask for a dictionary decode as usual.
	plain, err := Compress(payload, opts(domain.FormatZlib))
	require.NoError(t, err)
	got, err = DecompressWithDictionary(plain, dict, opts(domain.FormatZlib))
	require.NoError(t, err)
	require.Equal(t, payload, got)

	// Plain Decompress on a dictionary stream surfaces the signal.
	_, err = Decompress(compressed, opts(domain.FormatZlib))
	require.Error(t, err)
	require.True(t, errors.IsNeedDictionary(err))
}

func TestOneShot_GarbageInput(t *testing.T) {
	_, err := Decompress([]byte("not compressed at all, sorry"), opts(domain.FormatZlib))
	require.Error(t, err)
	require.True(t, errors.IsDataCorruption(err))
}
