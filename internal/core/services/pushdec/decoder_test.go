package pushdec

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/services/session"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

func rawStream(t *testing.T, payload []byte) []byte {
	t.Helper()
	compressed, err := session.Compress(payload, &domain.SessionOptions{Format: domain.FormatRaw, Level: domain.DefaultCompression})
	require.NoError(t, err)
	return compressed
}

// sliceProvider feeds the stream in fixed-size slices, then signals end
// of input with an empty chunk.
func sliceProvider(stream []byte, size int) InputProvider {
	off := 0
	return func() ([]byte, error) {
		if off >= len(stream) {
			return nil, nil
		}
		end := off + size
		if end > len(stream) {
			end = len(stream)
		}
		chunk := stream[off:end]
		off = end
		return chunk, nil
	}
}

func TestDecoder_MatchesPullDecoding(t *testing.T) {
	payload := []byte("push-style decoding must agree with pull-style decoding, " +
		"byte for byte, regardless of how the input is sliced")
	stream := rawStream(t, payload)

	for _, sliceSize := range []int{1, 10, len(stream)} {
		d, err := New(0)
		require.NoError(t, err)

		var got []byte
		err = d.Run(sliceProvider(stream, sliceSize), func(chunk []byte) bool {
			got = append(got, chunk...)
			return true
		})
		require.NoError(t, err)
		require.Equal(t, payload, got, "slice size %d", sliceSize)
		require.NoError(t, d.Close())
	}
}

func TestDecoder_ConsumerStopIsCancelled(t *testing.T) {
	// Large enough that the decoder emits more than one output chunk.
	payload := make([]byte, 256*1024)
	for i := range payload {
		payload[i] = byte(i)
	}
	stream := rawStream(t, payload)

	d, err := New(domain.MaxWindowBits)
	require.NoError(t, err)
	defer d.Close()

	chunks := 0
	err = d.Run(sliceProvider(stream, 4096), func([]byte) bool {
		chunks++
		return false
	})
	require.Error(t, err)
	require.True(t, errors.IsCancelled(err))
	require.Equal(t, 1, chunks)
}

func TestDecoder_TruncatedStream(t *testing.T) {
	stream := rawStream(t, []byte("this stream will be cut short before the final block"))

	d, err := New(0)
	require.NoError(t, err)
	defer d.Close()

	err = d.Run(sliceProvider(stream[:len(stream)-4], 10), func([]byte) bool { return true })
	require.Error(t, err)
	require.True(t, errors.IsDataCorruption(err))
}

func TestDecoder_ProviderErrorIsIO(t *testing.T) {
	d, err := New(0)
	require.NoError(t, err)
	defer d.Close()

	err = d.Run(func() ([]byte, error) { return nil, io.ErrClosedPipe }, func([]byte) bool { return true })
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.KindIO))
}

func TestDecoder_SingleUse(t *testing.T) {
	stream := rawStream(t, []byte("one stream per decoder"))

	d, err := New(0)
	require.NoError(t, err)
	defer d.Close()

	err = d.Run(sliceProvider(stream, 10), func([]byte) bool { return true })
	require.NoError(t, err)

	err = d.Run(sliceProvider(stream, 10), func([]byte) bool { return true })
	require.Error(t, err)
	require.True(t, errors.IsProtocol(err))
}

func TestDecoder_WindowBitsValidation(t *testing.T) {
	_, err := New(7)
	require.Error(t, err)
	require.True(t, errors.IsParameter(err))

	_, err = New(16)
	require.Error(t, err)
	require.True(t, errors.IsParameter(err))
}
