package fileproc

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/services/session"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

func testPayload(t *testing.T, n int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	block := make([]byte, 4096)
	_, err := rng.Read(block)
	require.NoError(t, err)
	return bytes.Repeat(block, n/len(block)+1)[:n]
}

func fileOpts(chunkSize int) *domain.FileOptions {
	return &domain.FileOptions{ChunkSize: chunkSize, ProgressInterval: time.Nanosecond}
}

func TestProcessor_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.bin")
	compressed := filepath.Join(dir, "input.bin.gz")
	restored := filepath.Join(dir, "restored.bin")

	payload := testPayload(t, 1<<20)
	require.NoError(t, os.WriteFile(src, payload, 0o644))

	p := New(fileOpts(64*1024), nil)
	sopts := &domain.SessionOptions{Format: domain.FormatGzip, Level: domain.DefaultCompression}

	require.NoError(t, p.CompressFile(context.Background(), src, compressed, sopts, nil))
	require.NoError(t, p.DecompressFile(context.Background(), compressed, restored, sopts, nil))

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, payload, got)

	info, err := os.Stat(compressed)
	require.NoError(t, err)
	require.Less(t, info.Size(), int64(len(payload)))
}

func TestProcessor_ChunkSizeDoesNotChangeOutput(t *testing.T) {
	payload := testPayload(t, 300_000)
	single, err := session.Compress(payload, &domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)

	for _, chunkSize := range []int{512, 4096, 1 << 20} {
		p := New(fileOpts(chunkSize), nil)
		sess, err := session.NewCompressor(&domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
		require.NoError(t, err)

		var out bytes.Buffer
		err = p.Transform(context.Background(), bytes.NewReader(payload), &out, int64(len(payload)), sess, nil)
		require.NoError(t, err)
		sess.Close()

		require.Equal(t, single, out.Bytes(), "chunk size %d", chunkSize)
	}
}

func TestProcessor_TransformDecompress(t *testing.T) {
	payload := testPayload(t, 200_000)
	compressed, err := session.Compress(payload, &domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)

	p := New(fileOpts(1024), nil)
	sess, err := session.NewDecompressor(&domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)
	defer sess.Close()

	var out bytes.Buffer
	err = p.Transform(context.Background(), bytes.NewReader(compressed), &out, int64(len(compressed)), sess, nil)
	require.NoError(t, err)
	require.Equal(t, payload, out.Bytes())
}

func TestProcessor_ChunkAlignedDecompress(t *testing.T) {
	// When the compressed length is an exact multiple of the chunk
	// size, the stream finishes on the last full chunk and the loop
	// still sees one final zero-length read. That read must not be fed
	// to the finished session.
	payload := testPayload(t, 50_000)
	compressed, err := session.Compress(payload, &domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)

	for _, chunkSize := range []int{1, len(compressed)} {
		p := New(fileOpts(chunkSize), nil)
		sess, err := session.NewDecompressor(&domain.SessionOptions{Format: domain.FormatZlib})
		require.NoError(t, err)

		var out bytes.Buffer
		err = p.Transform(context.Background(), bytes.NewReader(compressed), &out, int64(len(compressed)), sess, nil)
		require.NoError(t, err, "chunk size %d", chunkSize)
		require.Equal(t, payload, out.Bytes(), "chunk size %d", chunkSize)
		sess.Close()
	}
}

func TestProcessor_ProgressSnapshots(t *testing.T) {
	payload := testPayload(t, 64_000)
	p := New(fileOpts(8_000), nil)
	sess, err := session.NewCompressor(&domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)
	defer sess.Close()

	var snaps []domain.ProgressSnapshot
	var out bytes.Buffer
	err = p.Transform(context.Background(), bytes.NewReader(payload), &out, int64(len(payload)), sess,
		func(s domain.ProgressSnapshot) bool {
			snaps = append(snaps, s)
			return true
		})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(snaps), 2)

	first, last := snaps[0], snaps[len(snaps)-1]
	require.Equal(t, domain.PhaseReading, first.Phase)
	require.Zero(t, first.ProcessedBytes)
	require.Equal(t, domain.PhaseFinished, last.Phase)
	require.Equal(t, uint64(len(payload)), last.ProcessedBytes)
	require.InDelta(t, 100.0, last.Percentage, 0.001)

	for i := 1; i < len(snaps); i++ {
		require.GreaterOrEqual(t, snaps[i].ProcessedBytes, snaps[i-1].ProcessedBytes)
	}
}

func TestProcessor_UnknownTotalSize(t *testing.T) {
	payload := testPayload(t, 20_000)
	p := New(fileOpts(4_000), nil)
	sess, err := session.NewCompressor(&domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)
	defer sess.Close()

	var out bytes.Buffer
	err = p.Transform(context.Background(), bytes.NewReader(payload), &out, 0, sess,
		func(s domain.ProgressSnapshot) bool {
			require.Zero(t, s.TotalBytes)
			require.Zero(t, s.Percentage)
			return true
		})
	require.NoError(t, err)
}

func TestProcessor_ProgressStopCancels(t *testing.T) {
	payload := testPayload(t, 100_000)
	p := New(fileOpts(10_000), nil)
	sess, err := session.NewCompressor(&domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)
	defer sess.Close()

	calls := 0
	var out bytes.Buffer
	err = p.Transform(context.Background(), bytes.NewReader(payload), &out, int64(len(payload)), sess,
		func(domain.ProgressSnapshot) bool {
			calls++
			return calls < 3
		})
	require.Error(t, err)
	require.True(t, errors.IsCancelled(err))
	require.Equal(t, 3, calls)
}

func TestProcessor_ContextCancellation(t *testing.T) {
	payload := testPayload(t, 100_000)
	p := New(fileOpts(10_000), nil)
	sess, err := session.NewCompressor(&domain.SessionOptions{Format: domain.FormatZlib, Level: domain.DefaultCompression})
	require.NoError(t, err)
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = p.Transform(ctx, bytes.NewReader(payload), &out, int64(len(payload)), sess, nil)
	require.Error(t, err)
	require.True(t, errors.IsCancelled(err))
}

func TestProcessor_MissingSourceIsIOError(t *testing.T) {
	p := New(fileOpts(1024), nil)
	err := p.CompressFile(context.Background(), filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out"),
		&domain.SessionOptions{Format: domain.FormatGzip}, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.KindIO))

	// The classification is applied exactly once.
	ce := errors.AsCodecError(err)
	require.NotNil(t, ce)
	require.Nil(t, errors.AsCodecError(ce.Err))
}

func TestProcessor_DefaultChunkSize(t *testing.T) {
	p := New(nil, nil)
	require.Equal(t, domain.DefaultChunkSize, p.ChunkSize())
}
