// Package fileproc drives a codec session over file-like streams with
// bounded memory. Files of any size are processed in fixed-size
// chunks, so peak memory stays proportional to the chunk size. The
// processor reports progress at a configurable interval and supports
// cooperative cancellation at chunk boundaries; no call is cancellable
// mid-chunk.
package fileproc

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Kosikowski/swift-zlib-sub001/internal/adapters/fs"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/ports"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/services/session"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/logger"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/pool"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/system"
)

// Session is the slice of a codec session the processor drives. Both
// session.Compressor and session.Decompressor satisfy it.
type Session interface {
	Process(input []byte, flush domain.FlushMode) ([]byte, error)
	Finish() ([]byte, error)
}

// Processor runs chunked file transformations. Safe to share across
// operations: it holds no per-operation state besides the buffer pool.
type Processor struct {
	opts domain.FileOptions
	fs   ports.FileSystem
	log  *zap.SugaredLogger
	pool *pool.BufferPool
}

// New creates a processor. nil options select the defaults; a nil
// logger disables diagnostics.
func New(opts *domain.FileOptions, log *zap.SugaredLogger) *Processor {
	o := domain.FileOptions{}
	if opts != nil {
		o = *opts
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = domain.DefaultChunkSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Processor{
		opts: o,
		fs:   fs.NewLocal(),
		log:  log,
		pool: pool.NewBufferPool(o.ChunkSize),
	}
}

// CompressFile compresses src into dst with bounded memory. onProgress
// may be nil.
func (p *Processor) CompressFile(ctx context.Context, src, dst string, opts *domain.SessionOptions, onProgress ProgressFunc) error {
	sess, err := session.NewCompressor(opts)
	if err != nil {
		return err
	}
	defer sess.Close()
	return p.processFile(ctx, src, dst, sess, onProgress, "compress")
}

// DecompressFile decompresses src into dst with bounded memory.
// onProgress may be nil.
func (p *Processor) DecompressFile(ctx context.Context, src, dst string, opts *domain.SessionOptions, onProgress ProgressFunc) error {
	sess, err := session.NewDecompressor(opts)
	if err != nil {
		return err
	}
	defer sess.Close()
	return p.processFile(ctx, src, dst, sess, onProgress, "decompress")
}

func (p *Processor) processFile(ctx context.Context, src, dst string, sess Session, onProgress ProgressFunc, op string) error {
	total, err := p.fs.Size(src)
	if err != nil {
		return errors.WrapIO(op, err)
	}
	in, err := p.fs.Open(src)
	if err != nil {
		return errors.WrapIO(op, err)
	}
	defer in.Close()

	out, err := p.fs.Create(dst)
	if err != nil {
		return errors.WrapIO(op, err)
	}

	p.log.Infow("file operation started", "op", op, "src", src, "dst", dst, "size", total, "chunk_size", p.opts.ChunkSize)

	runErr := system.RunWithContext(ctx, func(ctx context.Context) error {
		return p.Transform(ctx, in, out, total, sess, onProgress)
	})
	if cerr := out.Close(); cerr != nil && runErr == nil {
		runErr = errors.WrapIO(op, cerr)
	}

	if runErr != nil {
		// Partial output is left on disk; cleanup is the caller's call.
		p.log.Errorw("file operation failed", "op", op, "src", src, "error", runErr)
		return runErr
	}
	p.log.Infow("file operation finished", "op", op, "src", src, "dst", dst)
	return nil
}

// Transform drives the session over an arbitrary reader/writer pair in
// fixed-size chunks. total may be zero when the source size is
// unknown; progress snapshots then omit percentage and ETA.
//
// Every chunk except the last is fed with NoFlush; the last chunk is
// followed by Finish, so the produced stream is byte-identical to a
// single-shot transformation of the same bytes regardless of chunk
// size. Output is written as soon as the codec emits it.
func (p *Processor) Transform(ctx context.Context, r io.Reader, w io.Writer, total int64, sess Session, onProgress ProgressFunc) error {
	buf := p.pool.Get()
	defer p.pool.Put(buf)

	track := newTracker(total, p.opts.ProgressInterval)

	// The first snapshot fires unconditionally, before any byte moves.
	if onProgress != nil {
		if !onProgress(track.snapshot(domain.PhaseReading, time.Now())) {
			return errors.New(errors.KindCancelled, "transform", "progress predicate requested stop")
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return &errors.CodecError{Kind: errors.KindCancelled, Operation: "transform", Err: err}
		}

		n, rerr := io.ReadFull(r, buf)
		last := false
		switch rerr {
		case nil:
		case io.EOF:
			n, last = 0, true
		case io.ErrUnexpectedEOF:
			last = true
		default:
			return errors.WrapIO("read", rerr)
		}

		phase := domain.PhaseTransforming
		var out []byte
		// A zero-length final read feeds nothing: on exactly
		// chunk-aligned input the stream may already have finished, and
		// a finished session rejects further input.
		if n > 0 {
			var perr error
			out, perr = sess.Process(buf[:n], domain.NoFlush)
			if perr != nil {
				return perr
			}
		}
		if last {
			phase = domain.PhaseFlushing
			tail, ferr := sess.Finish()
			if ferr != nil {
				return ferr
			}
			out = append(out, tail...)
		}

		if len(out) > 0 {
			phase = domain.PhaseWriting
			if _, werr := w.Write(out); werr != nil {
				return errors.WrapIO("write", werr)
			}
		}
		track.add(n)
		p.log.Debugw("chunk processed", "in", n, "out", len(out), "last", last)

		if last {
			phase = domain.PhaseFinished
		}
		now := time.Now()
		if onProgress != nil && (last || track.due(now)) {
			if !onProgress(track.snapshot(phase, now)) {
				// Stop lands exactly on a chunk boundary: the current
				// chunk's output is already written, the next one is
				// never produced.
				return errors.New(errors.KindCancelled, "transform", "progress predicate requested stop")
			}
		}
		if last {
			return nil
		}
	}
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int { return p.opts.ChunkSize }
