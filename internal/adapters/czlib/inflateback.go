package czlib

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <zlib.h>

extern unsigned int goInflateBackIn(void *desc, unsigned char **buf);
extern int goInflateBackOut(void *desc, unsigned char *buf, unsigned int len);

// inflateBackInit is a macro; wrap it so Go can call it.
static int zs_inflate_back_init(z_stream *strm, int windowBits, unsigned char *window) {
	return inflateBackInit(strm, windowBits, window);
}

// Bridges the native callback-driven decoder to the exported Go
// callbacks. The descriptor is an opaque handle resolved on the Go
// side; no Go pointer crosses into C.
static int zs_inflate_back(z_stream *strm, uintptr_t handle) {
	return inflateBack(strm,
		(in_func)goInflateBackIn, (void *)handle,
		(out_func)goInflateBackOut, (void *)handle);
}
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// InputProvider returns the next compressed chunk. Returning an empty
// chunk with a nil error signals end of input.
type InputProvider func() ([]byte, error)

// OutputConsumer receives one decompressed chunk. Returning false
// stops decoding; the stop is reported as a cancellation, not an
// error.
type OutputConsumer func([]byte) bool

// BackReader drives the native callback-based ("push") decoding
// primitive. It operates only on raw DEFLATE streams and requires a
// fixed window buffer sized to the configured window bits, allocated
// once at construction.
type BackReader struct {
	strm   *C.z_stream
	window *C.uchar

	// Per-run callback state, reachable from the exported callbacks
	// through a cgo handle.
	provide    InputProvider
	consume    OutputConsumer
	inBuf      unsafe.Pointer
	inCap      int
	provideErr error
	sawEOF     bool
	stopped    bool

	used   bool
	closed bool
}

// NewBackReader allocates the native stream and the sliding window for
// callback-driven decoding. windowBits selects the window size
// exponent (domain.MinWindowBits to domain.MaxWindowBits) and must be
// at least as large as the one the stream was compressed with.
func NewBackReader(windowBits int) (*BackReader, error) {
	if windowBits < domain.MinWindowBits || windowBits > domain.MaxWindowBits {
		return nil, errors.Newf(errors.KindParameter, "inflateBackInit",
			"window bits %d outside %d..%d", windowBits, domain.MinWindowBits, domain.MaxWindowBits)
	}

	strm := allocStream()
	if strm == nil {
		return nil, errors.New(errors.KindMemory, "inflateBackInit", "native stream allocation failed")
	}
	window := (*C.uchar)(C.malloc(C.size_t(1) << windowBits))
	if window == nil {
		freeStream(strm)
		return nil, errors.New(errors.KindMemory, "inflateBackInit", "window allocation failed")
	}

	if ret := C.zs_inflate_back_init(strm, C.int(windowBits), window); ret != statusOK {
		msg := streamMsg(strm)
		C.free(unsafe.Pointer(window))
		freeStream(strm)
		return nil, mapStatus(false, "inflateBackInit", int(ret), msg)
	}

	return &BackReader{strm: strm, window: window}, nil
}

// Run decodes one complete raw DEFLATE stream, pulling input through
// provide and pushing output through consume inside a single blocking
// native call. A BackReader decodes exactly one stream; create a new
// one per stream.
func (b *BackReader) Run(provide InputProvider, consume OutputConsumer) error {
	if b.closed {
		return errors.New(errors.KindUninitialized, "inflateBack", "stream is closed")
	}
	if b.used {
		return errors.New(errors.KindProtocol, "inflateBack", "decoder already consumed a stream")
	}
	if provide == nil || consume == nil {
		return errors.New(errors.KindParameter, "inflateBack", "nil callback")
	}

	b.used = true
	b.provide = provide
	b.consume = consume
	b.provideErr = nil
	b.sawEOF = false
	b.stopped = false

	h := cgo.NewHandle(b)
	ret := int(C.zs_inflate_back(b.strm, C.uintptr_t(h)))
	h.Delete()
	b.provide = nil
	b.consume = nil

	switch {
	case b.stopped:
		return errors.New(errors.KindCancelled, "inflateBack", "output consumer requested stop")
	case b.provideErr != nil:
		return errors.WrapIO("inflateBack", b.provideErr)
	case ret == statusStreamEnd:
		return nil
	case ret == statusBufError && b.sawEOF:
		return errors.FromNative(errors.KindDataCorruption, "inflateBack", ret, "truncated deflate stream")
	default:
		return mapStatus(false, "inflateBack", ret, streamMsg(b.strm))
	}
}

// Close releases the native handle, the window and the input staging
// buffer. Idempotent.
func (b *BackReader) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	ret := C.inflateBackEnd(b.strm)
	msg := streamMsg(b.strm)
	C.free(unsafe.Pointer(b.window))
	b.window = nil
	if b.inBuf != nil {
		C.free(b.inBuf)
		b.inBuf = nil
	}
	freeStream(b.strm)
	b.strm = nil
	return mapStatus(false, "inflateBackEnd", int(ret), msg)
}

// stageInput copies a Go chunk into the C staging buffer the native
// decoder reads from between callbacks.
func (b *BackReader) stageInput(chunk []byte) unsafe.Pointer {
	if b.inBuf == nil || b.inCap < len(chunk) {
		if b.inBuf != nil {
			C.free(b.inBuf)
		}
		b.inBuf = C.malloc(C.size_t(len(chunk)))
		b.inCap = len(chunk)
	}
	if b.inBuf != nil {
		C.memcpy(b.inBuf, bufPtr(chunk), C.size_t(len(chunk)))
	}
	return b.inBuf
}
