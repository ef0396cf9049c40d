// Package czlib adapts the system zlib library to the codec ports
// consumed by the session layer. It owns all cgo interaction: native
// handle lifecycle, the buffer-driven step calls, dictionary and
// priming entry points, and the mapping of native status codes onto
// the module's error taxonomy. Nothing outside this package touches a
// raw handle or sees a raw status code.
package czlib

/*
#cgo LDFLAGS: -lz

#include <stdlib.h>
#include <string.h>
#include <zlib.h>

// The wrappers below keep all z_stream state in C memory and take Go
// buffers only as call arguments, so no Go pointer is ever retained
// across a cgo call.

static z_stream *zs_alloc(void) {
	return (z_stream *)calloc(1, sizeof(z_stream));
}

static void zs_free(z_stream *strm) {
	free(strm);
}

// deflateInit2 and inflateInit2 are macros, so they need real
// functions to be callable from Go.
static int zs_deflate_init(z_stream *strm, int level, int windowBits, int memLevel, int strategy) {
	return deflateInit2(strm, level, Z_DEFLATED, windowBits, memLevel, strategy);
}

static int zs_inflate_init(z_stream *strm, int windowBits) {
	return inflateInit2(strm, windowBits);
}

// Runs one codec step with caller-supplied buffers. Buffer pointers
// are cleared before returning so the stream never holds them past
// the call.
static int zs_step(z_stream *strm, int compressing,
                   void *in, unsigned in_len,
                   void *out, unsigned out_len,
                   int flush, unsigned *consumed, unsigned *produced) {
	strm->next_in = (Bytef *)in;
	strm->avail_in = in_len;
	strm->next_out = (Bytef *)out;
	strm->avail_out = out_len;
	int ret = compressing ? deflate(strm, flush) : inflate(strm, flush);
	*consumed = in_len - strm->avail_in;
	*produced = out_len - strm->avail_out;
	strm->next_in = Z_NULL;
	strm->avail_in = 0;
	strm->next_out = Z_NULL;
	strm->avail_out = 0;
	return ret;
}

// deflateParams flushes pending compressed data internally and so
// needs live output pointers on the stream, which zs_step deliberately
// clears. Stage a scratch buffer for the duration of the call.
static int zs_deflate_params(z_stream *strm, int level, int strategy,
                             void *out, unsigned out_len, unsigned *produced) {
	strm->next_in = Z_NULL;
	strm->avail_in = 0;
	strm->next_out = (Bytef *)out;
	strm->avail_out = out_len;
	int ret = deflateParams(strm, level, strategy);
	*produced = out_len - strm->avail_out;
	strm->next_out = Z_NULL;
	strm->avail_out = 0;
	return ret;
}

static const char *zs_msg(z_stream *strm) {
	return strm->msg;
}

static unsigned long zs_total_in(z_stream *strm)  { return strm->total_in; }
static unsigned long zs_total_out(z_stream *strm) { return strm->total_out; }
*/
import "C"

import (
	"unsafe"
)

// Native status codes. Internal only; everything past this package
// receives the mapped error taxonomy.
const (
	statusOK           = C.Z_OK
	statusStreamEnd    = C.Z_STREAM_END
	statusNeedDict     = C.Z_NEED_DICT
	statusErrno        = C.Z_ERRNO
	statusStreamError  = C.Z_STREAM_ERROR
	statusDataError    = C.Z_DATA_ERROR
	statusMemError     = C.Z_MEM_ERROR
	statusBufError     = C.Z_BUF_ERROR
	statusVersionError = C.Z_VERSION_ERROR
)

// MaxPrimeBits is the largest bit count the native priming primitive
// accepts in a single call. Callers injecting more loop over it.
const MaxPrimeBits = 16

// Version returns the version string of the linked native library.
// Native version/build state is process-wide and read-only.
func Version() string {
	return C.GoString(C.zlibVersion())
}

// stepResult carries the raw outcome of one native step call.
type stepResult struct {
	consumed int
	produced int
	status   int
}

// allocStream allocates a zeroed native stream in C memory.
func allocStream() *C.z_stream {
	return C.zs_alloc()
}

// freeStream releases the native stream structure itself. The caller
// must have ended the stream first.
func freeStream(strm *C.z_stream) {
	C.zs_free(strm)
}

// deflateInit initializes a compression stream with explicit
// window-bits encoding the format framing.
func deflateInit(strm *C.z_stream, level, windowBits, memLevel, strategy int) int {
	return int(C.zs_deflate_init(strm, C.int(level), C.int(windowBits), C.int(memLevel), C.int(strategy)))
}

// inflateInit initializes a decompression stream with explicit
// window-bits encoding the format framing (or sniffing).
func inflateInit(strm *C.z_stream, windowBits int) int {
	return int(C.zs_inflate_init(strm, C.int(windowBits)))
}

// step drives the native codec once over the given buffers.
func step(strm *C.z_stream, compressing bool, in, out []byte, flush int) stepResult {
	var consumed, produced C.uint
	dir := C.int(0)
	if compressing {
		dir = 1
	}
	status := C.zs_step(strm, dir,
		bufPtr(in), C.uint(len(in)),
		bufPtr(out), C.uint(len(out)),
		C.int(flush), &consumed, &produced)
	return stepResult{consumed: int(consumed), produced: int(produced), status: int(status)}
}

// deflateParamsStep applies new compression parameters, letting the
// codec flush into out. Returns the flushed byte count and the status.
func deflateParamsStep(strm *C.z_stream, level, strategy int, out []byte) (int, int) {
	var produced C.uint
	status := C.zs_deflate_params(strm, C.int(level), C.int(strategy),
		bufPtr(out), C.uint(len(out)), &produced)
	return int(produced), int(status)
}

// totalIn and totalOut read the native byte counters.
func totalIn(strm *C.z_stream) uint64  { return uint64(C.zs_total_in(strm)) }
func totalOut(strm *C.z_stream) uint64 { return uint64(C.zs_total_out(strm)) }

// bufPtr returns the C view of a Go slice, nil for empty slices.
func bufPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// streamMsg extracts the native stream's last message, empty when the
// codec did not set one.
func streamMsg(strm *C.z_stream) string {
	msg := C.zs_msg(strm)
	if msg == nil {
		return ""
	}
	return C.GoString(msg)
}
