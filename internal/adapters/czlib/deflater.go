package czlib

/*
#include <stdlib.h>
#include <string.h>
#include <zlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/ports"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// Deflater owns one native compression handle. It is the single owner:
// the handle is released exactly once by Close, and the struct must
// not be shared between goroutines without external synchronization.
type Deflater struct {
	strm   *C.z_stream
	header *C.gz_header // Retained until Close; the codec reads it lazily.
	tail   []byte       // Output flushed by a parameter change, handed out ahead of the next step.
	closed bool
}

// paramsScratchSize is the per-attempt output space given to a
// parameter change while it flushes pending compressed data.
const paramsScratchSize = 64 * 1024

// Compile-time check that the adapter satisfies its port.
var _ ports.Deflater = (*Deflater)(nil)

// NewDeflater allocates and initializes a native compression stream.
// windowBits carries the format framing encoding (negative for raw,
// +16 for gzip) as produced by domain.FormatVariant.WindowBits.
func NewDeflater(level, windowBits, memLevel int, strategy domain.Strategy) (*Deflater, error) {
	strm := allocStream()
	if strm == nil {
		return nil, errors.New(errors.KindMemory, "deflateInit", "native stream allocation failed")
	}

	if ret := deflateInit(strm, level, windowBits, memLevel, int(strategy)); ret != statusOK {
		msg := streamMsg(strm)
		freeStream(strm)
		return nil, mapStatus(true, "deflateInit", ret, msg)
	}

	return &Deflater{strm: strm}, nil
}

// Step feeds input and drains output through the native codec once.
func (d *Deflater) Step(in, out []byte, flush domain.FlushMode) (ports.StepResult, error) {
	var res ports.StepResult
	if d.closed {
		return res, errors.New(errors.KindUninitialized, "deflate", "stream is closed")
	}
	if len(out) == 0 {
		return res, errors.New(errors.KindParameter, "deflate", "output buffer is empty")
	}

	// Output flushed by an earlier parameter change goes out first so
	// the stream stays contiguous.
	pre := 0
	if len(d.tail) > 0 {
		pre = copy(out, d.tail)
		d.tail = d.tail[pre:]
		if pre == len(out) {
			res.Produced = pre
			return res, nil
		}
	}

	sr := step(d.strm, true, in, out[pre:], int(flush))
	res.Consumed = sr.consumed
	res.Produced = pre + sr.produced
	res.Done = sr.status == statusStreamEnd
	if sr.status == statusOK || sr.status == statusStreamEnd {
		return res, nil
	}
	return res, mapStatus(true, "deflate", sr.status, streamMsg(d.strm))
}

// SetDictionary primes the compressor with a preset dictionary. The
// native codec rejects it on gzip-framed streams and after input has
// been consumed; those rejections surface as parameter errors here and
// are re-classified by the session's negotiation rules.
func (d *Deflater) SetDictionary(dict []byte) error {
	if d.closed {
		return errors.New(errors.KindUninitialized, "deflateSetDictionary", "stream is closed")
	}
	ret := C.deflateSetDictionary(d.strm, (*C.Bytef)(bufPtr(dict)), C.uInt(len(dict)))
	return mapStatus(true, "deflateSetDictionary", int(ret), streamMsg(d.strm))
}

// SetHeader attaches gzip header metadata. The native codec keeps the
// header struct until the stream header is emitted, so the C copies
// live until Close.
func (d *Deflater) SetHeader(meta *domain.GzipMetadata) error {
	if d.closed {
		return errors.New(errors.KindUninitialized, "deflateSetHeader", "stream is closed")
	}
	if meta == nil {
		return errors.New(errors.KindParameter, "deflateSetHeader", "metadata is nil")
	}

	hdr := (*C.gz_header)(C.calloc(1, C.sizeof_gz_header))
	if hdr == nil {
		return errors.New(errors.KindMemory, "deflateSetHeader", "header allocation failed")
	}
	hdr.os = 255 // Unknown origin filesystem.
	if !meta.ModTime.IsZero() {
		hdr.time = C.uLong(meta.ModTime.Unix())
	}
	if meta.Name != "" {
		hdr.name = (*C.Bytef)(unsafe.Pointer(C.CString(meta.Name)))
	}
	if meta.Comment != "" {
		hdr.comment = (*C.Bytef)(unsafe.Pointer(C.CString(meta.Comment)))
	}
	if len(meta.Extra) > 0 {
		hdr.extra = (*C.Bytef)(C.CBytes(meta.Extra))
		hdr.extra_len = C.uInt(len(meta.Extra))
	}

	if ret := C.deflateSetHeader(d.strm, hdr); ret != statusOK {
		msg := streamMsg(d.strm)
		freeHeader(hdr)
		return mapStatus(true, "deflateSetHeader", int(ret), msg)
	}

	// Replacing an unwritten header releases the previous copy.
	if d.header != nil {
		freeHeader(d.header)
	}
	d.header = hdr
	return nil
}

// Params changes level and strategy mid-stream. The native codec
// flushes pending compressed data first, so data already consumed
// keeps the old parameters; flushed bytes are retained and emitted
// ahead of the next Step's output.
func (d *Deflater) Params(level int, strategy domain.Strategy) error {
	if d.closed {
		return errors.New(errors.KindUninitialized, "deflateParams", "stream is closed")
	}

	scratch := make([]byte, paramsScratchSize)
	for {
		produced, status := deflateParamsStep(d.strm, level, int(strategy), scratch)
		d.tail = append(d.tail, scratch[:produced]...)
		switch status {
		case statusOK:
			return nil
		case statusBufError:
			// More pending data than scratch space; flush again. No
			// forward progress means the signal is something else.
			if produced == 0 {
				return mapStatus(true, "deflateParams", status, streamMsg(d.strm))
			}
		default:
			return mapStatus(true, "deflateParams", status, streamMsg(d.strm))
		}
	}
}

// Tune adjusts the internal match-search heuristics.
func (d *Deflater) Tune(p domain.TuneParams) error {
	if d.closed {
		return errors.New(errors.KindUninitialized, "deflateTune", "stream is closed")
	}
	ret := C.deflateTune(d.strm,
		C.int(p.GoodLength), C.int(p.MaxLazy), C.int(p.NiceLength), C.int(p.MaxChain))
	return mapStatus(true, "deflateTune", int(ret), streamMsg(d.strm))
}

// Prime injects the low-order bits of value ahead of the next output
// byte. At most MaxPrimeBits per call.
func (d *Deflater) Prime(bits, value int) error {
	if d.closed {
		return errors.New(errors.KindUninitialized, "deflatePrime", "stream is closed")
	}
	ret := C.deflatePrime(d.strm, C.int(bits), C.int(value))
	return mapStatus(true, "deflatePrime", int(ret), streamMsg(d.strm))
}

// Pending reports output still buffered inside the codec: whole bytes
// plus bits of an unfinished byte.
func (d *Deflater) Pending() (int, int, error) {
	if d.closed {
		return 0, 0, errors.New(errors.KindUninitialized, "deflatePending", "stream is closed")
	}
	var pending C.uInt
	var bits C.int
	ret := C.deflatePending(d.strm, &pending, &bits)
	if err := mapStatus(true, "deflatePending", int(ret), streamMsg(d.strm)); err != nil {
		return 0, 0, err
	}
	// Bytes staged by a parameter change are pending output too.
	return int(pending) + len(d.tail), int(bits), nil
}

// Bound returns an upper bound on compressed size for sourceLen input
// bytes under the current stream parameters.
func (d *Deflater) Bound(sourceLen int) int {
	if d.closed {
		return 0
	}
	return int(C.deflateBound(d.strm, C.uLong(sourceLen)))
}

// Reset reinitializes the codec state while keeping the configured
// parameters. A previously attached gzip header is forgotten by the
// native codec, so the retained copy is released too.
func (d *Deflater) Reset() error {
	if d.closed {
		return errors.New(errors.KindUninitialized, "deflateReset", "stream is closed")
	}
	ret := C.deflateReset(d.strm)
	if err := mapStatus(true, "deflateReset", int(ret), streamMsg(d.strm)); err != nil {
		return err
	}
	d.tail = nil
	if d.header != nil {
		freeHeader(d.header)
		d.header = nil
	}
	return nil
}

// Copy deep-duplicates the entire native state into an independent
// Deflater. A gzip header attached to the source is not carried over;
// attach it to the copy separately if needed before its header is
// emitted.
func (d *Deflater) Copy() (ports.Deflater, error) {
	if d.closed {
		return nil, errors.New(errors.KindUninitialized, "deflateCopy", "stream is closed")
	}
	dest := allocStream()
	if dest == nil {
		return nil, errors.New(errors.KindMemory, "deflateCopy", "native stream allocation failed")
	}
	if ret := C.deflateCopy(dest, d.strm); ret != statusOK {
		msg := streamMsg(d.strm)
		freeStream(dest)
		return nil, mapStatus(true, "deflateCopy", int(ret), msg)
	}
	return &Deflater{strm: dest, tail: append([]byte(nil), d.tail...)}, nil
}

// TotalIn returns bytes consumed by the native codec so far.
func (d *Deflater) TotalIn() uint64 {
	if d.closed {
		return 0
	}
	return totalIn(d.strm)
}

// TotalOut returns bytes produced by the native codec so far.
func (d *Deflater) TotalOut() uint64 {
	if d.closed {
		return 0
	}
	return totalOut(d.strm)
}

// Close releases the native handle and all retained header memory.
// Idempotent; only the first call performs the release.
func (d *Deflater) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	ret := C.deflateEnd(d.strm)
	msg := streamMsg(d.strm)
	if d.header != nil {
		freeHeader(d.header)
		d.header = nil
	}
	freeStream(d.strm)
	d.strm = nil

	// Z_DATA_ERROR from deflateEnd only reports discarded pending
	// output on an unfinished stream; the release itself succeeded.
	if ret == statusDataError {
		return nil
	}
	return mapStatus(true, "deflateEnd", int(ret), msg)
}

// freeHeader releases a gzip header struct and its field copies.
func freeHeader(hdr *C.gz_header) {
	if hdr.name != nil {
		C.free(unsafe.Pointer(hdr.name))
	}
	if hdr.comment != nil {
		C.free(unsafe.Pointer(hdr.comment))
	}
	if hdr.extra != nil {
		C.free(unsafe.Pointer(hdr.extra))
	}
	C.free(unsafe.Pointer(hdr))
}
