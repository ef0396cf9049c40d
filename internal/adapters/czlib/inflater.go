package czlib

/*
#include <stdlib.h>
#include <string.h>
#include <zlib.h>
*/
import "C"

import (
	"time"
	"unsafe"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/ports"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// Maximum gzip header field sizes recovered during decoding. Fields
// longer than these are truncated by the native codec.
const (
	headerNameMax    = 256
	headerCommentMax = 256
	headerExtraMax   = 1024
)

// Inflater owns one native decompression handle. Single-owner, not
// goroutine-safe; see Deflater.
type Inflater struct {
	strm       *C.z_stream
	header     *C.gz_header // Non-nil only for gzip-capable framing.
	windowBits int
	closed     bool
	outWasFull bool // Previous step filled the output buffer completely.
}

var _ ports.Inflater = (*Inflater)(nil)

// NewInflater allocates and initializes a native decompression stream.
// windowBits carries the format framing encoding (negative for raw,
// +16 for gzip, +32 for sniffing) as produced by
// domain.FormatVariant.WindowBits. For gzip-capable framing a header
// recovery buffer is registered before any input is consumed.
func NewInflater(windowBits int) (*Inflater, error) {
	strm := allocStream()
	if strm == nil {
		return nil, errors.New(errors.KindMemory, "inflateInit", "native stream allocation failed")
	}

	if ret := inflateInit(strm, windowBits); ret != statusOK {
		msg := streamMsg(strm)
		freeStream(strm)
		return nil, mapStatus(false, "inflateInit", ret, msg)
	}

	inf := &Inflater{strm: strm, windowBits: windowBits}
	if windowBits > domain.MaxWindowBits {
		if err := inf.registerHeader(); err != nil {
			inf.Close()
			return nil, err
		}
	}
	return inf, nil
}

// registerHeader allocates gzip header recovery buffers and hands them
// to the native codec. Must run before any input is consumed.
func (i *Inflater) registerHeader() error {
	hdr := (*C.gz_header)(C.calloc(1, C.sizeof_gz_header))
	if hdr == nil {
		return errors.New(errors.KindMemory, "inflateGetHeader", "header allocation failed")
	}
	hdr.name = (*C.Bytef)(C.malloc(headerNameMax))
	hdr.name_max = headerNameMax
	hdr.comment = (*C.Bytef)(C.malloc(headerCommentMax))
	hdr.comm_max = headerCommentMax
	hdr.extra = (*C.Bytef)(C.malloc(headerExtraMax))
	hdr.extra_max = headerExtraMax

	if ret := C.inflateGetHeader(i.strm, hdr); ret != statusOK {
		msg := streamMsg(i.strm)
		freeHeader(hdr)
		return mapStatus(false, "inflateGetHeader", int(ret), msg)
	}
	i.header = hdr
	return nil
}

// Step feeds input and drains output through the native codec once.
// A NeedDictionary error reports a stream compressed against a preset
// dictionary; install it and step again with the unconsumed input.
func (i *Inflater) Step(in, out []byte, flush domain.FlushMode) (ports.StepResult, error) {
	var res ports.StepResult
	if i.closed {
		return res, errors.New(errors.KindUninitialized, "inflate", "stream is closed")
	}
	if len(out) == 0 {
		return res, errors.New(errors.KindParameter, "inflate", "output buffer is empty")
	}

	sr := step(i.strm, false, in, out, int(flush))
	res.Consumed = sr.consumed
	res.Produced = sr.produced
	res.Done = sr.status == statusStreamEnd
	i.outWasFull = res.Produced == len(out)
	if sr.status == statusOK || sr.status == statusStreamEnd {
		return res, nil
	}
	return res, mapStatus(false, "inflate", sr.status, streamMsg(i.strm))
}

// SetDictionary installs the preset dictionary the stream asked for.
// The native codec verifies it against the checksum announced in the
// stream header; a mismatch surfaces as DataCorruption.
func (i *Inflater) SetDictionary(dict []byte) error {
	if i.closed {
		return errors.New(errors.KindUninitialized, "inflateSetDictionary", "stream is closed")
	}
	ret := C.inflateSetDictionary(i.strm, (*C.Bytef)(bufPtr(dict)), C.uInt(len(dict)))
	return mapStatus(false, "inflateSetDictionary", int(ret), streamMsg(i.strm))
}

// Header returns the gzip metadata recovered from the stream header.
// ok is false until the header has been fully consumed, and always
// false for non-gzip framing or for streams sniffed as zlib.
func (i *Inflater) Header() (*domain.GzipMetadata, bool, error) {
	if i.closed {
		return nil, false, errors.New(errors.KindUninitialized, "inflateGetHeader", "stream is closed")
	}
	if i.header == nil || i.header.done != 1 {
		return nil, false, nil
	}

	meta := &domain.GzipMetadata{}
	if i.header.name != nil {
		meta.Name = goHeaderString(i.header.name, headerNameMax)
	}
	if i.header.comment != nil {
		meta.Comment = goHeaderString(i.header.comment, headerCommentMax)
	}
	if i.header.time != 0 {
		meta.ModTime = time.Unix(int64(i.header.time), 0)
	}
	if i.header.extra != nil && i.header.extra_len > 0 {
		n := int(i.header.extra_len)
		if n > headerExtraMax {
			n = headerExtraMax
		}
		meta.Extra = C.GoBytes(unsafe.Pointer(i.header.extra), C.int(n))
	}
	return meta, true, nil
}

// Prime injects the low-order bits of value ahead of the next input
// byte. At most MaxPrimeBits per call.
func (i *Inflater) Prime(bits, value int) error {
	if i.closed {
		return errors.New(errors.KindUninitialized, "inflatePrime", "stream is closed")
	}
	ret := C.inflatePrime(i.strm, C.int(bits), C.int(value))
	return mapStatus(false, "inflatePrime", int(ret), streamMsg(i.strm))
}

// Pending estimates output still buffered inside the codec. The native
// library has no inflate-side pending query on every platform, so this
// mirrors the portable fallback: it reports one pending byte while the
// previous step filled its whole output buffer, zero otherwise.
func (i *Inflater) Pending() (int, int, error) {
	if i.closed {
		return 0, 0, errors.New(errors.KindUninitialized, "inflatePending", "stream is closed")
	}
	if i.outWasFull {
		return 1, 0, nil
	}
	return 0, 0, nil
}

// Reset reinitializes the codec state while keeping the configured
// window bits. Header recovery is re-registered because the native
// reset forgets it.
func (i *Inflater) Reset() error {
	if i.closed {
		return errors.New(errors.KindUninitialized, "inflateReset", "stream is closed")
	}
	ret := C.inflateReset(i.strm)
	if err := mapStatus(false, "inflateReset", int(ret), streamMsg(i.strm)); err != nil {
		return err
	}
	i.outWasFull = false
	if i.header != nil {
		freeHeader(i.header)
		i.header = nil
		return i.registerHeader()
	}
	return nil
}

// Copy deep-duplicates the entire native state into an independent
// Inflater. Header metadata recovery does not carry over to the copy;
// query the original for it.
func (i *Inflater) Copy() (ports.Inflater, error) {
	if i.closed {
		return nil, errors.New(errors.KindUninitialized, "inflateCopy", "stream is closed")
	}
	dest := allocStream()
	if dest == nil {
		return nil, errors.New(errors.KindMemory, "inflateCopy", "native stream allocation failed")
	}
	if ret := C.inflateCopy(dest, i.strm); ret != statusOK {
		msg := streamMsg(i.strm)
		freeStream(dest)
		return nil, mapStatus(false, "inflateCopy", int(ret), msg)
	}
	return &Inflater{strm: dest, windowBits: i.windowBits, outWasFull: i.outWasFull}, nil
}

// TotalIn returns bytes consumed by the native codec so far.
func (i *Inflater) TotalIn() uint64 {
	if i.closed {
		return 0
	}
	return totalIn(i.strm)
}

// TotalOut returns bytes produced by the native codec so far.
func (i *Inflater) TotalOut() uint64 {
	if i.closed {
		return 0
	}
	return totalOut(i.strm)
}

// Close releases the native handle and header buffers. Idempotent.
func (i *Inflater) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true

	ret := C.inflateEnd(i.strm)
	msg := streamMsg(i.strm)
	if i.header != nil {
		freeHeader(i.header)
		i.header = nil
	}
	freeStream(i.strm)
	i.strm = nil
	return mapStatus(false, "inflateEnd", int(ret), msg)
}

// goHeaderString converts a NUL-terminated header field with a known
// capacity bound.
func goHeaderString(p *C.Bytef, max int) string {
	b := C.GoBytes(unsafe.Pointer(p), C.int(max))
	for n := 0; n < len(b); n++ {
		if b[n] == 0 {
			return string(b[:n])
		}
	}
	return string(b)
}
