package czlib

// This file holds the exported callback targets for the native
// callback-driven decoder. Its cgo preamble must stay free of
// definitions because of the //export directives; the wrapper that
// hands these functions to the native codec lives in inflateback.go.

/*
#include <zlib.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

//export goInflateBackIn
func goInflateBackIn(desc unsafe.Pointer, buf **C.uchar) C.uint {
	b := cgo.Handle(uintptr(desc)).Value().(*BackReader)

	chunk, err := b.provide()
	if err != nil {
		b.provideErr = err
		return 0
	}
	if len(chunk) == 0 {
		// Empty chunk = end of input.
		b.sawEOF = true
		return 0
	}

	staged := b.stageInput(chunk)
	if staged == nil {
		b.provideErr = errOutOfMemory
		return 0
	}
	*buf = (*C.uchar)(staged)
	return C.uint(len(chunk))
}

//export goInflateBackOut
func goInflateBackOut(desc unsafe.Pointer, buf *C.uchar, length C.uint) C.int {
	b := cgo.Handle(uintptr(desc)).Value().(*BackReader)

	// The native buffer is only valid during this call; hand the
	// consumer an owned copy.
	out := C.GoBytes(unsafe.Pointer(buf), C.int(length))
	if !b.consume(out) {
		b.stopped = true
		return 1
	}
	return 0
}
