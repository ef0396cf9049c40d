package errors

import (
	"errors"
	"fmt"
)

// Kind classifies the failures that can occur while driving the native
// codec or the file processor. Native status codes are mapped onto this
// closed set at the adapter boundary; callers never see raw codes
// without a classification.
type Kind int

const (
	// KindParameter indicates invalid configuration or arguments,
	// e.g. compressing with the Auto format or an out-of-range level.
	KindParameter Kind = iota + 1

	// KindUninitialized indicates an operation on a session whose
	// native handle has not been initialized or was already closed.
	KindUninitialized

	// KindCompression indicates a native-level failure on the
	// compression path. The native status code is preserved in Code.
	KindCompression

	// KindDecompression indicates a native-level failure on the
	// decompression path. The native status code is preserved in Code.
	KindDecompression

	// KindNeedDictionary indicates the decoder stopped because the
	// stream was compressed with a preset dictionary. The caller must
	// supply it via SetDictionary and resume.
	KindNeedDictionary

	// KindBufferTooSmall indicates the output buffer could not hold
	// the produced data. It is retried internally by the growth policy
	// and escalates only past the growth ceiling.
	KindBufferTooSmall

	// KindDataCorruption indicates the input violates the expected
	// framing or the compressed data itself is damaged.
	KindDataCorruption

	// KindCancelled indicates a cooperative stop requested by a
	// progress predicate or an output consumer.
	KindCancelled

	// KindProtocol indicates a legal operation invoked at an illegal
	// time, e.g. setting a dictionary after compression started.
	KindProtocol

	// KindIO indicates an underlying file-system failure. The original
	// error is wrapped exactly once.
	KindIO

	// KindMemory indicates the native allocator failed.
	KindMemory
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindParameter:
		return "parameter"
	case KindUninitialized:
		return "uninitialized"
	case KindCompression:
		return "compression"
	case KindDecompression:
		return "decompression"
	case KindNeedDictionary:
		return "need-dictionary"
	case KindBufferTooSmall:
		return "buffer-too-small"
	case KindDataCorruption:
		return "data-corruption"
	case KindCancelled:
		return "cancelled"
	case KindProtocol:
		return "protocol"
	case KindIO:
		return "io"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// CodecError is the single error type surfaced by this module. It pairs
// a Kind with the operation that failed and, for native failures, the
// raw status code reported by the codec.
type CodecError struct {
	Err       error  // Underlying cause, if any.
	Operation string // The operation that failed, e.g. "deflate".
	Code      int    // Native status code, zero when not applicable.
	Kind      Kind   // Classification of the failure.
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Operation, e.Err)
	}
	if e.Code != 0 {
		return fmt.Sprintf("[%s] %s: native status %d", e.Kind, e.Operation, e.Code)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Operation)
}

func (e *CodecError) Unwrap() error { return e.Err }

// New creates a CodecError without an underlying native code.
func New(kind Kind, operation string, msg string) *CodecError {
	var err error
	if msg != "" {
		err = errors.New(msg)
	}
	return &CodecError{Kind: kind, Operation: operation, Err: err}
}

// Newf creates a CodecError with a formatted message.
func Newf(kind Kind, operation string, format string, args ...any) *CodecError {
	return &CodecError{Kind: kind, Operation: operation, Err: fmt.Errorf(format, args...)}
}

// FromNative creates a CodecError carrying a raw native status code.
// The message, if non-empty, comes from the native stream state.
func FromNative(kind Kind, operation string, code int, msg string) *CodecError {
	var err error
	if msg != "" {
		err = errors.New(msg)
	}
	return &CodecError{Kind: kind, Operation: operation, Code: code, Err: err}
}

// WrapIO classifies an underlying I/O failure exactly once. An error
// that already carries a classification is returned unchanged, so
// propagating layers never double-wrap.
func WrapIO(operation string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CodecError
	if errors.As(err, &ce) {
		return err
	}
	return &CodecError{Kind: KindIO, Operation: operation, Err: err}
}

// KindOf extracts the Kind from an error, or zero if the error does
// not carry a classification.
func KindOf(err error) Kind {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// Is checks whether an error carries the given Kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// IsNeedDictionary reports whether decoding stopped on a preset
// dictionary signal.
func IsNeedDictionary(err error) bool { return Is(err, KindNeedDictionary) }

// IsCancelled reports whether an operation was cooperatively stopped.
func IsCancelled(err error) bool { return Is(err, KindCancelled) }

// IsDataCorruption reports whether the input failed framing or
// integrity checks.
func IsDataCorruption(err error) bool { return Is(err, KindDataCorruption) }

// IsParameter reports whether the failure was an invalid configuration
// or argument.
func IsParameter(err error) bool { return Is(err, KindParameter) }

// IsProtocol reports whether a legal operation was invoked at an
// illegal time.
func IsProtocol(err error) bool { return Is(err, KindProtocol) }

// AsCodecError attempts to extract a CodecError from a given error.
func AsCodecError(err error) *CodecError {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
