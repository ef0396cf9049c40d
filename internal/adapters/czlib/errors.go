package czlib

import (
	"github.com/Kosikowski/swift-zlib-sub001/pkg/errors"
)

// errOutOfMemory reports staging-buffer allocation failure inside a
// native callback, where returning an error directly is impossible.
var errOutOfMemory = errors.New(errors.KindMemory, "inflateBack", "input staging allocation failed")

// mapStatus converts a native status code into the module's error
// taxonomy. The mapping is 1:1 and direction-aware: codes without a
// dedicated kind become a compression or decompression failure with
// the raw code preserved.
func mapStatus(compressing bool, operation string, code int, msg string) error {
	switch code {
	case statusOK, statusStreamEnd:
		return nil
	case statusNeedDict:
		return errors.FromNative(errors.KindNeedDictionary, operation, code, msg)
	case statusDataError:
		return errors.FromNative(errors.KindDataCorruption, operation, code, msg)
	case statusMemError:
		return errors.FromNative(errors.KindMemory, operation, code, msg)
	case statusBufError:
		return errors.FromNative(errors.KindBufferTooSmall, operation, code, msg)
	case statusStreamError, statusVersionError:
		return errors.FromNative(errors.KindParameter, operation, code, msg)
	default:
		kind := errors.KindDecompression
		if compressing {
			kind = errors.KindCompression
		}
		return errors.FromNative(kind, operation, code, msg)
	}
}
