package czlib

/*
#include <zlib.h>
*/
import "C"

// The two rolling checksums used by the stream framings. Both are
// incremental (feed ranges in order, threading the running value) and
// combinable (merge two independently computed halves).

// Adler32 updates a running Adler-32 checksum with the given bytes.
// Seed with Adler32(0, nil) for a fresh checksum.
func Adler32(adler uint32, p []byte) uint32 {
	if p == nil {
		return uint32(C.adler32(C.uLong(adler), nil, 0))
	}
	return uint32(C.adler32(C.uLong(adler), (*C.Bytef)(bufPtr(p)), C.uInt(len(p))))
}

// Crc32 updates a running CRC-32 checksum with the given bytes. Seed
// with Crc32(0, nil) for a fresh checksum.
func Crc32(crc uint32, p []byte) uint32 {
	if p == nil {
		return uint32(C.crc32(C.uLong(crc), nil, 0))
	}
	return uint32(C.crc32(C.uLong(crc), (*C.Bytef)(bufPtr(p)), C.uInt(len(p))))
}

// Adler32Combine merges two Adler-32 checksums, where adler2 covers
// len2 bytes that followed the range covered by adler1.
func Adler32Combine(adler1, adler2 uint32, len2 int64) uint32 {
	return uint32(C.adler32_combine(C.uLong(adler1), C.uLong(adler2), C.z_off_t(len2)))
}

// Crc32Combine merges two CRC-32 checksums, where crc2 covers len2
// bytes that followed the range covered by crc1.
func Crc32Combine(crc1, crc2 uint32, len2 int64) uint32 {
	return uint32(C.crc32_combine(C.uLong(crc1), C.uLong(crc2), C.z_off_t(len2)))
}

// CompressBound returns a conservative upper bound on zlib-framed
// compressed size for sourceLen input bytes, independent of any
// stream's parameters.
func CompressBound(sourceLen int) int {
	return int(C.compressBound(C.uLong(sourceLen)))
}
