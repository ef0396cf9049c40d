package domain

// FormatVariant selects the framing wrapped around the DEFLATE stream.
// Each variant maps to a window-bits value understood by the native
// codec; the value also encodes the 32 KiB sliding window size.
type FormatVariant uint8

const (
	// FormatRaw is a bare DEFLATE stream with no header or trailer.
	// The only format valid for bit priming and push-callback decoding.
	FormatRaw FormatVariant = iota

	// FormatZlib carries a 2-byte header and an Adler-32 trailer.
	FormatZlib

	// FormatGzip carries a rich header with optional metadata and a
	// CRC-32 trailer.
	FormatGzip

	// FormatAuto sniffs zlib vs gzip framing from the magic bytes.
	// Decode-only; there is no "auto" encoder.
	FormatAuto
)

// Window-bits encoding used by the native codec. The base selects the
// window size; the raw offset negates it, the gzip and auto offsets
// are additive flags.
const (
	MaxWindowBits    = 15 // 32 KiB sliding window.
	MinWindowBits    = 8  // 256 byte sliding window.
	gzipBitsOffset   = 16 // windowBits+16 selects gzip framing.
	sniffBitsOffset  = 32 // windowBits+32 enables zlib/gzip detection.
	DefaultMemLevel  = 8
	MaxMemLevel      = 9
	MinMemLevel      = 1
	DefaultChunkSize = 64 * 1024
)

// Gzip streams begin with these two magic bytes followed by the
// DEFLATE method byte 0x08.
var gzipMagic = [2]byte{0x1F, 0x8B}

// String returns the format name.
func (f FormatVariant) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatZlib:
		return "zlib"
	case FormatGzip:
		return "gzip"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Valid reports whether the value is one of the defined variants.
func (f FormatVariant) Valid() bool { return f <= FormatAuto }

// DecodeOnly reports whether the variant is valid only on the
// decompression path.
func (f FormatVariant) DecodeOnly() bool { return f == FormatAuto }

// WindowBits resolves the variant to the window-bits value the native
// codec expects, for the given window size exponent (MinWindowBits to
// MaxWindowBits).
func (f FormatVariant) WindowBits(windowSize int) int {
	switch f {
	case FormatRaw:
		return -windowSize
	case FormatGzip:
		return windowSize + gzipBitsOffset
	case FormatAuto:
		return windowSize + sniffBitsOffset
	default:
		return windowSize
	}
}

// SniffFormat inspects the first bytes of a compressed stream and
// reports the framing it appears to carry. Raw DEFLATE carries no
// magic, so anything that matches neither zlib nor gzip is reported as
// FormatRaw. Used for diagnostics; actual auto-detection during decode
// is performed by the native codec itself.
func SniffFormat(prefix []byte) FormatVariant {
	if len(prefix) >= 2 {
		if prefix[0] == gzipMagic[0] && prefix[1] == gzipMagic[1] {
			return FormatGzip
		}
		// Zlib header: CMF/FLG with method 8 and (CMF<<8|FLG) % 31 == 0.
		cmf, flg := uint16(prefix[0]), uint16(prefix[1])
		if cmf&0x0F == 8 && (cmf<<8|flg)%31 == 0 {
			return FormatZlib
		}
	}
	return FormatRaw
}
