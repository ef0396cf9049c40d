package domain

import "time"

// GzipMetadata is the optional header metadata carried by the gzip
// format. Only meaningful on gzip-format sessions: the compressor
// writes it into the stream header, the decompressor recovers it once
// the header has been consumed.
type GzipMetadata struct {
	// Name is the original file name, without directory components.
	Name string

	// Comment is a free-form header comment.
	Comment string

	// ModTime is the modification time recorded in the header. The
	// zero value writes no timestamp.
	ModTime time.Time

	// Extra is the raw "extra field" bytes, application-defined.
	Extra []byte
}
