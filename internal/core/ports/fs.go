package ports

import (
	"io"
	"os"
)

// FileSystem abstracts the file access the chunked processor needs.
// Kept deliberately small: the processor only opens, creates and
// sizes files; directory management is the caller's concern.
type FileSystem interface {
	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)

	// Create truncates or creates a file for writing.
	Create(path string) (io.WriteCloser, error)

	// Size returns the byte size of a file, or an error if it cannot
	// be determined.
	Size(path string) (int64, error)

	// Stat exposes file metadata for progress reporting.
	Stat(path string) (os.FileInfo, error)
}
