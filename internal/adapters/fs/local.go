// Package fs provides the local filesystem adapter behind the
// processor's FileSystem port.
package fs

import (
	"io"
	"os"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/ports"
)

// Local implements the FileSystem port over the operating system.
type Local struct{}

var _ ports.FileSystem = (*Local)(nil)

// NewLocal returns a local filesystem adapter.
func NewLocal() *Local {
	return &Local{}
}

// Open opens a file for reading.
func (l *Local) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Create truncates or creates a file for writing.
func (l *Local) Create(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Size returns the byte size of a file.
func (l *Local) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Stat exposes file metadata.
func (l *Local) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
