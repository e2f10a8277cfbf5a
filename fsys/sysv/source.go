package sysv

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// File is an io.ReaderAt over the image at the named path. Each ReadAt
// opens the file and closes it again before returning, so no descriptor
// outlives a single record read.
type File string

// ReadAt implements io.ReaderAt.
func (f File) ReadAt(p []byte, off int64) (int, error) {
	fh, err := os.Open(string(f))
	if err != nil {
		return 0, err
	}
	defer fh.Close()
	return fh.ReadAt(p, off)
}

// Size returns the current size of the image file.
func (f File) Size() (int64, error) {
	info, err := os.Stat(string(f))
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: not a regular file", string(f))
	}
	return info.Size(), nil
}

// readRecord reads exactly size bytes at off. Running into the end of the
// image yields a *TruncatedImageError; other I/O errors are wrapped.
func readRecord(r io.ReaderAt, off int64, size int, record string) ([]byte, error) {
	buf := make([]byte, size)
	n, err := r.ReadAt(buf, off)
	if n == size {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &TruncatedImageError{Record: record, Offset: off, Want: size, Got: n}
	}
	return nil, fmt.Errorf("reading %s at offset %#x: %w", record, off, err)
}
