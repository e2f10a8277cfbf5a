// Package fsys provides a read-only filesystem interface for disk images.
package fsys

import (
	"io/fs"
)

// FS represents a read-only filesystem that can be opened from a disk image.
// It embeds io/fs.FS and adds image-specific functionality.
type FS interface {
	fs.FS
	fs.ReadDirFS
	fs.StatFS

	// Type returns the filesystem type name (e.g., "s5/1K")
	Type() string

	// Close releases any resources held by the filesystem
	Close() error
}

// FileInfo provides extended file information
type FileInfo interface {
	fs.FileInfo

	// Inode returns the inode number (0 for filesystems without inodes)
	Inode() uint64
}
