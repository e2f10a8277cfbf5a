package sysv

import (
	"errors"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/lvdlvd/sysvread/fsys"
)

// FS exposes the root directory of a SysV image through io/fs. Only the
// root is listed; subdirectories and file contents are not readable.
type FS struct {
	r      io.ReaderAt
	size   int64
	sb     *Superblock
	layout Layout
	opts   []Option
}

var _ fsys.FS = (*FS)(nil)

// Open loads the superblock of the image in r. The options are applied
// to every root directory listing.
func Open(r io.ReaderAt, size int64, opts ...Option) (*FS, error) {
	sb, err := LoadSuperblock(r)
	if err != nil {
		return nil, err
	}
	return &FS{r: r, size: size, sb: sb, layout: sb.Layout(), opts: opts}, nil
}

// Type names the block size variant, "s5/512" or "s5/1K".
func (f *FS) Type() string {
	if f.layout.BlockSize == 512 {
		return "s5/512"
	}
	return "s5/1K"
}

// Close is a no-op; the image is reopened for every read.
func (f *FS) Close() error { return nil }

// Superblock returns the decoded superblock.
func (f *FS) Superblock() *Superblock { return f.sb }

// Layout returns the geometry derived from the superblock.
func (f *FS) Layout() Layout { return f.layout }

// ImageSize returns the image size passed to Open.
func (f *FS) ImageSize() int64 { return f.size }

// Entries lists the root directory in on-disk order, "." and ".."
// included.
func (f *FS) Entries() ([]FileEntry, error) {
	return ListRoot(f.r, f.layout, f.opts...)
}

func (f *FS) lookup(name string) (FileEntry, error) {
	entries, err := f.Entries()
	if err != nil {
		return FileEntry{}, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return FileEntry{}, fs.ErrNotExist
}

func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if name == "." {
		root, err := ReadInode(f.r, f.layout, RootInode)
		if err != nil {
			return nil, &fs.PathError{Op: "open", Path: name, Err: err}
		}
		return &sysvDir{fs: f, info: fileInfo{name: ".", inum: RootInode, ino: *root}, root: true}, nil
	}

	if strings.Contains(name, "/") {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errors.ErrUnsupported}
	}

	e, err := f.lookup(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	info := fileInfo{name: e.Name, inum: e.Inode, ino: e.Record}
	if info.IsDir() {
		return &sysvDir{fs: f, info: info}, nil
	}
	return &sysvFile{info: info}, nil
}

// ReadDir returns the root entries sorted by name, without "." and "..".
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dir, ok := file.(fs.ReadDirFile)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (f *FS) Stat(name string) (fs.FileInfo, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.Stat()
}

// sysvFile is a non-directory root entry. Contents are not readable.
type sysvFile struct {
	info fileInfo
}

func (f *sysvFile) Stat() (fs.FileInfo, error) { return &f.info, nil }

func (f *sysvFile) Read(b []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: f.info.name, Err: errors.ErrUnsupported}
}

func (f *sysvFile) Close() error { return nil }

// sysvDir is a directory. Only the root can be listed.
type sysvDir struct {
	fs      *FS
	info    fileInfo
	root    bool
	entries []fs.DirEntry
	offset  int
}

func (d *sysvDir) Stat() (fs.FileInfo, error) { return &d.info, nil }

func (d *sysvDir) Read(b []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: fs.ErrInvalid}
}

func (d *sysvDir) Close() error {
	d.entries = nil
	return nil
}

// ReadDir returns entries in directory order.
func (d *sysvDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if !d.root {
		return nil, &fs.PathError{Op: "readdir", Path: d.info.name, Err: errors.ErrUnsupported}
	}

	if d.entries == nil {
		raw, err := d.fs.Entries()
		if err != nil {
			return nil, &fs.PathError{Op: "readdir", Path: d.info.name, Err: err}
		}

		d.entries = make([]fs.DirEntry, 0, len(raw))
		for _, e := range raw {
			if e.Name == "." || e.Name == ".." {
				continue
			}
			d.entries = append(d.entries, &dirEntry{info: fileInfo{name: e.Name, inum: e.Inode, ino: e.Record}})
		}
	}

	if n <= 0 {
		entries := d.entries[d.offset:]
		d.offset = len(d.entries)
		return entries, nil
	}

	if d.offset >= len(d.entries) {
		return nil, io.EOF
	}

	end := min(d.offset+n, len(d.entries))
	entries := d.entries[d.offset:end]
	d.offset = end
	return entries, nil
}

// dirEntry implements fs.DirEntry. The inode is already resolved.
type dirEntry struct {
	info fileInfo
}

func (e *dirEntry) Name() string               { return e.info.name }
func (e *dirEntry) IsDir() bool                { return e.info.IsDir() }
func (e *dirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e *dirEntry) Info() (fs.FileInfo, error) { return &e.info, nil }

// fileInfo implements fs.FileInfo and fsys.FileInfo
type fileInfo struct {
	name string
	inum uint32
	ino  Inode
}

func (i *fileInfo) Name() string       { return i.name }
func (i *fileInfo) Size() int64        { return int64(i.ino.Size) }
func (i *fileInfo) Mode() fs.FileMode  { return i.ino.FileMode() }
func (i *fileInfo) ModTime() time.Time { return i.ino.ModTime() }
func (i *fileInfo) IsDir() bool        { return i.Mode().IsDir() }
func (i *fileInfo) Sys() any           { return &i.ino }
func (i *fileInfo) Inode() uint64      { return uint64(i.inum) }
