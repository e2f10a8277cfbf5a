package sysv_test

import (
	"io"
	"sync"

	"github.com/lvdlvd/sysvread/fsys/sysv"
	"github.com/lvdlvd/sysvread/fsys/sysv/sysvtest"
)

const (
	dirMode  = 0o040755
	fileMode = 0o100644
	rootAddr = 10
)

// countingReader records the offset of every read.
type countingReader struct {
	r io.ReaderAt

	mu    sync.Mutex
	reads []int64
}

func (c *countingReader) ReadAt(p []byte, off int64) (int, error) {
	c.mu.Lock()
	c.reads = append(c.reads, off)
	c.mu.Unlock()
	return c.r.ReadAt(p, off)
}

// newRootImage returns an image whose root directory holds entries in a
// single block at rootAddr.
func newRootImage(typeCode uint32, entries ...sysvtest.Dirent) *sysvtest.Image {
	im := sysvtest.New(typeCode, 8)
	im.SetInode(sysv.RootInode, sysv.Inode{
		Mode:  dirMode,
		NLink: 2,
		Size:  uint32(len(entries) * sysv.DirEntrySize),
		Addr:  sysvtest.Addrs(rootAddr),
		MTime: 563328000,
	})
	im.SetDirectory(rootAddr, entries...)
	return im
}

// fooImage is the two entry image most tests start from: "." and a
// regular file "foo" at inode 5.
func fooImage() *sysvtest.Image {
	im := newRootImage(2,
		sysvtest.Dirent{Inode: 1, Name: "."},
		sysvtest.Dirent{Inode: 5, Name: "foo"},
	)
	im.SetInode(5, sysv.Inode{
		Mode:  fileMode,
		NLink: 1,
		UID:   100,
		GID:   1,
		Size:  1234,
		MTime: 563328000,
	})
	return im
}
