//go:build ignore

// mkimage writes a small 1K-block s5 image for trying out sysvread:
//
//	go run testdata/mkimage.go && sysvread ls -l testdata/s5-1k.img
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lvdlvd/sysvread/fsys/sysv"
	"github.com/lvdlvd/sysvread/fsys/sysv/sysvtest"
)

func main() {
	if err := createImage("testdata/s5-1k.img"); err != nil {
		fmt.Fprintf(os.Stderr, "mkimage: %v\n", err)
		os.Exit(1)
	}
}

func createImage(path string) error {
	const (
		isize   = 16
		rootDir = 20
		etcDir  = 21
	)
	now := uint32(time.Date(1987, 11, 9, 12, 0, 0, 0, time.UTC).Unix())

	entries := []sysvtest.Dirent{
		{Inode: 1, Name: "."},
		{Inode: 1, Name: ".."},
		{Inode: 2, Name: "etc"},
		{Inode: 3, Name: "unix"},
		{Inode: 0, Name: "core"},
		{Inode: 4, Name: "lost+found"},
		{Inode: 5, Name: "dev_console"},
	}

	im := sysvtest.New(2, isize)
	im.SB.FSize = 4096
	im.SB.TFree = 4000
	im.SB.TInode = uint16(im.Layout().NumInodes - 5)
	im.SB.Time = now
	im.SB.State = 0x7c269d38 - im.SB.Time

	im.SetInode(sysv.RootInode, sysv.Inode{
		Mode:  0o040755,
		NLink: 4,
		Size:  uint32(len(entries) * sysv.DirEntrySize),
		Addr:  sysvtest.Addrs(rootDir),
		MTime: now,
	})
	im.SetDirectory(rootDir, entries...)

	im.SetInode(2, sysv.Inode{Mode: 0o040755, NLink: 2, Size: 2 * sysv.DirEntrySize, Addr: sysvtest.Addrs(etcDir), MTime: now})
	im.SetDirectory(etcDir, sysvtest.Dirent{Inode: 2, Name: "."}, sysvtest.Dirent{Inode: 1, Name: ".."})
	im.SetInode(3, sysv.Inode{Mode: 0o100644, NLink: 1, UID: 0, GID: 3, Size: 180224, MTime: now})
	im.SetInode(4, sysv.Inode{Mode: 0o040700, NLink: 2, MTime: now})
	im.SetInode(5, sysv.Inode{Mode: 0o020622, NLink: 1, MTime: now})

	return os.WriteFile(path, im.Bytes(), 0o644)
}
