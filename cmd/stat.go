package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/lvdlvd/sysvread/fsys"
	"github.com/lvdlvd/sysvread/fsys/sysv"
)

// Stat shows detailed information about a file or directory.
func Stat(filesystem fsys.FS, fsPath string, out io.Writer) error {
	fsPath = normalizePath(fsPath)

	info, err := fs.Stat(filesystem, fsPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  File: %s\n", info.Name())
	fmt.Fprintf(out, "  Size: %d\n", info.Size())
	fmt.Fprintf(out, "  Mode: %s\n", info.Mode())
	fmt.Fprintf(out, "ModTime: %s\n", info.ModTime().Format(timeLayout))

	if fi, ok := info.(fsys.FileInfo); ok {
		fmt.Fprintf(out, " Inode: %d\n", fi.Inode())
	}
	if ino, ok := info.Sys().(*sysv.Inode); ok {
		fmt.Fprintf(out, " Links: %d\n", ino.NLink)
		fmt.Fprintf(out, "   Uid: %d\n", ino.UID)
		fmt.Fprintf(out, "   Gid: %d\n", ino.GID)
		fmt.Fprintf(out, "  Type: %d\n", ino.FileType())
		fmt.Fprintf(out, "  Perm: %04o\n", ino.Perm())
	}

	return nil
}

// normalizePath maps a user-supplied name onto an fs.FS path rooted at
// the image's root directory.
func normalizePath(p string) string {
	p = path.Clean("/" + p)
	if p == "/" {
		return "."
	}
	return p[1:]
}
