// Package cmd implements the sysvread commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/lvdlvd/sysvread/fsys/sysv"
)

// LsOptions controls ls behavior
type LsOptions struct {
	Long bool // Long format (-l)
	All  bool // Show "." and ".." (-a)
}

// Ls lists the root directory of the image in on-disk order.
// Each row shows inode, name, type code and permission bits in octal.
func Ls(f *sysv.FS, out io.Writer, opts LsOptions) error {
	entries, err := f.Entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !opts.All && (e.Name == "." || e.Name == "..") {
			continue
		}
		if opts.Long {
			printLongFormat(e, out)
		} else {
			fmt.Fprintf(out, "%3d %-14s %2d %04o\n", e.Inode, e.Name, e.FileType, e.Perm)
		}
	}

	return nil
}

func printLongFormat(e sysv.FileEntry, out io.Writer) {
	ino := &e.Record
	modTime := ino.ModTime().Format("Jan _2 15:04")
	fmt.Fprintf(out, "%8d %s %3d %5d %5d %10d %s %s\n",
		e.Inode, ino.FileMode(), ino.NLink, ino.UID, ino.GID, ino.Size, modTime, e.Name)
}
