package cmd

import (
	"fmt"
	"io"

	"github.com/lvdlvd/sysvread/detect"
	"github.com/lvdlvd/sysvread/fsys/sysv"
)

const timeLayout = "2006-01-02 15:04:05"

// Info prints the superblock summary.
func Info(f *sysv.FS, fsType detect.Type, out io.Writer) error {
	sb := f.Superblock()
	l := f.Layout()

	fmt.Fprintf(out, "Filesystem type: %s\n", f.Type())
	fmt.Fprintf(out, "Detected as: %s\n", fsType)
	fmt.Fprintf(out, "Image size: %d\n", f.ImageSize())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "FILESYSTEM INFO")
	fmt.Fprintln(out, "---------------")
	fmt.Fprintf(out, "  Size in blocks of i-list: %d\n", sb.ISize)
	fmt.Fprintf(out, "  Size of inode list in entries: %d\n", l.NumInodes)
	fmt.Fprintf(out, "  Inodes per block: %d\n", l.InodesPerBlock)
	fmt.Fprintf(out, "  Block size: %d\n", l.BlockSize)
	fmt.Fprintf(out, "  Size in blocks of entire volume: %d\n", sb.FSize)
	fmt.Fprintf(out, "  Free inodes: %d\n", sb.NInode)
	fmt.Fprintf(out, "  Free blocks: %d\n", sb.NFree)
	fmt.Fprintf(out, "  Total free inodes: %d\n", sb.TInode)
	fmt.Fprintf(out, "  Total free blocks: %d\n", sb.TFree)
	fmt.Fprintf(out, "  File System Type: %d\n", sb.Type)
	fmt.Fprintf(out, "  File System State: %x\n", sb.State)
	fmt.Fprintf(out, "  File System Name: %s\n", sb.Name())
	fmt.Fprintf(out, "  File System Pack: %s\n", sb.Pack())
	fmt.Fprintf(out, "  Last Superblock Update Time: %s\n", sb.UpdateTime().Format(timeLayout))
	return nil
}
