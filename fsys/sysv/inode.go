package sysv

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/lvdlvd/sysvread/endian"
)

// File type codes, the top four bits of an inode mode.
const (
	TypeFIFO    = 0x1
	TypeChar    = 0x2
	TypeDir     = 0x4
	TypeBlock   = 0x6
	TypeRegular = 0x8
)

// Inode is one decoded inode table record. Addr is kept raw; how it is
// interpreted depends on the file size.
type Inode struct {
	Mode  uint16
	NLink uint16
	UID   uint16
	GID   uint16
	Size  uint32
	Addr  [40]byte
	ATime uint32
	MTime uint32
	CTime uint32
}

// FileType returns the top four bits of the mode.
func (ino *Inode) FileType() uint8 { return uint8(ino.Mode >> 12) }

// Perm returns the low twelve bits of the mode: permissions plus the
// setuid, setgid and sticky bits.
func (ino *Inode) Perm() uint16 { return ino.Mode & 0o7777 }

// Block returns the i'th packed address of the address table.
func (ino *Inode) Block(i int) uint32 {
	return endian.DiskAddress(ino.Addr[i*3 : i*3+3])
}

// FileMode converts the inode mode into an io/fs mode.
func (ino *Inode) FileMode() fs.FileMode {
	mode := fs.FileMode(ino.Mode & 0o777)
	if ino.Mode&0o1000 != 0 {
		mode |= fs.ModeSticky
	}
	if ino.Mode&0o2000 != 0 {
		mode |= fs.ModeSetgid
	}
	if ino.Mode&0o4000 != 0 {
		mode |= fs.ModeSetuid
	}
	switch ino.FileType() {
	case TypeDir:
		mode |= fs.ModeDir
	case TypeChar:
		mode |= fs.ModeDevice | fs.ModeCharDevice
	case TypeBlock:
		mode |= fs.ModeDevice
	case TypeFIFO:
		mode |= fs.ModeNamedPipe
	case TypeRegular:
	default:
		mode |= fs.ModeIrregular
	}
	return mode
}

// ModTime returns the last modification time.
func (ino *Inode) ModTime() time.Time { return time.Unix(int64(ino.MTime), 0) }

// InodeOffset returns the image offset of inode n. Inode numbers index
// the table directly.
func (l Layout) InodeOffset(n uint32) int64 {
	return l.InodeTable + int64(n)*InodeSize
}

// ReadInode reads inode n. The number is not range checked; an inode past
// the end of the image comes back as a *TruncatedImageError.
func ReadInode(r io.ReaderAt, l Layout, n uint32) (*Inode, error) {
	data, err := readRecord(r, l.InodeOffset(n), InodeSize, fmt.Sprintf("inode %d", n))
	if err != nil {
		return nil, err
	}

	ino := &Inode{
		Mode:  endian.Uint16(data[0:2]),
		NLink: endian.Uint16(data[2:4]),
		UID:   endian.Uint16(data[4:6]),
		GID:   endian.Uint16(data[6:8]),
		Size:  endian.Uint32(data[8:12]),
		ATime: endian.Uint32(data[52:56]),
		MTime: endian.Uint32(data[56:60]),
		CTime: endian.Uint32(data[60:64]),
	}
	copy(ino.Addr[:], data[12:52])
	return ino, nil
}
