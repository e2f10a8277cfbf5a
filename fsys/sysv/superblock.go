// Package sysv implements read-only access to UNIX System V (s5)
// filesystem images as written by the AT&T 3B2: the superblock, the
// inode table and the root directory. All on-disk integers are
// big-endian.
package sysv

import (
	"bytes"
	"io"
	"time"

	"github.com/lvdlvd/sysvread/endian"
)

const (
	SuperblockOffset = 0x2600
	SuperblockSize   = 512
	Magic            = 0xFD187E20

	InodeSize    = 64
	DirEntrySize = 16
	NameSize     = 14

	// DataBase is the image offset that block addresses are relative to.
	DataBase = 0x2400

	RootInode = 1
	NumDirect = 10

	numFree    = 50
	numFreeIno = 100
)

// Superblock is the decoded filesystem control block.
type Superblock struct {
	ISize      uint16 // blocks in the inode list
	FSize      uint32 // blocks in the volume
	NFree      uint16 // valid entries in Free
	Free       [numFree]uint32
	NInode     uint16 // valid entries in FreeInodes
	FreeInodes [numFreeIno]uint16
	FLock      uint8
	ILock      uint8
	FMod       uint8
	ROnly      uint8
	Time       uint32 // last update, seconds since the epoch
	DInfo      [4]uint16
	TFree      uint32 // total free blocks
	TInode     uint16 // total free inodes
	FName      [6]byte
	FPack      [6]byte
	State      uint32
	Magic      uint32
	Type       uint32
}

// Name returns the filesystem name up to the first NUL.
func (sb *Superblock) Name() string { return cString(sb.FName[:]) }

// Pack returns the pack name up to the first NUL.
func (sb *Superblock) Pack() string { return cString(sb.FPack[:]) }

// UpdateTime returns the last superblock update time.
func (sb *Superblock) UpdateTime() time.Time { return time.Unix(int64(sb.Time), 0) }

// Layout derives the image geometry from the superblock.
func (sb *Superblock) Layout() Layout {
	l := LayoutFor(sb.Type)
	// Divides by the directory entry size, not the inode size. Suspect,
	// but this is the figure 3B2 tools report.
	l.NumInodes = uint32(sb.ISize) * l.BlockSize / DirEntrySize
	l.InodesPerBlock = l.BlockSize / InodeSize
	return l
}

// Layout holds the parameters that locate inodes and data blocks.
type Layout struct {
	BlockSize  uint32
	InodeTable int64 // image offset of inode 0

	NumInodes      uint32
	InodesPerBlock uint32
}

var (
	layouts = map[uint32]Layout{
		1: {BlockSize: 512, InodeTable: 512 * 20},
		2: {BlockSize: 1024, InodeTable: 512 * 22},
	}
	defaultLayout = layouts[2]
)

// LayoutFor returns block size and inode table offset for a superblock
// type code. Unknown codes get the 1K layout.
func LayoutFor(typeCode uint32) Layout {
	if l, ok := layouts[typeCode]; ok {
		return l
	}
	return defaultLayout
}

// LoadSuperblock reads and validates the superblock.
func LoadSuperblock(r io.ReaderAt) (*Superblock, error) {
	data, err := readRecord(r, SuperblockOffset, SuperblockSize, "superblock")
	if err != nil {
		return nil, err
	}

	sb := decodeSuperblock(data)
	if sb.Magic != Magic {
		return nil, &InvalidMagicError{Magic: sb.Magic}
	}
	return sb, nil
}

func decodeSuperblock(data []byte) *Superblock {
	sb := &Superblock{
		ISize:  endian.Uint16(data[0:2]),
		FSize:  endian.Uint32(data[4:8]),
		NFree:  endian.Uint16(data[8:10]),
		NInode: endian.Uint16(data[212:214]),
		FLock:  data[414],
		ILock:  data[415],
		FMod:   data[416],
		ROnly:  data[417],
		Time:   endian.Uint32(data[420:424]),
		TFree:  endian.Uint32(data[432:436]),
		TInode: endian.Uint16(data[436:438]),
		State:  endian.Uint32(data[500:504]),
		Magic:  endian.Uint32(data[504:508]),
		Type:   endian.Uint32(data[508:512]),
	}
	for i := range sb.Free {
		off := 12 + i*4
		sb.Free[i] = endian.Uint32(data[off : off+4])
	}
	for i := range sb.FreeInodes {
		off := 214 + i*2
		sb.FreeInodes[i] = endian.Uint16(data[off : off+2])
	}
	for i := range sb.DInfo {
		off := 424 + i*2
		sb.DInfo[i] = endian.Uint16(data[off : off+2])
	}
	copy(sb.FName[:], data[438:444])
	copy(sb.FPack[:], data[444:450])
	return sb
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
