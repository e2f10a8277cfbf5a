// Package sysvtest builds synthetic SysV images in memory.
package sysvtest

import (
	"bytes"
	"encoding/binary"

	"github.com/lvdlvd/sysvread/fsys/sysv"
)

// Dirent is a directory record to place in a data block.
type Dirent struct {
	Inode uint16
	Name  string
}

// Image is a sparse image under construction. The superblock is encoded
// when Bytes is called, so it can be edited until then.
type Image struct {
	SB     sysv.Superblock
	layout sysv.Layout
	buf    []byte
}

// New returns an image with a valid magic, the given type code and an
// inode list of isize blocks.
func New(typeCode uint32, isize uint16) *Image {
	im := &Image{layout: sysv.LayoutFor(typeCode)}
	im.SB.Type = typeCode
	im.SB.ISize = isize
	im.SB.Magic = sysv.Magic
	copy(im.SB.FName[:], "root")
	copy(im.SB.FPack[:], "3b2")
	im.grow(sysv.SuperblockOffset + sysv.SuperblockSize)
	return im
}

// Layout returns the layout the image is written with.
func (im *Image) Layout() sysv.Layout { return im.layout }

// DataOffset returns the image offset of block addr.
func (im *Image) DataOffset(addr uint32) int64 {
	return sysv.DataBase + int64(addr)*int64(im.layout.BlockSize)
}

// WriteAt copies b into the image at off, growing it as needed.
func (im *Image) WriteAt(b []byte, off int64) (int, error) {
	im.grow(int(off) + len(b))
	return copy(im.buf[off:], b), nil
}

// SetInode writes inode n.
func (im *Image) SetInode(n uint32, ino sysv.Inode) {
	im.WriteAt(EncodeInode(&ino), im.layout.InodeOffset(n))
}

// SetDirectory writes consecutive directory records starting at block addr.
func (im *Image) SetDirectory(addr uint32, entries ...Dirent) {
	off := im.DataOffset(addr)
	for i, e := range entries {
		im.WriteAt(EncodeDirent(e), off+int64(i)*sysv.DirEntrySize)
	}
}

// Bytes encodes the superblock and returns the image.
func (im *Image) Bytes() []byte {
	im.WriteAt(EncodeSuperblock(&im.SB), sysv.SuperblockOffset)
	return bytes.Clone(im.buf)
}

// Reader returns the image as an io.ReaderAt.
func (im *Image) Reader() *bytes.Reader {
	return bytes.NewReader(im.Bytes())
}

func (im *Image) grow(n int) {
	if n > len(im.buf) {
		im.buf = append(im.buf, make([]byte, n-len(im.buf))...)
	}
}

// Addrs packs block addresses into an inode address table. Addresses
// must be below 1<<20.
func Addrs(blocks ...uint32) [40]byte {
	var a [40]byte
	for i, b := range blocks {
		a[i*3] = byte(b >> 12)
		a[i*3+1] = byte(b>>8) & 0x0f
		a[i*3+2] = byte(b)
	}
	return a
}

// EncodeSuperblock returns the on-disk form of sb.
func EncodeSuperblock(sb *sysv.Superblock) []byte {
	be := binary.BigEndian
	b := make([]byte, sysv.SuperblockSize)
	be.PutUint16(b[0:2], sb.ISize)
	be.PutUint32(b[4:8], sb.FSize)
	be.PutUint16(b[8:10], sb.NFree)
	for i, v := range sb.Free {
		be.PutUint32(b[12+i*4:], v)
	}
	be.PutUint16(b[212:214], sb.NInode)
	for i, v := range sb.FreeInodes {
		be.PutUint16(b[214+i*2:], v)
	}
	b[414], b[415], b[416], b[417] = sb.FLock, sb.ILock, sb.FMod, sb.ROnly
	be.PutUint32(b[420:424], sb.Time)
	for i, v := range sb.DInfo {
		be.PutUint16(b[424+i*2:], v)
	}
	be.PutUint32(b[432:436], sb.TFree)
	be.PutUint16(b[436:438], sb.TInode)
	copy(b[438:444], sb.FName[:])
	copy(b[444:450], sb.FPack[:])
	be.PutUint32(b[500:504], sb.State)
	be.PutUint32(b[504:508], sb.Magic)
	be.PutUint32(b[508:512], sb.Type)
	return b
}

// EncodeInode returns the on-disk form of ino.
func EncodeInode(ino *sysv.Inode) []byte {
	be := binary.BigEndian
	b := make([]byte, sysv.InodeSize)
	be.PutUint16(b[0:2], ino.Mode)
	be.PutUint16(b[2:4], ino.NLink)
	be.PutUint16(b[4:6], ino.UID)
	be.PutUint16(b[6:8], ino.GID)
	be.PutUint32(b[8:12], ino.Size)
	copy(b[12:52], ino.Addr[:])
	be.PutUint32(b[52:56], ino.ATime)
	be.PutUint32(b[56:60], ino.MTime)
	be.PutUint32(b[60:64], ino.CTime)
	return b
}

// EncodeDirent returns the on-disk form of e. Names longer than the
// field are cut.
func EncodeDirent(e Dirent) []byte {
	b := make([]byte, sysv.DirEntrySize)
	binary.BigEndian.PutUint16(b[0:2], e.Inode)
	copy(b[2:], e.Name)
	return b
}
