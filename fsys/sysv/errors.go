package sysv

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrTruncated   = errors.New("truncated image")
	ErrBadMagic    = errors.New("not a SysV filesystem")
	ErrUnsupported = errors.New("unsupported layout")
)

// TruncatedImageError is returned when a fixed-size record could not be
// read in full. No part of a short record is interpreted.
type TruncatedImageError struct {
	Record string // what was being read, e.g. "superblock" or "inode 5"
	Offset int64
	Want   int
	Got    int
}

func (e *TruncatedImageError) Error() string {
	return fmt.Sprintf("%s at offset %#x: short read (%d of %d bytes)", e.Record, e.Offset, e.Got, e.Want)
}

func (e *TruncatedImageError) Is(target error) bool { return target == ErrTruncated }

// InvalidMagicError is returned when the superblock magic does not match.
type InvalidMagicError struct {
	Magic uint32
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("superblock magic %#08x, want %#08x: not a SysV filesystem", e.Magic, uint32(Magic))
}

func (e *InvalidMagicError) Is(target error) bool { return target == ErrBadMagic }

// UnsupportedLayoutError is returned for directories that need indirect
// blocks.
type UnsupportedLayoutError struct {
	Inode  uint32
	Blocks int
}

func (e *UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("inode %d spans %d blocks, only %d direct blocks are supported", e.Inode, e.Blocks, NumDirect)
}

func (e *UnsupportedLayoutError) Is(target error) bool { return target == ErrUnsupported }
