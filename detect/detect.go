// Package detect identifies filesystem types from disk images.
package detect

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lvdlvd/sysvread/endian"
	"github.com/lvdlvd/sysvread/fsys/sysv"
)

// Type represents a filesystem type
type Type int

const (
	Unknown Type = iota
	SysV512      // s5, type code 1
	SysV1K       // s5, any other type code
	Ext          // ext2/3/4, recognised so it can be named in errors
	FAT
	NTFS
)

func (t Type) String() string {
	switch t {
	case SysV512:
		return "s5/512"
	case SysV1K:
		return "s5/1K"
	case Ext:
		return "ext2/3/4"
	case FAT:
		return "FAT"
	case NTFS:
		return "NTFS"
	default:
		return "unknown"
	}
}

// IsSysV returns true if the type is any s5 variant
func (t Type) IsSysV() bool {
	return t == SysV512 || t == SysV1K
}

// Detect identifies the filesystem type from a reader.
// It reads the boot area and the s5 superblock.
func Detect(r io.ReaderAt) (Type, error) {
	header := make([]byte, sysv.SuperblockOffset+sysv.SuperblockSize)
	n, err := r.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		return Unknown, fmt.Errorf("reading header: %w", err)
	}
	if n < 512 {
		return Unknown, fmt.Errorf("file too small: %d bytes", n)
	}

	// s5 superblock: magic and type code close the 512 byte record at 0x2600
	if n == len(header) {
		sb := header[sysv.SuperblockOffset:]
		if endian.Uint32(sb[504:508]) == sysv.Magic {
			if endian.Uint32(sb[508:512]) == 1 {
				return SysV512, nil
			}
			return SysV1K, nil
		}
	}

	// Check NTFS (offset 3: "NTFS    ")
	if bytes.Equal(header[3:11], []byte("NTFS    ")) {
		return NTFS, nil
	}

	// Check for ext2/3/4 superblock magic at offset 0x438 (1080)
	if n >= 0x43A && binary.LittleEndian.Uint16(header[0x438:0x43A]) == 0xEF53 {
		return Ext, nil
	}

	// FAT boot sector signature
	if header[510] == 0x55 && header[511] == 0xAA {
		return FAT, nil
	}

	return Unknown, nil
}
