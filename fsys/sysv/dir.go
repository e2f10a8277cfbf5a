package sysv

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lvdlvd/sysvread/endian"
)

// DirEntry is one on-disk directory record.
type DirEntry struct {
	Inode uint16
	Name  [NameSize]byte // NUL padded, not terminated when full
}

// FileEntry is a directory entry resolved against its inode.
type FileEntry struct {
	Name     string
	Inode    uint32
	FileType uint8  // top four bits of the mode
	Perm     uint16 // low twelve bits of the mode
	// IsDir follows the listing convention of flagging type code 8.
	// On 3B2 images directories carry code 4 and 8 is a regular file;
	// Record.FileMode gives the io/fs classification.
	IsDir  bool
	Record Inode
}

type options struct {
	skipUnused  bool
	countBySize bool
	parallel   int
	log        logrus.FieldLogger
}

// Option configures ListRoot.
type Option func(*options)

// SkipUnused drops directory slots whose inode number is 0. By default
// every slot the block geometry implies is resolved, unused ones included.
func SkipUnused() Option {
	return func(o *options) { o.skipUnused = true }
}

// CountBySize sizes the last directory block by the records the inode size
// leaves after the full blocks. A root that exactly fills one block then
// lists its records, and a size just past a block boundary no longer reads
// a whole trailing block.
func CountBySize() Option {
	return func(o *options) { o.countBySize = true }
}

// Parallel resolves up to n entries concurrently. Output order does not
// change. n <= 1 resolves sequentially.
func Parallel(n int) Option {
	return func(o *options) { o.parallel = n }
}

// WithLogger sends debug tracing of the directory walk to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

func newOptions(opts []Option) options {
	o := options{log: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// slot locates one directory record in the image.
type slot struct {
	block  int
	index  int
	offset int64
}

// lastBlockEntries returns the number of records read from the last of
// blocks directory blocks. The count is entries modulo perBlock, and a zero
// remainder means a full block unless it is the only block: a root that
// exactly fills a single block lists nothing. With countBySize the last
// block holds whatever the size leaves after the full blocks instead.
func lastBlockEntries(entries, blocks, perBlock int64, countBySize bool) int64 {
	if countBySize {
		return max(entries-perBlock*(blocks-1), 0)
	}
	n := entries % perBlock
	if n == 0 && blocks > 1 {
		n = perBlock
	}
	return n
}

// directorySlots maps the records of a directory onto its direct blocks.
// All blocks but the last are full.
func directorySlots(ino *Inode, inum uint32, l Layout, countBySize bool, log logrus.FieldLogger) ([]slot, error) {
	bs := int64(l.BlockSize)
	entries := int64(ino.Size) / DirEntrySize
	blocks := (int64(ino.Size) + bs - 1) / bs
	perBlock := bs / DirEntrySize

	log.WithFields(logrus.Fields{
		"inode":     inum,
		"entries":   entries,
		"blocks":    blocks,
		"per_block": perBlock,
	}).Debug("directory geometry")

	if blocks > NumDirect {
		return nil, &UnsupportedLayoutError{Inode: inum, Blocks: int(blocks)}
	}

	slots := make([]slot, 0, entries)
	for b := int64(0); b < blocks; b++ {
		addr := ino.Block(int(b))
		offset := DataBase + int64(addr)*bs

		n := perBlock
		if b == blocks-1 {
			n = lastBlockEntries(entries, blocks, perBlock, countBySize)
		}

		log.WithFields(logrus.Fields{
			"block":   b,
			"addr":    addr,
			"offset":  fmt.Sprintf("%#x", offset),
			"entries": n,
		}).Debug("directory block")

		for i := int64(0); i < n; i++ {
			slots = append(slots, slot{block: int(b), index: int(i), offset: offset + i*DirEntrySize})
		}
	}
	return slots, nil
}

// ReadDirEntry reads the directory record at off.
func ReadDirEntry(r io.ReaderAt, off int64) (DirEntry, error) {
	data, err := readRecord(r, off, DirEntrySize, "directory entry")
	if err != nil {
		return DirEntry{}, err
	}
	var d DirEntry
	d.Inode = endian.Uint16(data[0:2])
	copy(d.Name[:], data[2:DirEntrySize])
	return d, nil
}

// Resolve reads the inode d refers to and builds its FileEntry.
func Resolve(r io.ReaderAt, l Layout, d DirEntry) (FileEntry, error) {
	inum := uint32(d.Inode)
	ino, err := ReadInode(r, l, inum)
	if err != nil {
		return FileEntry{}, err
	}
	return FileEntry{
		Name:     cString(d.Name[:]),
		Inode:    inum,
		FileType: ino.FileType(),
		Perm:     ino.Perm(),
		IsDir:    ino.FileType() == TypeRegular,
		Record:   *ino,
	}, nil
}

// ListRoot returns the entries of the root directory in on-disk order.
func ListRoot(r io.ReaderAt, l Layout, opts ...Option) ([]FileEntry, error) {
	o := newOptions(opts)

	root, err := ReadInode(r, l, RootInode)
	if err != nil {
		return nil, fmt.Errorf("reading root inode: %w", err)
	}

	slots, err := directorySlots(root, RootInode, l, o.countBySize, o.log)
	if err != nil {
		return nil, err
	}

	entries := make([]FileEntry, len(slots))
	used := make([]bool, len(slots))

	resolve := func(i int) error {
		s := slots[i]
		d, err := ReadDirEntry(r, s.offset)
		if err != nil {
			return fmt.Errorf("block %d slot %d: %w", s.block, s.index, err)
		}
		if d.Inode == 0 && o.skipUnused {
			return nil
		}
		fe, err := Resolve(r, l, d)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", cString(d.Name[:]), err)
		}
		entries[i], used[i] = fe, true

		o.log.WithFields(logrus.Fields{
			"inode": fe.Inode,
			"name":  fe.Name,
			"type":  fe.FileType,
			"mode":  fmt.Sprintf("%04o", fe.Perm),
		}).Debug("directory entry")
		return nil
	}

	if o.parallel > 1 {
		var g errgroup.Group
		g.SetLimit(o.parallel)
		for i := range slots {
			i := i
			g.Go(func() error { return resolve(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range slots {
			if err := resolve(i); err != nil {
				return nil, err
			}
		}
	}

	out := entries[:0]
	for i, fe := range entries {
		if used[i] {
			out = append(out, fe)
		}
	}
	return out, nil
}
