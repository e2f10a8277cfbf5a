package sysv_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lvdlvd/sysvread/fsys"
	"github.com/lvdlvd/sysvread/fsys/sysv"
	"github.com/lvdlvd/sysvread/fsys/sysv/sysvtest"
)

func openFoo(t *testing.T) *sysv.FS {
	t.Helper()
	im := newRootImage(2,
		sysvtest.Dirent{Inode: 1, Name: "."},
		sysvtest.Dirent{Inode: 1, Name: ".."},
		sysvtest.Dirent{Inode: 7, Name: "usr"},
		sysvtest.Dirent{Inode: 5, Name: "foo"},
		sysvtest.Dirent{Inode: 6, Name: "bar"},
	)
	im.SetInode(5, sysv.Inode{Mode: fileMode, Size: 1234, MTime: 563328000})
	im.SetInode(6, sysv.Inode{Mode: 0o100755, Size: 99})
	im.SetInode(7, sysv.Inode{Mode: dirMode, Size: 64})

	data := im.Bytes()
	path := filepath.Join(t.TempDir(), "disk.img")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	size, err := sysv.File(path).Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != int64(len(data)) {
		t.Errorf("Size() = %d, want %d", size, len(data))
	}

	f, err := sysv.Open(sysv.File(path), size)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFSType(t *testing.T) {
	f := openFoo(t)
	if got := f.Type(); got != "s5/1K" {
		t.Errorf("Type() = %q, want s5/1K", got)
	}

	f512, err := sysv.Open(newRootImage(1).Reader(), 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := f512.Type(); got != "s5/512" {
		t.Errorf("Type() = %q, want s5/512", got)
	}
}

func TestFSReadDir(t *testing.T) {
	var filesystem fsys.FS = openFoo(t)

	entries, err := fs.ReadDir(filesystem, ".")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	type row struct {
		Name  string
		IsDir bool
		Type  fs.FileMode
	}
	var got []row
	for _, e := range entries {
		got = append(got, row{e.Name(), e.IsDir(), e.Type()})
	}
	want := []row{
		{"bar", false, 0},
		{"foo", false, 0},
		{"usr", true, fs.ModeDir},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadDir mismatch (-want +got):\n%s", diff)
	}
}

func TestFSDirectoryOrder(t *testing.T) {
	f := openFoo(t)

	root, err := f.Open(".")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer root.Close()
	dir := root.(fs.ReadDirFile)

	var got []string
	for {
		batch, err := dir.ReadDir(2)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		for _, e := range batch {
			got = append(got, e.Name())
		}
	}
	if diff := cmp.Diff([]string{"usr", "foo", "bar"}, got); diff != "" {
		t.Errorf("directory order mismatch (-want +got):\n%s", diff)
	}
}

func TestFSStat(t *testing.T) {
	f := openFoo(t)

	info, err := fs.Stat(f, "foo")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Name() != "foo" || info.Size() != 1234 || info.Mode() != 0o644 || info.IsDir() {
		t.Errorf("Stat(foo) = %s %d %v dir=%v", info.Name(), info.Size(), info.Mode(), info.IsDir())
	}
	if info.ModTime().Unix() != 563328000 {
		t.Errorf("ModTime = %v", info.ModTime())
	}
	fi, ok := info.(fsys.FileInfo)
	if !ok {
		t.Fatalf("%T does not implement fsys.FileInfo", info)
	}
	if fi.Inode() != 5 {
		t.Errorf("Inode() = %d, want 5", fi.Inode())
	}
	if ino, ok := info.Sys().(*sysv.Inode); !ok || ino.Mode != fileMode {
		t.Errorf("Sys() = %#v, want *sysv.Inode", info.Sys())
	}

	root, err := f.Stat(".")
	if err != nil {
		t.Fatalf("Stat(.): %v", err)
	}
	if !root.IsDir() || root.(fsys.FileInfo).Inode() != sysv.RootInode {
		t.Errorf("Stat(.) = %v inode %d", root.Mode(), root.(fsys.FileInfo).Inode())
	}
}

func TestFSErrors(t *testing.T) {
	f := openFoo(t)

	tests := []struct {
		name string
		op   func() error
		want error
	}{
		{"missing", func() error { _, err := f.Stat("nope"); return err }, fs.ErrNotExist},
		{"invalid path", func() error { _, err := f.Open("/foo"); return err }, fs.ErrInvalid},
		{"nested path", func() error { _, err := f.Open("usr/lib"); return err }, errors.ErrUnsupported},
		{"subdirectory", func() error { _, err := f.ReadDir("usr"); return err }, errors.ErrUnsupported},
		{"readdir on file", func() error { _, err := f.ReadDir("foo"); return err }, fs.ErrInvalid},
		{"file contents", func() error {
			file, err := f.Open("foo")
			if err != nil {
				return err
			}
			defer file.Close()
			_, err = file.Read(make([]byte, 10))
			return err
		}, errors.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) {
				t.Errorf("%v is not a *fs.PathError", err)
			}
		})
	}
}

func TestFSEntries(t *testing.T) {
	f := openFoo(t)

	entries, err := f.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if diff := cmp.Diff([]string{".", "..", "usr", "foo", "bar"}, names(entries)); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
	if f.Superblock().Magic != sysv.Magic {
		t.Errorf("Superblock().Magic = %#x", f.Superblock().Magic)
	}
	if f.Layout().BlockSize != 1024 {
		t.Errorf("Layout().BlockSize = %d", f.Layout().BlockSize)
	}
}

func TestFileSizeNotRegular(t *testing.T) {
	if _, err := sysv.File(t.TempDir()).Size(); err == nil {
		t.Error("Size() of a directory succeeded")
	}
	if _, err := sysv.File(filepath.Join(t.TempDir(), "missing")).Size(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Size() of a missing file = %v, want ErrNotExist", err)
	}
}

func TestFileTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.img")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := sysv.LoadSuperblock(sysv.File(path))
	if !errors.Is(err, sysv.ErrTruncated) {
		t.Errorf("LoadSuperblock of a 100 byte file = %v, want ErrTruncated", err)
	}
}
