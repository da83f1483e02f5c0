package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, data []byte, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		t.Fatal(err)
	}
}

func TestCopyFilePreservesContentAndAttrs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	data := []byte("snapshot payload\n")
	writeFile(t, src, data, 0o600)
	mtime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	f := New()
	if err := f.CopyFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("content mismatch")
	}

	st, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600 preserved", st.Mode().Perm())
	}
	if !st.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v preserved", st.ModTime(), mtime)
	}
}

func TestStatReportsIdentity(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	writeFile(t, a, []byte("x"), 0o644)

	b := filepath.Join(dir, "b")
	if err := os.Link(a, b); err != nil {
		t.Skipf("hard links unsupported here: %v", err)
	}

	f := New()
	ia, err := f.Stat(a)
	if err != nil {
		t.Fatal(err)
	}
	ib, err := f.Stat(b)
	if err != nil {
		t.Fatal(err)
	}

	if ia.Inode == 0 {
		t.Skip("platform does not expose inodes")
	}
	if ia.Inode != ib.Inode || ia.Dev != ib.Dev {
		t.Errorf("hard-linked files should share identity: %+v vs %+v", ia, ib)
	}
}

func TestSourceChanged(t *testing.T) {
	base := FileInfo{Size: 10, MTime: time.Unix(1000, 0), Inode: 7}

	tests := []struct {
		name string
		now  FileInfo
		want bool
	}{
		{"unchanged", FileInfo{Size: 10, MTime: time.Unix(1000, 0), Inode: 7}, false},
		{"grew", FileInfo{Size: 11, MTime: time.Unix(1000, 0), Inode: 7}, true},
		{"touched", FileInfo{Size: 10, MTime: time.Unix(2000, 0), Inode: 7}, true},
		{"replaced", FileInfo{Size: 10, MTime: time.Unix(1000, 0), Inode: 8}, true},
		{"no inumbers", FileInfo{Size: 10, MTime: time.Unix(1000, 0), Inode: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sourceChanged(base, tt.now); got != tt.want {
				t.Errorf("sourceChanged = %v, want %v", got, tt.want)
			}
		})
	}
}
