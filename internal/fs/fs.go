// Package fs defines the filesystem abstraction used by snap-restore.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"io/fs"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	Mode  fs.FileMode
	MTime time.Time
	Inode uint64
	Dev   uint64
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	CopyFile(ctx context.Context, src, dst string) error
	Link(ctx context.Context, src, dst string) error
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
	Writable(dir string) error
}
