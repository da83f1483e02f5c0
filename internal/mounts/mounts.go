// Package mounts enumerates mounted filesystems and resolves which mount
// owns a given path. The restore engine uses this to re-root absolute paths
// relative to their filesystem root and to discover snapshot locations.
package mounts

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// Mount describes one mounted filesystem.
type Mount struct {
	Device string
	Point  string
	FSType string
}

// Table answers mount-point queries. The system table is backed by the
// kernel's partition list; tests supply a Static table.
type Table interface {
	Mounts() []Mount
	MountPointOf(path string) (Mount, error)
}

// Static is a fixed mount table.
type Static struct {
	mounts []Mount
}

func NewStatic(ms []Mount) *Static {
	cp := append([]Mount(nil), ms...)
	sortByDepth(cp)
	return &Static{mounts: cp}
}

func (s *Static) Mounts() []Mount {
	return s.mounts
}

func (s *Static) MountPointOf(path string) (Mount, error) {
	return mountPointOf(s.mounts, path)
}

// Load reads the live partition table, excluding pseudo filesystems.
func Load() (*Static, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("reading mount table: %w", err)
	}

	ms := make([]Mount, 0, len(parts))
	for _, p := range parts {
		ms = append(ms, Mount{
			Device: p.Device,
			Point:  p.Mountpoint,
			FSType: p.Fstype,
		})
	}
	return NewStatic(ms), nil
}

// mountPointOf returns the deepest mount whose point is a prefix of path.
// The path does not need to exist; prefix matching against the table covers
// the nearest-existing-ancestor case as well.
func mountPointOf(ms []Mount, path string) (Mount, error) {
	if !filepath.IsAbs(path) {
		return Mount{}, fmt.Errorf("mount lookup needs an absolute path, got %q", path)
	}

	clean := filepath.Clean(path)
	for _, m := range ms {
		if underMount(clean, m.Point) {
			return m, nil
		}
	}
	return Mount{}, fmt.Errorf("no mount point owns %q", path)
}

func underMount(path, point string) bool {
	if point == "/" {
		return true
	}
	return path == point || strings.HasPrefix(path, point+string(filepath.Separator))
}

// sortByDepth orders mounts deepest-first so the longest prefix wins.
func sortByDepth(ms []Mount) {
	sort.Slice(ms, func(i, j int) bool {
		di := strings.Count(ms[i].Point, string(filepath.Separator))
		dj := strings.Count(ms[j].Point, string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return ms[i].Point > ms[j].Point
	})
}

// Rel returns path relative to the mount point, without a leading separator.
func Rel(m Mount, path string) (string, error) {
	rel, err := filepath.Rel(m.Point, filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("computing path relative to mount %s: %w", m.Point, err)
	}
	if rel == "." {
		return "", nil
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q escapes mount %s", path, m.Point)
	}
	return rel, nil
}
