package restore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raoulx24/snap-restore/internal/logging"
	"github.com/raoulx24/snap-restore/internal/mounts"
	"github.com/raoulx24/snap-restore/internal/snapshot"
)

// MapError reports that a requested path could not be mapped onto the
// snapshot. It is a per-request error, never a silent fallback.
type MapError struct {
	Requested string
	Reason    string
	Err       error
}

func (e *MapError) Error() string {
	msg := fmt.Sprintf("cannot map %q: %s", e.Requested, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MapError) Unwrap() error { return e.Err }

// Mapping is the result of path mapping: the exact candidate source inside
// the snapshot and the destination on the live filesystem.
type Mapping struct {
	Source string
	Dest   string
	Rel    string // path relative to the snapshot / destination root
}

// Mapper converts requested restore paths into snapshot-relative source
// candidates and live destinations. The ordered rules:
//
//  1. Absolute path: find the owning mount point, take the path relative to
//     it, and re-root that onto the snapshot instance. Destination is the
//     original path, or the override root when one is set.
//  2. Relative path that stays under the snapshot parent: joined onto the
//     parent directly.
//  3. Relative path escaping the parent (leading ".." elements): the escape
//     is stripped and the inferred parent substituted. Best effort, logged.
type Mapper struct {
	inst       snapshot.Instance
	table      mounts.Table
	destRoot   string
	snapParent string
	log        logging.Logger
}

// NewMapper computes the snapshot's logical parent (the mount point owning
// the snapshot root, or the root's own parent when no table entry matches).
func NewMapper(inst snapshot.Instance, snapshotRoot string, tbl mounts.Table, destRoot string, log logging.Logger) *Mapper {
	parent := filepath.Dir(filepath.Clean(snapshotRoot))
	if tbl != nil {
		if m, err := tbl.MountPointOf(snapshotRoot); err == nil {
			parent = m.Point
		}
	}
	return &Mapper{
		inst:       inst,
		table:      tbl,
		destRoot:   destRoot,
		snapParent: parent,
		log:        log,
	}
}

// SnapshotParent exposes the inferred logical parent of snapshotted content.
func (m *Mapper) SnapshotParent() string { return m.snapParent }

func (m *Mapper) Map(requested string) (Mapping, error) {
	if requested == "" {
		return Mapping{}, &MapError{Requested: requested, Reason: "empty path"}
	}

	if filepath.IsAbs(requested) {
		return m.mapAbsolute(requested)
	}
	return m.mapRelative(requested)
}

func (m *Mapper) mapAbsolute(requested string) (Mapping, error) {
	if m.table == nil {
		return Mapping{}, &MapError{Requested: requested, Reason: "no mount table available"}
	}

	mnt, err := m.table.MountPointOf(requested)
	if err != nil {
		return Mapping{}, &MapError{Requested: requested, Reason: "no mount point determined", Err: err}
	}

	rel, err := mounts.Rel(mnt, requested)
	if err != nil {
		return Mapping{}, &MapError{Requested: requested, Reason: "path outside its mount", Err: err}
	}
	if rel == "" {
		return Mapping{}, &MapError{Requested: requested, Reason: "path is a mount point, not a file"}
	}

	dest := filepath.Clean(requested)
	if m.destRoot != "" {
		dest = filepath.Join(m.destRoot, rel)
	}

	return Mapping{
		Source: filepath.Join(m.inst.Path, rel),
		Dest:   dest,
		Rel:    rel,
	}, nil
}

func (m *Mapper) mapRelative(requested string) (Mapping, error) {
	rel := filepath.Clean(requested)

	// A cleaned relative path escapes the parent only through leading ".."
	// elements. Strip them and substitute the inferred parent; never let a
	// request walk out to an unintended mount.
	if corrected := stripEscape(rel); corrected != rel {
		m.log.Info("correcting path to snapshot parent",
			"requested", requested, "corrected", corrected)
		rel = corrected
	}
	if rel == "." || rel == "" {
		return Mapping{}, &MapError{Requested: requested, Reason: "path resolves to the snapshot parent itself"}
	}

	destBase := m.snapParent
	if m.destRoot != "" {
		destBase = m.destRoot
	}

	return Mapping{
		Source: filepath.Join(m.inst.Path, rel),
		Dest:   filepath.Join(destBase, rel),
		Rel:    rel,
	}, nil
}

func stripEscape(rel string) string {
	parts := strings.Split(rel, string(filepath.Separator))
	i := 0
	for i < len(parts) && parts[i] == ".." {
		i++
	}
	return filepath.Join(parts[i:]...)
}
