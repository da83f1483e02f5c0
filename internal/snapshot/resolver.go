package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/raoulx24/snap-restore/internal/logging"
	"github.com/raoulx24/snap-restore/internal/types"
)

// ErrNotFound reports that the requested snapshot id does not exist under
// the snapshot root.
var ErrNotFound = errors.New("snapshot not found")

// names like @2025.01.01, 2025-01-01, 2025-01-01T12-30-00, with optional
// leading @ and an optional time part.
var timestampName = regexp.MustCompile(
	`^@?\d{4}[-.]\d{2}[-.]\d{2}([T_]\d{2}[-.:]\d{2}([-.:]\d{2})?)?$`)

var timestampLayouts = []string{
	"2006.01.02",
	"2006-01-02",
	"2006-01-02T15-04-05",
	"2006-01-02T15:04:05",
	"2006.01.02_15.04.05",
}

// Resolver turns a snapshot root plus an optional id into a concrete
// Instance, prompting through the Chooser when the id is omitted.
type Resolver struct {
	log logging.Logger
}

func NewResolver(log logging.Logger) *Resolver {
	return &Resolver{log: log}
}

// Instances lists the immediate subdirectories of root as candidate
// instances, oldest first. When a subset of names matches the known
// timestamp patterns, only that subset is offered.
func (r *Resolver) Instances(root string) ([]Instance, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot root %s: %w", root, err)
	}

	var all, stamped []Instance
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		inst := Instance{
			ID:        e.Name(),
			Path:      filepath.Join(root, e.Name()),
			Timestamp: parseTimestamp(e.Name()),
		}
		all = append(all, inst)
		if timestampName.MatchString(e.Name()) {
			stamped = append(stamped, inst)
		}
	}

	list := all
	if len(stamped) > 0 {
		list = stamped
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.Before(list[j].Timestamp)
		}
		return list[i].ID < list[j].ID
	})

	return list, nil
}

// Resolve validates the snapshot root, then selects the instance named by
// id, or asks the Chooser when id is empty.
func (r *Resolver) Resolve(root, id string, ch Chooser) (Instance, error) {
	st, err := os.Stat(root)
	if err != nil {
		return Instance{}, types.NewConfigError("snapshot-dir",
			fmt.Sprintf("snapshot root %s does not exist", root), err)
	}
	if !st.IsDir() {
		return Instance{}, types.NewConfigError("snapshot-dir",
			fmt.Sprintf("snapshot root %s is not a directory", root), nil)
	}

	if id != "" {
		path := filepath.Join(root, id)
		if st, err := os.Stat(path); err == nil && st.IsDir() {
			r.log.Debug("snapshot resolved", "id", id, "path", path)
			return Instance{ID: id, Path: path, Timestamp: parseTimestamp(id)}, nil
		}
		return Instance{}, fmt.Errorf("%w: %s under %s", ErrNotFound, id, root)
	}

	list, err := r.Instances(root)
	if err != nil {
		return Instance{}, err
	}
	if len(list) == 0 {
		return Instance{}, fmt.Errorf("%w: no instances under %s", ErrNotFound, root)
	}
	if ch == nil {
		return Instance{}, types.NewConfigError("date",
			"snapshot id not given and no interactive selection available", nil)
	}

	options := make([]string, len(list))
	for i, inst := range list {
		options[i] = inst.ID
	}
	idx, err := ch.Choose("Select snapshot", options)
	if err != nil {
		return Instance{}, fmt.Errorf("selecting snapshot: %w", err)
	}
	if idx < 0 || idx >= len(list) {
		return Instance{}, fmt.Errorf("snapshot selection out of range: %d", idx)
	}

	r.log.Debug("snapshot selected", "id", list[idx].ID)
	return list[idx], nil
}

func parseTimestamp(name string) time.Time {
	core := name
	if len(core) > 0 && core[0] == '@' {
		core = core[1:]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, core); err == nil {
			return t
		}
	}
	return time.Time{}
}
