package snapshot

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/raoulx24/snap-restore/internal/mounts"
)

// Well-known snapshot root names checked under each mount point during
// auto-discovery.
var rootNames = []string{
	".snapshots",
	".zfs/snapshot",
	"snapshots",
	".snapshot",
}

// Discover scans all mounted filesystems for directories matching known
// snapshot-root layouts. The result is sorted so selection menus are stable.
func Discover(tbl mounts.Table) []string {
	var roots []string
	seen := map[string]bool{}

	for _, m := range tbl.Mounts() {
		for _, name := range rootNames {
			candidate := filepath.Join(m.Point, name)
			if seen[candidate] {
				continue
			}
			st, err := os.Stat(candidate)
			if err != nil || !st.IsDir() {
				continue
			}
			seen[candidate] = true
			roots = append(roots, candidate)
		}
	}

	sort.Strings(roots)
	return roots
}

// DiscoverRoot runs auto-discovery and asks the Chooser to pick one root.
// A single candidate is picked without prompting.
func DiscoverRoot(tbl mounts.Table, ch Chooser) (string, error) {
	roots := Discover(tbl)
	if len(roots) == 0 {
		return "", nil
	}
	if len(roots) == 1 {
		return roots[0], nil
	}
	if ch == nil {
		return roots[0], nil
	}

	idx, err := ch.Choose("Select snapshot root", roots)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(roots) {
		return roots[0], nil
	}
	return roots[idx], nil
}
