package report

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raoulx24/snap-restore/internal/logging"
)

// Prune keeps only the newest keep log files in dir, session and summary
// logs alike. Timestamped names sort chronologically, so lexicographic order
// is enough. keep <= 0 disables pruning.
func Prune(dir string, keep int, log logging.Logger) {
	if keep <= 0 {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug("log prune: cannot read dir", "dir", dir, "error", err)
		return
	}

	var logs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, logPrefix) && strings.HasSuffix(name, logSuffix) {
			logs = append(logs, name)
		}
	}

	if len(logs) <= keep {
		return
	}

	// Sort newest first, drop the tail.
	sort.Sort(sort.Reverse(sort.StringSlice(logs)))
	for _, name := range logs[keep:] {
		full := filepath.Join(dir, name)
		if err := os.Remove(full); err != nil {
			log.Error("log prune: remove failed", "path", full, "error", err)
			continue
		}
		log.Debug("log prune: removed", "path", full)
	}
}
