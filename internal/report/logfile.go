package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raoulx24/snap-restore/internal/fs"
)

const logPrefix = "snap-restore-"
const logSuffix = ".log"
const logTimeLayout = "2006-01-02T15-04-05"

// OpenRunLog creates the per-run session log in dir; run output is tee'd
// into it as it happens, alongside the summary written at the end. Run logs
// share the summary naming scheme so pruning covers both.
func OpenRunLog(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	name := logPrefix + now.Format(logTimeLayout) + ".run" + logSuffix
	return os.Create(filepath.Join(dir, name))
}

// WriteSummary persists the summary to a timestamped log file in dir. The
// file is staged under a dot-prefixed temp name and renamed into place so a
// crashed run never leaves a half-written summary behind.
func (r *Reporter) WriteSummary(ctx context.Context, filesystem fs.FS, dir string) (string, error) {
	if filesystem == nil {
		filesystem = fs.New()
	}

	if err := filesystem.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}

	name := logPrefix + r.started.Format(logTimeLayout) + logSuffix
	tmp := filepath.Join(dir, "."+name+".tmp")
	final := filepath.Join(dir, name)

	if err := os.WriteFile(tmp, []byte(r.Summary()), 0o644); err != nil {
		return "", fmt.Errorf("writing summary log: %w", err)
	}

	if err := filesystem.Rename(ctx, tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalizing summary log: %w", err)
	}

	return final, nil
}
