package restore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raoulx24/snap-restore/internal/fs"
	"github.com/raoulx24/snap-restore/internal/logging"
	"github.com/raoulx24/snap-restore/internal/types"
)

// ErrSkipped marks a request whose destination already exists. Existing
// files are never deleted or overwritten.
var ErrSkipped = errors.New("destination already exists")

// Executor materializes a located source file at its destination, either by
// copy (preserving attributes) or by hard link. Dry-run performs every check
// and mutates nothing.
type Executor struct {
	fs     fs.FS
	log    logging.Logger
	link   bool
	dryRun bool
}

func NewExecutor(filesystem fs.FS, log logging.Logger, link, dryRun bool) *Executor {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Executor{fs: filesystem, log: log, link: link, dryRun: dryRun}
}

func (e *Executor) Restore(ctx context.Context, src, dst string) error {
	if st, err := e.fs.Stat(dst); err == nil {
		if st.Mode.IsDir() {
			return fmt.Errorf("destination %s is a directory", dst)
		}
		return fmt.Errorf("%w: %s", ErrSkipped, dst)
	}

	parent := filepath.Dir(dst)
	parentExists := true
	if _, err := e.fs.Stat(parent); err != nil {
		parentExists = false
		if e.dryRun {
			e.log.Info("dry-run: would create directory", "dir", parent)
		} else if err := e.fs.MkdirAll(parent); err != nil {
			return fmt.Errorf("creating destination directory %s: %w", parent, err)
		}
	}

	// Probe writability before touching anything. A parent created above is
	// ours and writable; a pre-existing one may not be.
	if parentExists {
		if err := e.fs.Writable(parent); err != nil {
			return fmt.Errorf("destination directory %s not writable: %w", parent, err)
		}
	}

	if e.dryRun {
		e.log.Info("dry-run: would restore", "src", src, "dst", dst, "mode", e.mode())
		return nil
	}

	if e.link {
		if err := e.fs.Link(ctx, src, dst); err != nil {
			return fmt.Errorf("linking %s: %w", dst, err)
		}
		return nil
	}

	if err := e.fs.CopyFile(ctx, src, dst); err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return nil
}

func (e *Executor) mode() string {
	if e.link {
		return "link"
	}
	return "copy"
}

// CheckLinkFeasible verifies, once per run, that the snapshot and the
// destination root live on the same filesystem. A device id of zero means
// the platform cannot tell; the check is skipped rather than failed.
func CheckLinkFeasible(filesystem fs.FS, snapshotPath, destRoot string) error {
	if filesystem == nil {
		filesystem = fs.New()
	}

	srcInfo, err := filesystem.Stat(snapshotPath)
	if err != nil {
		return types.NewConfigError("snapshot-dir", "cannot stat snapshot", err)
	}

	dst := nearestExisting(destRoot)
	dstInfo, err := filesystem.Stat(dst)
	if err != nil {
		return types.NewConfigError("mount", "cannot stat destination root", err)
	}

	if srcInfo.Dev == 0 || dstInfo.Dev == 0 {
		return nil
	}
	if srcInfo.Dev != dstInfo.Dev {
		return types.NewConfigError("link",
			fmt.Sprintf("snapshot %s and destination %s are on different filesystems; hard links cannot cross filesystems", snapshotPath, destRoot), nil)
	}
	return nil
}

// nearestExisting walks up from path to the closest existing ancestor.
func nearestExisting(path string) string {
	p := filepath.Clean(path)
	for {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}
