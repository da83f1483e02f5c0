package fs

import (
	"context"
	"os"
)

// wraps os.Rename with retry logic.
// Used to finalize the per-run summary log atomically.

func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}
