package restore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raoulx24/snap-restore/internal/logging"
	"github.com/raoulx24/snap-restore/internal/types"
)

func hashFile(t *testing.T, path string) [32]byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return sha256.Sum256(data)
}

func TestExecutorCopyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snap", "report.txt")
	dst := filepath.Join(dir, "live", "report.txt")
	buildTree(t, dir, "snap/report.txt")

	e := NewExecutor(nil, logging.Nop{}, false, false)
	if err := e.Restore(context.Background(), src, dst); err != nil {
		t.Fatalf("Restore error: %v", err)
	}

	if hashFile(t, src) != hashFile(t, dst) {
		t.Error("destination content differs from snapshot source")
	}

	// copy mode must not share an inode
	si, _ := os.Stat(src)
	di, _ := os.Stat(dst)
	if os.SameFile(si, di) {
		t.Error("copy mode produced a hard link")
	}
}

func TestExecutorLinkSharesInode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snap", "report.txt")
	dst := filepath.Join(dir, "live", "report.txt")
	buildTree(t, dir, "snap/report.txt")

	e := NewExecutor(nil, logging.Nop{}, true, false)
	if err := e.Restore(context.Background(), src, dst); err != nil {
		t.Fatalf("Restore error: %v", err)
	}

	si, _ := os.Stat(src)
	di, _ := os.Stat(dst)
	if !os.SameFile(si, di) {
		t.Error("link mode did not produce a hard link")
	}
}

func TestExecutorNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snap", "report.txt")
	dst := filepath.Join(dir, "live", "report.txt")
	buildTree(t, dir, "snap/report.txt")

	existing := []byte("operator edits, do not lose\n")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, existing, 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewExecutor(nil, logging.Nop{}, false, false)
	err := e.Restore(context.Background(), src, dst)
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("Restore = %v, want ErrSkipped", err)
	}

	got, _ := os.ReadFile(dst)
	if !bytes.Equal(got, existing) {
		t.Error("existing destination was modified")
	}
}

func TestExecutorCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snap", "report.txt")
	dst := filepath.Join(dir, "live", "a", "b", "c", "report.txt")
	buildTree(t, dir, "snap/report.txt")

	e := NewExecutor(nil, logging.Nop{}, false, false)
	if err := e.Restore(context.Background(), src, dst); err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestExecutorDryRunMutatesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snap", "report.txt")
	dst := filepath.Join(dir, "live", "deep", "report.txt")
	buildTree(t, dir, "snap/report.txt")

	e := NewExecutor(nil, logging.Nop{}, false, true)
	if err := e.Restore(context.Background(), src, dst); err != nil {
		t.Fatalf("dry-run Restore error: %v", err)
	}

	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("dry run created the destination file")
	}
	if _, err := os.Stat(filepath.Dir(dst)); !os.IsNotExist(err) {
		t.Error("dry run created the destination directory")
	}
}

func TestExecutorDryRunStillReportsSkip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snap", "report.txt")
	dst := filepath.Join(dir, "report.txt")
	buildTree(t, dir, "snap/report.txt", "report.txt")

	e := NewExecutor(nil, logging.Nop{}, false, true)
	if err := e.Restore(context.Background(), src, dst); !errors.Is(err, ErrSkipped) {
		t.Fatalf("dry-run Restore = %v, want ErrSkipped", err)
	}
}

func TestCheckLinkFeasibleSameFilesystem(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "snap/x")

	if err := CheckLinkFeasible(nil, filepath.Join(dir, "snap"), dir); err != nil {
		t.Fatalf("same-filesystem check failed: %v", err)
	}
}

func TestCheckLinkFeasibleCrossFilesystem(t *testing.T) {
	dir := t.TempDir()
	buildTree(t, dir, "snap/x", "live/x")

	f := &devFS{dev: map[string]uint64{
		filepath.Join(dir, "snap"): 11,
		filepath.Join(dir, "live"): 22,
	}}

	err := CheckLinkFeasible(f, filepath.Join(dir, "snap"), filepath.Join(dir, "live"))
	if err == nil {
		t.Fatal("expected cross-filesystem link to be rejected")
	}
	if !types.IsConfigError(err) {
		t.Errorf("error = %v, want ConfigError", err)
	}
}
