package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raoulx24/snap-restore/internal/logging"
)

func TestCounts(t *testing.T) {
	r := New(logging.Nop{})

	r.ExactMatch("a")
	r.Restored("a", "/live/a")
	r.AlternateMatch("b", "/snap/x/b", []string{"/snap/y/b"})
	r.Restored("b", "/live/b")
	r.NotFound("c")
	r.ExactMatch("d")
	r.Skipped("d", "/live/d")
	r.Error("e", errors.New("mkdir failed"))

	c := r.Counts()
	want := Counts{FoundExact: 2, FoundAlternate: 1, NotFound: 1, Restored: 2, Skipped: 1, Errors: 1}
	if c != want {
		t.Fatalf("counts = %+v, want %+v", c, want)
	}
	if c.Total() != 5 {
		t.Errorf("Total = %d, want 5", c.Total())
	}
	if c.Found() != 3 {
		t.Errorf("Found = %d, want 3", c.Found())
	}
}

func TestSummaryPercentages(t *testing.T) {
	r := New(logging.Nop{})
	r.ExactMatch("a")
	r.Restored("a", "/live/a")
	r.NotFound("b")

	s := r.Summary()
	if !strings.Contains(s, "restored: 50.0%") {
		t.Errorf("summary missing restored percentage:\n%s", s)
	}
	if !strings.Contains(s, "found:    50.0%") {
		t.Errorf("summary missing found percentage:\n%s", s)
	}
}

func TestSummaryEmptyRunHasNoDivisionByZero(t *testing.T) {
	s := New(logging.Nop{}).Summary()
	if !strings.Contains(s, "n/a") {
		t.Errorf("empty-run summary should show n/a percentages:\n%s", s)
	}
}

func TestWriteSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	r := New(logging.Nop{})
	r.ExactMatch("a")
	r.Restored("a", "/live/a")

	path, err := r.WriteSummary(context.Background(), nil, dir)
	if err != nil {
		t.Fatalf("WriteSummary error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("summary log unreadable: %v", err)
	}
	if string(data) != r.Summary() {
		t.Error("persisted summary differs from terminal summary")
	}

	// no temp staging files left behind
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("staging file left behind: %s", e.Name())
		}
	}
}

func TestOpenRunLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC)

	f, err := OpenRunLog(dir, now)
	if err != nil {
		t.Fatalf("OpenRunLog error: %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString("INFO: restored path=a\n"); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "snap-restore-2025-01-02T10-30-00.run.log")
	if f.Name() != want {
		t.Errorf("run log = %q, want %q", f.Name(), want)
	}

	// run logs age out with summary logs
	Prune(dir, 0, logging.Nop{}) // disabled, file stays
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("run log missing after disabled prune: %v", err)
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"snap-restore-2025-01-01T10-00-00.log",
		"snap-restore-2025-01-02T10-00-00.log",
		"snap-restore-2025-01-02T10-00-00.run.log",
		"snap-restore-2025-01-03T10-00-00.log",
		"snap-restore-2025-01-04T10-00-00.log",
		"unrelated.txt",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	Prune(dir, 2, logging.Nop{})

	entries, _ := os.ReadDir(dir)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	if len(left) != 3 {
		t.Fatalf("remaining = %v, want 2 newest logs + unrelated file", left)
	}
	for _, keep := range []string{
		"snap-restore-2025-01-03T10-00-00.log",
		"snap-restore-2025-01-04T10-00-00.log",
		"unrelated.txt",
	} {
		if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
			t.Errorf("%s should have been kept", keep)
		}
	}
}
