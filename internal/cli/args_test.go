package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/raoulx24/snap-restore/internal/config"
)

func TestParseDefaults(t *testing.T) {
	args, err := Parse("snap-restore", nil, io.Discard)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if args.SnapshotDir != "" || args.SnapshotID != "" || args.FileList != "" {
		t.Error("string flags should default to empty")
	}
	if args.AutoDetect || args.Link || args.DryRun || args.Verbose || args.ShowHelp {
		t.Error("boolean flags should default to false")
	}
	if len(args.Paths) != 0 {
		t.Errorf("Paths = %v, want none", args.Paths)
	}
}

func TestParseLongAndShortForms(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"long", []string{
			"--snapshot-dir", "/data/.snapshots",
			"--date", "@2025.01.01",
			"--file-list", "restore.list",
			"--max-depth", "2",
			"--dry-run",
			"docs/report.txt",
		}},
		{"short", []string{
			"-s", "/data/.snapshots",
			"-d", "@2025.01.01",
			"-f", "restore.list",
			"-D", "2",
			"-r",
			"docs/report.txt",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Parse("snap-restore", tt.argv, io.Discard)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if args.SnapshotDir != "/data/.snapshots" {
				t.Errorf("SnapshotDir = %q", args.SnapshotDir)
			}
			if args.SnapshotID != "@2025.01.01" {
				t.Errorf("SnapshotID = %q", args.SnapshotID)
			}
			if args.FileList != "restore.list" {
				t.Errorf("FileList = %q", args.FileList)
			}
			if args.MaxDepth != 2 {
				t.Errorf("MaxDepth = %d", args.MaxDepth)
			}
			if !args.DryRun {
				t.Error("DryRun not set")
			}
			if !reflect.DeepEqual(args.Paths, []string{"docs/report.txt"}) {
				t.Errorf("Paths = %v", args.Paths)
			}
		})
	}
}

func TestParseUnknownFlag(t *testing.T) {
	if _, err := Parse("snap-restore", []string{"--bogus"}, io.Discard); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestApplyPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.Dir = "/from/config"
	cfg.Restore.Parallel = 8

	args, err := Parse("snap-restore", []string{"-s", "/from/flag"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	args.Apply(cfg)

	if cfg.Snapshot.Dir != "/from/flag" {
		t.Errorf("Snapshot.Dir = %q, flags must win over the config file", cfg.Snapshot.Dir)
	}
	if cfg.Restore.Parallel != 8 {
		t.Errorf("Parallel = %d, unset flags must not clobber config values", cfg.Restore.Parallel)
	}
}
