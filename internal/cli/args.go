// Package cli parses the command line and binds interactive prompts.
package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/raoulx24/snap-restore/internal/config"
)

// Args holds the parsed command-line arguments. Positional arguments are
// requested restore paths.
type Args struct {
	SnapshotDir string
	SnapshotID  string
	Mount       string
	SearchPath  string
	FileList    string
	AutoDetect  bool
	Parallel    int
	MaxDepth    int
	Link        bool
	DryRun      bool
	ConfigPath  string
	LogDir      string
	Verbose     bool
	ShowHelp    bool
	Paths       []string

	set map[string]bool
}

// Parse parses args (without the program name) against a fresh FlagSet so
// tests can call it repeatedly.
func Parse(name string, argv []string, errOut io.Writer) (*Args, error) {
	args := &Args{set: map[string]bool{}}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { printHelp(errOut, name) }

	fs.StringVar(&args.SnapshotDir, "snapshot-dir", "", "Directory holding the snapshot instances")
	fs.StringVar(&args.SnapshotDir, "s", "", "Directory holding the snapshot instances (shorthand)")

	fs.StringVar(&args.SnapshotID, "date", "", "Snapshot identifier (subdirectory name, e.g. @2025.01.01)")
	fs.StringVar(&args.SnapshotID, "d", "", "Snapshot identifier (shorthand)")

	fs.StringVar(&args.Mount, "mount", "", "Re-root restored files under this directory instead of their original paths")
	fs.StringVar(&args.Mount, "m", "", "Destination root override (shorthand)")

	fs.StringVar(&args.SearchPath, "search-path", "", "Search root inside the snapshot instance")
	fs.StringVar(&args.SearchPath, "S", "", "Search root inside the snapshot instance (shorthand)")

	fs.StringVar(&args.FileList, "file-list", "", "Batch file with one path per line (# comments and blank lines ignored)")
	fs.StringVar(&args.FileList, "f", "", "Batch file (shorthand)")

	fs.BoolVar(&args.AutoDetect, "auto-detect", false, "Scan mounted filesystems for snapshot roots")
	fs.BoolVar(&args.AutoDetect, "a", false, "Scan for snapshot roots (shorthand)")

	fs.IntVar(&args.Parallel, "parallel", 0, "Concurrent deep-search walkers")
	fs.IntVar(&args.Parallel, "p", 0, "Concurrent deep-search walkers (shorthand)")

	fs.IntVar(&args.MaxDepth, "max-depth", 0, "Shallow search depth limit")
	fs.IntVar(&args.MaxDepth, "D", 0, "Shallow search depth limit (shorthand)")

	fs.BoolVar(&args.Link, "link", false, "Restore by hard link instead of copy (same filesystem only)")
	fs.BoolVar(&args.Link, "l", false, "Restore by hard link (shorthand)")

	fs.BoolVar(&args.DryRun, "dry-run", false, "Perform every check and report actions without touching the filesystem")
	fs.BoolVar(&args.DryRun, "r", false, "Dry run (shorthand)")

	fs.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&args.ConfigPath, "c", "", "Path to configuration file (shorthand)")

	fs.StringVar(&args.LogDir, "log-dir", "", "Directory for run summary logs")
	fs.StringVar(&args.LogDir, "L", "", "Directory for run summary logs (shorthand)")

	fs.BoolVar(&args.Verbose, "verbose", false, "Enable debug output")
	fs.BoolVar(&args.Verbose, "v", false, "Enable debug output (shorthand)")

	fs.BoolVar(&args.ShowHelp, "help", false, "Show help message")
	fs.BoolVar(&args.ShowHelp, "h", false, "Show help message (shorthand)")

	if err := fs.Parse(argv); err != nil {
		return nil, fmt.Errorf("parsing arguments: %w", err)
	}

	fs.Visit(func(f *flag.Flag) { args.set[f.Name] = true })
	args.Paths = fs.Args()

	return args, nil
}

func (a *Args) isSet(names ...string) bool {
	for _, n := range names {
		if a.set[n] {
			return true
		}
	}
	return false
}

// Apply overlays flag values onto the loaded configuration. Flags win over
// the config file; unset flags leave the file values alone.
func (a *Args) Apply(cfg *config.Config) {
	if a.isSet("snapshot-dir", "s") {
		cfg.Snapshot.Dir = a.SnapshotDir
	}
	if a.isSet("search-path", "S") {
		cfg.Snapshot.SearchPath = a.SearchPath
	}
	if a.isSet("auto-detect", "a") {
		cfg.Snapshot.AutoDetect = a.AutoDetect
	}
	if a.isSet("mount", "m") {
		cfg.Restore.DestRoot = a.Mount
	}
	if a.isSet("link", "l") {
		cfg.Restore.Link = a.Link
	}
	if a.isSet("parallel", "p") && a.Parallel > 0 {
		cfg.Restore.Parallel = a.Parallel
	}
	if a.isSet("max-depth", "D") && a.MaxDepth > 0 {
		cfg.Restore.MaxDepth = a.MaxDepth
	}
	if a.isSet("log-dir", "L") {
		cfg.Logging.Dir = a.LogDir
	}
	if a.isSet("verbose", "v") {
		cfg.Logging.Verbose = a.Verbose
	}
}
