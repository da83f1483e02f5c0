package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/raoulx24/snap-restore/internal/cli"
	"github.com/raoulx24/snap-restore/internal/config"
	"github.com/raoulx24/snap-restore/internal/logging"
	"github.com/raoulx24/snap-restore/internal/mounts"
	"github.com/raoulx24/snap-restore/internal/report"
	"github.com/raoulx24/snap-restore/internal/restore"
	"github.com/raoulx24/snap-restore/internal/snapshot"
	"github.com/raoulx24/snap-restore/internal/types"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Graceful shutdown: SIGINT/SIGTERM cancel the context, the run loop
	// stops between requests, and deferred cleanup removes scratch state.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	name := filepath.Base(os.Args[0])
	args, err := cli.Parse(name, os.Args[1:], os.Stderr)
	if err != nil {
		return types.ExitUsage
	}
	if args.ShowHelp {
		cli.PrintHelp(os.Stdout, name)
		return types.ExitOK
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return types.ExitConfig
	}
	args.Apply(cfg)

	var logg logging.Logger = logging.StdLogger{Verbose: cfg.Logging.Verbose}
	if f, err := report.OpenRunLog(cfg.Logging.Dir, time.Now()); err != nil {
		logg.Error("session log unavailable", "error", err)
	} else {
		defer f.Close()
		logg = logging.NewTee(logg, f)
		logg.Debug("session log open", "path", f.Name())
	}

	var chooser snapshot.Chooser
	if cli.Interactive() {
		chooser = cli.NewStdinChooser(ctx)
	}

	table, err := mounts.Load()
	if err != nil {
		logg.Error("mount table unavailable", "error", err)
		table = nil
	}

	root := cfg.Snapshot.Dir
	if cfg.Snapshot.AutoDetect && root == "" {
		if table == nil {
			logg.Error("auto-detect needs the mount table")
			return types.ExitConfig
		}
		root, err = snapshot.DiscoverRoot(table, chooser)
		if err != nil {
			logg.Error("snapshot root selection failed", "error", err)
			return types.ExitConfig
		}
		if root == "" {
			logg.Error("no snapshot roots found on any mounted filesystem")
			return types.ExitConfig
		}
		logg.Info("using snapshot root", "root", root)
	}
	if root == "" {
		logg.Error("snapshot root not specified; use --snapshot-dir or --auto-detect")
		return types.ExitConfig
	}

	resolver := snapshot.NewResolver(logg)
	inst, err := resolver.Resolve(root, args.SnapshotID, chooser)
	if err != nil {
		logg.Error("resolving snapshot", "error", err)
		return types.ExitConfig
	}
	logg.Info("snapshot instance", "id", inst.ID, "path", inst.Path)

	paths := args.Paths
	if args.FileList != "" {
		list, err := restore.ReadFileList(args.FileList)
		if err != nil {
			logg.Error("reading file list", "error", err)
			return types.ExitConfig
		}
		paths = append(list, paths...)
	}
	if len(paths) == 0 {
		logg.Error("nothing to restore; give paths as arguments or via --file-list")
		return types.ExitConfig
	}

	rep := report.New(logg)
	runner, err := restore.NewRunner(inst, root, table, restore.Options{
		SearchPath: cfg.Snapshot.SearchPath,
		DestRoot:   cfg.Restore.DestRoot,
		Link:       cfg.Restore.Link,
		DryRun:     args.DryRun,
		Parallel:   cfg.Restore.Parallel,
		MaxDepth:   cfg.Restore.MaxDepth,
		MaxResults: cfg.Restore.MaxResults,
	}, rep, logg, nil)
	if err != nil {
		logg.Error("run setup failed", "error", err)
		return types.ExitConfig
	}
	defer runner.Close()

	if err := runner.Run(ctx, paths); err != nil {
		logg.Error("run interrupted", "error", err)
	}

	fmt.Print(rep.Summary())

	// Summary persistence still happens after an interrupt; use a fresh
	// context so the cancelled one cannot block the final write.
	if path, err := rep.WriteSummary(context.Background(), nil, cfg.Logging.Dir); err != nil {
		logg.Error("writing summary log", "error", err)
	} else {
		logg.Info("summary log written", "path", path)
		report.Prune(cfg.Logging.Dir, cfg.Logging.KeepRuns, logg)
	}

	return types.ExitOK
}
