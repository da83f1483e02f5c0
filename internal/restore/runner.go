package restore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raoulx24/snap-restore/internal/fs"
	"github.com/raoulx24/snap-restore/internal/logging"
	"github.com/raoulx24/snap-restore/internal/mounts"
	"github.com/raoulx24/snap-restore/internal/report"
	"github.com/raoulx24/snap-restore/internal/snapshot"
	"github.com/raoulx24/snap-restore/internal/types"
)

// Options configure one restore run.
type Options struct {
	SearchPath string // search root inside the instance ("" = whole instance)
	DestRoot   string // re-root destinations ("" = original locations)
	Link       bool
	DryRun     bool
	Parallel   int
	MaxDepth   int
	MaxResults int
}

// Runner drives the per-request pipeline: map, locate, restore, report.
// Requests are processed sequentially; only the locator's deep-search stage
// runs concurrent work.
type Runner struct {
	fs      fs.FS
	log     logging.Logger
	inst    snapshot.Instance
	mapper  *Mapper
	locator *Locator
	exec    *Executor
	rep     *report.Reporter
	scratch string
	nsearch int
}

// NewRunner wires the pipeline and performs the once-per-run checks. The
// hard-link feasibility gate runs here, before any request is processed.
func NewRunner(inst snapshot.Instance, snapshotRoot string, tbl mounts.Table, opts Options,
	rep *report.Reporter, log logging.Logger, filesystem fs.FS) (*Runner, error) {
	if filesystem == nil {
		filesystem = fs.New()
	}

	searchRoot, err := resolveSearchRoot(inst, opts.SearchPath)
	if err != nil {
		return nil, err
	}

	mapper := NewMapper(inst, snapshotRoot, tbl, opts.DestRoot, log)

	if opts.Link {
		destRoot := opts.DestRoot
		if destRoot == "" {
			destRoot = mapper.SnapshotParent()
		}
		if err := CheckLinkFeasible(filesystem, inst.Path, destRoot); err != nil {
			return nil, err
		}
	}

	scratch, err := os.MkdirTemp("", "snap-restore-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	return &Runner{
		fs:      filesystem,
		log:     log,
		inst:    inst,
		mapper:  mapper,
		locator: NewLocator(filesystem, searchRoot, opts.MaxDepth, opts.MaxResults, opts.Parallel, log),
		exec:    NewExecutor(filesystem, log, opts.Link, opts.DryRun),
		rep:     rep,
		scratch: scratch,
	}, nil
}

// Close removes the per-run scratch directory. It runs on every exit path;
// main defers it before processing starts.
func (r *Runner) Close() {
	if r.scratch != "" {
		_ = r.fs.RemoveAll(r.scratch)
	}
}

// Run processes the requested paths in order. Per-request failures are
// tallied and never abort the batch; only context cancellation stops early.
func (r *Runner) Run(ctx context.Context, requested []string) error {
	for _, path := range requested {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.report(r.process(ctx, path))
	}
	return nil
}

// process resolves one request through the pipeline stages: map, locate,
// restore. The returned request carries the terminal outcome.
func (r *Runner) process(ctx context.Context, requested string) *Request {
	req := &Request{Requested: requested}

	mapping, err := r.mapper.Map(requested)
	if err != nil {
		return req.fail(err)
	}
	req.Dest = mapping.Dest

	if st, err := r.fs.Stat(mapping.Source); err == nil && !st.Mode.IsDir() {
		req.Source = mapping.Source
		req.FoundExact = true
	} else {
		found, err := r.locator.Locate(ctx, filepath.Base(mapping.Rel), filepath.Dir(mapping.Rel))
		if err != nil {
			return req.fail(fmt.Errorf("searching snapshot: %w", err))
		}
		if len(found) == 0 {
			req.Outcome = OutcomeNotFound
			return req
		}
		r.saveCandidates(requested, found)
		req.Source = found[0]
		req.Alternates = found[1:]
	}

	switch err := r.exec.Restore(ctx, req.Source, req.Dest); {
	case err == nil:
		req.Outcome = OutcomeRestored
	case errors.Is(err, ErrSkipped):
		req.Outcome = OutcomeSkipped
	default:
		return req.fail(err)
	}
	return req
}

// report emits the per-request lines: how the source was found, then the
// terminal outcome.
func (r *Runner) report(req *Request) {
	switch {
	case req.Source == "":
	case req.FoundExact:
		r.rep.ExactMatch(req.Requested)
	default:
		r.rep.AlternateMatch(req.Requested, req.Source, req.Alternates)
	}

	switch req.Outcome {
	case OutcomeRestored:
		r.rep.Restored(req.Requested, req.Dest)
	case OutcomeSkipped:
		r.rep.Skipped(req.Requested, req.Dest)
	case OutcomeNotFound:
		r.rep.NotFound(req.Requested)
	case OutcomeError:
		r.rep.Error(req.Requested, req.Err)
	}
}

// saveCandidates drops the full candidate list into the scratch directory so
// a long batch run can be inspected while it is still going. Best effort.
func (r *Runner) saveCandidates(requested string, found []string) {
	r.nsearch++
	name := fmt.Sprintf("found-%03d.list", r.nsearch)
	body := "# " + requested + "\n" + strings.Join(found, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(r.scratch, name), []byte(body), 0o644); err != nil {
		r.log.Debug("scratch write failed", "error", err)
	}
}

// resolveSearchRoot confines the configured search path to the snapshot
// instance. A relative path is joined onto the instance; an absolute one
// must already be inside it.
func resolveSearchRoot(inst snapshot.Instance, searchPath string) (string, error) {
	if searchPath == "" {
		return inst.Path, nil
	}

	root := searchPath
	if !filepath.IsAbs(root) {
		root = filepath.Join(inst.Path, root)
	}
	root = filepath.Clean(root)

	if root != inst.Path && !strings.HasPrefix(root, inst.Path+string(filepath.Separator)) {
		return "", types.NewConfigError("search-path",
			fmt.Sprintf("%s is outside snapshot instance %s", searchPath, inst.Path), nil)
	}

	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		return "", types.NewConfigError("search-path",
			fmt.Sprintf("%s is not a directory in the snapshot", searchPath), err)
	}

	return root, nil
}
