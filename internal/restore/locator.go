package restore

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/raoulx24/snap-restore/internal/fs"
	"github.com/raoulx24/snap-restore/internal/logging"
)

// Locator finds a file by name inside the snapshot tree when the exact-path
// candidate is absent. Stages run in order and each short-circuits on the
// first non-empty result:
//
//  1. directory-affinity search: name match whose snapshot-relative directory
//     contains the requested parent fragment
//  2. shallow bounded-depth search
//  3. parallel per-subtree deep search, merged and capped
//  4. last-resort single search, at most one match
//
// Matches are sorted lexicographically so the authoritative first match does
// not depend on filesystem enumeration order.
type Locator struct {
	fs         fs.FS
	root       string // search root, always inside the snapshot instance
	maxDepth   int
	maxResults int
	parallel   int
	log        logging.Logger
}

func NewLocator(filesystem fs.FS, root string, maxDepth, maxResults, parallel int, log logging.Logger) *Locator {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if maxDepth <= 0 {
		maxDepth = 3
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	if parallel <= 0 {
		parallel = 4
	}
	return &Locator{
		fs:         filesystem,
		root:       root,
		maxDepth:   maxDepth,
		maxResults: maxResults,
		parallel:   parallel,
		log:        log,
	}
}

// Locate returns candidate paths for name, best match first. parentHint is
// the requested parent-directory fragment used by the affinity stage; it may
// be empty. An empty result slice means NotFound.
func (l *Locator) Locate(ctx context.Context, name, parentHint string) ([]string, error) {
	if hint := filepath.Clean(parentHint); hint != "." && hint != "/" && hint != "" {
		found, err := l.affinitySearch(ctx, name, hint)
		if err != nil || len(found) > 0 {
			l.log.Debug("affinity search", "name", name, "hits", len(found))
			return found, err
		}
	}

	found, err := l.shallowSearch(ctx, name)
	if err != nil || len(found) > 0 {
		l.log.Debug("shallow search", "name", name, "hits", len(found))
		return found, err
	}

	found, err = l.deepSearch(ctx, name)
	if err != nil || len(found) > 0 {
		l.log.Debug("deep search", "name", name, "hits", len(found))
		return found, err
	}

	return l.lastResortSearch(ctx, name)
}

// errStop aborts a walk once enough matches are collected.
var errStop = errors.New("stop walk")

// affinitySearch matches the hint against directories relative to the search
// root. The root's own path never participates, so a hint that happens to be
// a substring of it (".snapshots" contains "snap") cannot match everything.
func (l *Locator) affinitySearch(ctx context.Context, name, parentHint string) ([]string, error) {
	return l.walkCollect(ctx, l.root, l.maxResults, 0, func(path string, d iofs.DirEntry) bool {
		if d.IsDir() || d.Name() != name {
			return false
		}
		rel, err := filepath.Rel(l.root, filepath.Dir(path))
		if err != nil || rel == "." {
			return false
		}
		return strings.Contains(rel, parentHint)
	})
}

func (l *Locator) shallowSearch(ctx context.Context, name string) ([]string, error) {
	return l.walkCollect(ctx, l.root, l.maxResults, l.maxDepth, func(path string, d iofs.DirEntry) bool {
		if d.IsDir() {
			return false
		}
		return d.Name() == name && l.depthOf(path) <= l.maxDepth
	})
}

// deepSearch fans out one walker per top-level subdirectory of the search
// root. All walkers are joined before results are evaluated; the merged
// list is capped for responsiveness.
func (l *Locator) deepSearch(ctx context.Context, name string) ([]string, error) {
	entries, err := l.readSubdirs(l.root)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		merged []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallel)

	for _, sub := range entries {
		sub := sub
		g.Go(func() error {
			found, err := l.walkCollect(gctx, sub, l.maxResults, 0, func(path string, d iofs.DirEntry) bool {
				return !d.IsDir() && d.Name() == name
			})
			if err != nil {
				return err
			}
			mu.Lock()
			merged = append(merged, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(merged)
	if len(merged) > l.maxResults {
		merged = merged[:l.maxResults]
	}
	return merged, nil
}

func (l *Locator) lastResortSearch(ctx context.Context, name string) ([]string, error) {
	return l.walkCollect(ctx, l.root, 1, 0, func(path string, d iofs.DirEntry) bool {
		return !d.IsDir() && d.Name() == name
	})
}

// walkCollect walks root collecting paths accepted by match, up to limit.
// A positive depthLimit prunes directories whose contents would all lie
// beyond it, so a bounded stage never descends the whole tree. Results come
// back sorted; WalkDir already visits lexically, the sort keeps the contract
// explicit for merged callers.
func (l *Locator) walkCollect(ctx context.Context, root string, limit, depthLimit int, match func(string, iofs.DirEntry) bool) ([]string, error) {
	var found []string

	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtrees are skipped, not fatal to the search
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if depthLimit > 0 && d.IsDir() && path != root && l.depthOf(path) >= depthLimit {
			return iofs.SkipDir
		}
		if match(path, d) {
			found = append(found, path)
			if len(found) >= limit {
				return errStop
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func (l *Locator) depthOf(path string) int {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return l.maxDepth + 1
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func (l *Locator) readSubdirs(root string) ([]string, error) {
	entries, err := l.fs.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
