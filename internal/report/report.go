// Package report accumulates per-request outcomes and emits the run summary.
package report

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/raoulx24/snap-restore/internal/logging"
)

// Counts holds the per-run outcome counters. FoundExact/FoundAlternate
// classify how a source was located; the remaining four are terminal states
// and sum to the number of processed requests.
type Counts struct {
	FoundExact     int
	FoundAlternate int
	NotFound       int
	Restored       int
	Skipped        int
	Errors         int
}

func (c Counts) Total() int {
	return c.NotFound + c.Restored + c.Skipped + c.Errors
}

func (c Counts) Found() int {
	return c.FoundExact + c.FoundAlternate
}

// Reporter prints each outcome as it happens and tallies it for the final
// summary. Increment methods are safe for concurrent use.
type Reporter struct {
	mu      sync.Mutex
	log     logging.Logger
	counts  Counts
	started time.Time
}

func New(log logging.Logger) *Reporter {
	return &Reporter{log: log, started: time.Now()}
}

func (r *Reporter) ExactMatch(requested string) {
	r.bump(func(c *Counts) { c.FoundExact++ })
	r.log.Info("found at original path", "path", requested)
}

func (r *Reporter) AlternateMatch(requested, source string, alternates []string) {
	r.bump(func(c *Counts) { c.FoundAlternate++ })
	r.log.Info("found at alternate path", "path", requested, "source", source)
	for _, alt := range alternates {
		r.log.Info("  further match (not restored)", "path", alt)
	}
}

func (r *Reporter) NotFound(requested string) {
	r.bump(func(c *Counts) { c.NotFound++ })
	r.log.Info("not found in snapshot", "path", requested)
}

func (r *Reporter) Restored(requested, dest string) {
	r.bump(func(c *Counts) { c.Restored++ })
	r.log.Info("restored", "path", requested, "dest", dest)
}

func (r *Reporter) Skipped(requested, dest string) {
	r.bump(func(c *Counts) { c.Skipped++ })
	r.log.Info("skipped, destination exists", "path", requested, "dest", dest)
}

func (r *Reporter) Error(requested string, err error) {
	r.bump(func(c *Counts) { c.Errors++ })
	r.log.Error("restore failed", "path", requested, "error", err)
}

func (r *Reporter) bump(fn func(*Counts)) {
	r.mu.Lock()
	fn(&r.counts)
	r.mu.Unlock()
}

func (r *Reporter) Counts() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts
}

// Summary renders the human-readable end-of-run report.
func (r *Reporter) Summary() string {
	c := r.Counts()

	var b strings.Builder
	fmt.Fprintf(&b, "restore summary (%s)\n", time.Since(r.started).Round(time.Millisecond))
	fmt.Fprintf(&b, "  requested:       %d\n", c.Total())
	fmt.Fprintf(&b, "  found exact:     %d\n", c.FoundExact)
	fmt.Fprintf(&b, "  found alternate: %d\n", c.FoundAlternate)
	fmt.Fprintf(&b, "  not found:       %d\n", c.NotFound)
	fmt.Fprintf(&b, "  restored:        %d\n", c.Restored)
	fmt.Fprintf(&b, "  skipped:         %d\n", c.Skipped)
	fmt.Fprintf(&b, "  errors:          %d\n", c.Errors)
	fmt.Fprintf(&b, "  found:    %s\n", percent(c.Found(), c.Total()))
	fmt.Fprintf(&b, "  restored: %s\n", percent(c.Restored, c.Total()))
	return b.String()
}

func percent(part, total int) string {
	if total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
