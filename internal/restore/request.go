// Package restore implements the search-and-restore engine: path mapping,
// staged file location, and non-destructive materialization.
package restore

// Outcome is the terminal state of one restore request.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeRestored
	OutcomeSkipped
	OutcomeNotFound
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRestored:
		return "restored"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeError:
		return "error"
	default:
		return "pending"
	}
}

// Request is one unit of work, mutated through the pipeline stages.
type Request struct {
	Requested  string   // path as given by the operator
	Source     string   // resolved source inside the snapshot
	Dest       string   // destination on the live filesystem
	Alternates []string // further matches, reported but never auto-selected
	FoundExact bool     // source came from the exact-path candidate
	Outcome    Outcome
	Err        error
}

func (r *Request) fail(err error) *Request {
	r.Outcome = OutcomeError
	r.Err = err
	return r
}
