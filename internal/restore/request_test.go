package restore

import (
	"errors"
	"testing"
)

func TestOutcomeString(t *testing.T) {
	cases := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomePending, "pending"},
		{OutcomeRestored, "restored"},
		{OutcomeSkipped, "skipped"},
		{OutcomeNotFound, "not-found"},
		{OutcomeError, "error"},
	}
	for _, c := range cases {
		if got := c.outcome.String(); got != c.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", c.outcome, got, c.want)
		}
	}
}

func TestRequestFail(t *testing.T) {
	boom := errors.New("boom")
	req := &Request{Requested: "a.txt"}
	if got := req.fail(boom); got != req {
		t.Fatal("fail must return the same request")
	}
	if req.Outcome != OutcomeError || !errors.Is(req.Err, boom) {
		t.Errorf("failed request = %+v", req)
	}
}
