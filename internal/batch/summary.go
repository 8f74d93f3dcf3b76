package batch

import (
	"fmt"
	"time"

	"github.com/raphi011/freshen/internal/runner"
)

// Exit codes of a run.
const (
	ExitOK     = 0
	ExitFailed = 1 // a repository failed, a filter was unknown, or the run was interrupted
	ExitConfig = 2 // fatal configuration or usage error
)

// Summary aggregates the outcome of one batch.
type Summary struct {
	Operation   runner.Operation `json:"operation"`
	RunID       string           `json:"run_id,omitempty"`
	Started     time.Time        `json:"started"`
	Results     []runner.Result  `json:"results"`
	Unknown     []string         `json:"unknown,omitempty"`
	Interrupted bool             `json:"interrupted,omitempty"`
}

// Succeeded returns the number of successful results.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded {
			n++
		}
	}
	return n
}

// Failed returns the results that did not succeed.
func (s Summary) Failed() []runner.Result {
	var failed []runner.Result
	for _, r := range s.Results {
		if !r.Succeeded {
			failed = append(failed, r)
		}
	}
	return failed
}

// CountLine is the closing log line of a run.
func (s Summary) CountLine() string {
	line := fmt.Sprintf("%d succeeded, %d failed", s.Succeeded(), len(s.Failed()))
	if n := len(s.Unknown); n > 0 {
		line += fmt.Sprintf(", %d unknown", n)
	}
	if s.Interrupted {
		line += " (interrupted)"
	}
	return line
}

// ExitCode is ExitOK only when every processed repository succeeded, every
// filter name matched, and the run was not interrupted.
func (s Summary) ExitCode() int {
	if len(s.Failed()) > 0 || len(s.Unknown) > 0 || s.Interrupted {
		return ExitFailed
	}
	return ExitOK
}
