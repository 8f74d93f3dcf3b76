package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/freshen/internal/repoconf"
)

// Operation is the kind of maintenance run against a repository.
type Operation string

// Operations.
const (
	Freshen Operation = "freshen"
	Compact Operation = "compact"
)

// Step identifies the sub-operation that failed.
type Step string

// Steps. StepNone means no step failed.
const (
	StepNone    Step = ""
	StepPull    Step = "pull"
	StepPush    Step = "push"
	StepInstall Step = "install"
	StepGC      Step = "gc"
)

// Note is one transcript entry: an intent line, or captured command output.
type Note struct {
	Text   string
	Output bool
}

// Result is the outcome of one operation on one repository.
type Result struct {
	Repo       string    `json:"repo"`
	Operation  Operation `json:"operation"`
	Succeeded  bool      `json:"succeeded"`
	StepFailed Step      `json:"step_failed,omitempty"`
	Message    string    `json:"message,omitempty"`
	Warnings   []string  `json:"warnings,omitempty"`
	Transcript []Note    `json:"-"`
}

func newResult(d repoconf.Descriptor, op Operation) Result {
	return Result{Repo: d.Name, Operation: op}
}

func (r *Result) note(format string, args ...any) {
	r.Transcript = append(r.Transcript, Note{Text: fmt.Sprintf(format, args...)})
}

func (r *Result) output(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	r.Transcript = append(r.Transcript, Note{Text: text, Output: true})
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) succeed() {
	r.Succeeded = true
	r.StepFailed = StepNone
	r.Message = ""
}

// fail records a failed step. The message is the captured output when there
// is any, since it usually carries more context than the error alone.
func (r *Result) fail(step Step, out string, err error) {
	r.Succeeded = false
	r.StepFailed = step
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.Message = "interrupted"
	case strings.TrimSpace(out) != "":
		r.Message = strings.TrimSpace(out)
	case err != nil:
		r.Message = err.Error()
	}
}
