// Package batch runs one operation over a list of repositories.
//
// Repositories are processed strictly one after another in resolved order.
// A failing repository is logged and recorded; the batch always moves on to
// the next one. Only cancellation of the context stops it early.
package batch

import (
	"context"
	"slices"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/freshen/internal/log"
	"github.com/raphi011/freshen/internal/repoconf"
	"github.com/raphi011/freshen/internal/runner"
)

// Runner executes one operation on one repository.
type Runner interface {
	Run(ctx context.Context, op runner.Operation, d repoconf.Descriptor) runner.Result
}

// Driver processes repositories sequentially and logs each outcome.
type Driver struct {
	runner Runner
	log    *log.Logger
	now    func() time.Time
}

// New creates a Driver logging through l.
func New(r Runner, l *log.Logger) *Driver {
	return &Driver{runner: r, log: l, now: time.Now}
}

// Run processes the repositories selected by filter (all when filter is
// empty) and returns the summary. Filter names that match no repository are
// warned about and recorded in Summary.Unknown.
func (d *Driver) Run(ctx context.Context, op runner.Operation, repos []repoconf.Descriptor, filter []string) Summary {
	s := Summary{
		Operation: op,
		RunID:     d.log.RunID(),
		Started:   d.now(),
		Results:   []runner.Result{},
	}

	d.log.Printf("%s repositories at %s\n", gerund(op), s.Started.Format(time.DateTime))

	selected, unknown := Select(repos, filter)
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Name
	}
	for _, name := range unknown {
		if hint := suggest(name, names); hint != "" {
			d.log.Warnf("unknown repository %q (did you mean %q?)", name, hint)
		} else {
			d.log.Warnf("unknown repository %q", name)
		}
	}
	s.Unknown = unknown

	for i, repo := range selected {
		if ctx.Err() != nil {
			s.Interrupted = true
			d.log.Warnf("interrupted, skipping %d remaining repositories", len(selected)-i)
			break
		}

		d.log.Printf("%s repository %s...\n", gerund(op), repo.Name)
		d.log.Debug("resolved repository",
			"name", repo.Name,
			"path", repo.Path,
			"pull", repo.PullRemote,
			"push", repo.PushRemote,
			"branch", repo.Branch,
			"install_mode", repo.InstallMode,
		)

		res := d.runner.Run(ctx, op, repo)
		d.record(res)
		s.Results = append(s.Results, res)
	}
	if ctx.Err() != nil {
		s.Interrupted = true
	}

	d.log.Printf("%s\n", s.CountLine())
	return s
}

func (d *Driver) record(res runner.Result) {
	for _, n := range res.Transcript {
		if n.Output {
			d.log.Transcript(n.Text)
		} else {
			d.log.Println(n.Text)
		}
	}
	for _, w := range res.Warnings {
		d.log.Warnf("%s: %s", res.Repo, w)
	}
	if res.Succeeded {
		d.log.Printf("%s: ok\n", res.Repo)
		return
	}
	d.log.Errorf("%s: failed at step %s: %s", res.Repo, res.StepFailed, res.Message)
}

// Select returns the repositories whose name is in filter, in repository
// order, and the filter names that matched nothing, in filter order.
// An empty filter selects every repository.
func Select(repos []repoconf.Descriptor, filter []string) (selected []repoconf.Descriptor, unknown []string) {
	if len(filter) == 0 {
		return repos, nil
	}

	want := make(map[string]bool, len(filter))
	for _, name := range filter {
		want[name] = true
	}
	known := make(map[string]bool, len(repos))
	for _, r := range repos {
		known[r.Name] = true
		if want[r.Name] {
			selected = append(selected, r)
		}
	}
	for _, name := range filter {
		if !known[name] && !slices.Contains(unknown, name) {
			unknown = append(unknown, name)
		}
	}
	return selected, unknown
}

// suggest returns the closest known name to name, or "".
func suggest(name string, known []string) string {
	matches := fuzzy.Find(name, known)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func gerund(op runner.Operation) string {
	switch op {
	case runner.Compact:
		return "Compacting"
	default:
		return "Freshening"
	}
}
