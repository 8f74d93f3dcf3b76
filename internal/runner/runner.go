// Package runner executes one operation (freshen or compact) against one
// repository.
//
// The runner never returns an error: every failure of an external command is
// captured in the returned [Result], so one repository's failure cannot abort
// a batch. It writes nothing itself; the transcript travels on the result.
package runner

import (
	"context"
	"fmt"

	"github.com/raphi011/freshen/internal/repoconf"
)

// VersionControl is the version-control tool as the runner sees it.
// Methods that change repository state return everything the tool printed,
// also on failure.
type VersionControl interface {
	IsRepo(ctx context.Context, dir string) error
	CurrentRef(ctx context.Context, dir string) (string, error)
	Checkout(ctx context.Context, dir, ref string) (string, error)
	Fetch(ctx context.Context, dir string) (string, error)
	Pull(ctx context.Context, dir, remote, branch string) (string, error)
	Push(ctx context.Context, dir, remote, branch string) (string, error)
	GC(ctx context.Context, dir string) (string, error)
}

// Installer reinstalls a repository in the given mode.
type Installer interface {
	Install(ctx context.Context, dir string, mode repoconf.InstallMode) (string, error)
	CommandLine(mode repoconf.InstallMode) string
}

// Options tune a Runner.
type Options struct {
	// PreFetch runs a bare fetch of the default remote before each pull.
	PreFetch bool
}

// Runner drives the external tools for one repository at a time.
type Runner struct {
	vcs       VersionControl
	installer Installer
	opts      Options
}

// New creates a Runner.
func New(vcs VersionControl, installer Installer, opts Options) *Runner {
	return &Runner{vcs: vcs, installer: installer, opts: opts}
}

// Run dispatches to Freshen or Compact.
func (r *Runner) Run(ctx context.Context, op Operation, d repoconf.Descriptor) Result {
	switch op {
	case Compact:
		return r.Compact(ctx, d)
	case Freshen:
		return r.Freshen(ctx, d)
	default:
		res := newResult(d, op)
		res.fail(StepNone, "", fmt.Errorf("unknown operation %q", op))
		return res
	}
}

// Freshen pulls the configured branch, then pushes and reinstalls when
// configured. Each step runs only if the previous one succeeded. When the
// repository is on another branch, the configured branch is checked out
// first and the original one restored afterwards.
func (r *Runner) Freshen(ctx context.Context, d repoconf.Descriptor) (res Result) {
	res = newResult(d, Freshen)

	if err := r.vcs.IsRepo(ctx, d.Path); err != nil {
		res.fail(StepPull, "", err)
		return res
	}

	saved, err := r.vcs.CurrentRef(ctx, d.Path)
	if err != nil {
		res.fail(StepPull, "", err)
		return res
	}

	if saved != d.Branch {
		res.note("Current branch %s; switching to %s", saved, d.Branch)
		out, err := r.vcs.Checkout(ctx, d.Path, d.Branch)
		res.output(out)
		if err != nil {
			res.fail(StepPull, out, fmt.Errorf("switch to branch %s: %w", d.Branch, err))
			return res
		}
		defer func() {
			res.note("Returning to original branch %s", saved)
			out, err := r.vcs.Checkout(ctx, d.Path, saved)
			res.output(out)
			if err != nil {
				res.warn("could not return to branch %s: %v", saved, err)
			}
		}()
	}

	if !r.pull(ctx, d, &res) {
		return res
	}
	if !r.push(ctx, d, &res) {
		return res
	}
	if !r.install(ctx, d, &res) {
		return res
	}

	res.succeed()
	return res
}

func (r *Runner) pull(ctx context.Context, d repoconf.Descriptor, res *Result) bool {
	if r.opts.PreFetch {
		res.note("Fetching changes from the default remote")
		out, err := r.vcs.Fetch(ctx, d.Path)
		res.output(out)
		if err != nil {
			res.fail(StepPull, out, err)
			return false
		}
	}

	res.note("Pulling in changes from %s", d.PullRemote)
	out, err := r.vcs.Pull(ctx, d.Path, d.PullRemote, d.Branch)
	res.output(out)
	if err != nil {
		res.fail(StepPull, out, err)
		return false
	}
	return true
}

func (r *Runner) push(ctx context.Context, d repoconf.Descriptor, res *Result) bool {
	if !d.Pushes() {
		return true
	}

	res.note("Pushing out changes to %s", d.PushRemote)
	out, err := r.vcs.Push(ctx, d.Path, d.PushRemote, d.Branch)
	res.output(out)
	if err != nil {
		res.fail(StepPush, out, err)
		return false
	}
	return true
}

func (r *Runner) install(ctx context.Context, d repoconf.Descriptor, res *Result) bool {
	if !d.Installs() {
		return true
	}

	res.note("Installing repository %s with command %q", d.Name, r.installer.CommandLine(d.InstallMode))
	out, err := r.installer.Install(ctx, d.Path, d.InstallMode)
	res.output(out)
	if err != nil {
		res.fail(StepInstall, out, err)
		return false
	}
	return true
}

// Compact garbage-collects the repository. It never pulls, pushes, or
// installs.
func (r *Runner) Compact(ctx context.Context, d repoconf.Descriptor) Result {
	res := newResult(d, Compact)

	if err := r.vcs.IsRepo(ctx, d.Path); err != nil {
		res.fail(StepGC, "", err)
		return res
	}

	out, err := r.vcs.GC(ctx, d.Path)
	res.output(out)
	if err != nil {
		res.fail(StepGC, out, err)
		return res
	}

	res.succeed()
	return res
}
