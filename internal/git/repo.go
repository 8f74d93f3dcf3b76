package git

import (
	"context"
	"fmt"
	"strings"
)

// Client runs repository operations through the git CLI.
type Client struct {
	// ForcePush adds --force to pushes.
	ForcePush bool
}

// IsRepo returns an error describing why dir cannot be operated on, or nil.
func (Client) IsRepo(ctx context.Context, dir string) error {
	return checkRepoDir(ctx, dir)
}

// CurrentRef returns the checked-out branch name, or the commit hash when
// HEAD is detached.
func (Client) CurrentRef(ctx context.Context, dir string) (string, error) {
	if out, err := outputGit(ctx, dir, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil {
		if branch := strings.TrimSpace(string(out)); branch != "" {
			return branch, nil
		}
	} else if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	out, err := outputGit(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %v", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Checkout checks out ref (a branch name or commit).
func (Client) Checkout(ctx context.Context, dir, ref string) (string, error) {
	return combinedGit(ctx, dir, "checkout", ref)
}

// Fetch fetches from the default remote.
func (Client) Fetch(ctx context.Context, dir string) (string, error) {
	return combinedGit(ctx, dir, "fetch")
}

// Pull fetches branch from remote and integrates it into the current branch.
func (Client) Pull(ctx context.Context, dir, remote, branch string) (string, error) {
	return combinedGit(ctx, dir, "pull", remote, branch)
}

// Push pushes the local branch to remote.
func (c Client) Push(ctx context.Context, dir, remote, branch string) (string, error) {
	args := []string{"push"}
	if c.ForcePush {
		args = append(args, "--force")
	}
	args = append(args, remote, branch)
	return combinedGit(ctx, dir, args...)
}

// GC runs garbage collection on the repository.
func (Client) GC(ctx context.Context, dir string) (string, error) {
	return combinedGit(ctx, dir, "gc")
}
