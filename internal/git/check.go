package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsInsideRepoPath returns true if the given path is inside a git repository
func IsInsideRepoPath(ctx context.Context, path string) bool {
	err := runGit(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// checkRepoDir returns a descriptive error unless dir is an existing
// directory inside a git work tree.
func checkRepoDir(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("repository directory %s does not exist", dir)
		}
		return fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if !IsInsideRepoPath(ctx, dir) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%s is not a git repository", dir)
	}
	return nil
}
