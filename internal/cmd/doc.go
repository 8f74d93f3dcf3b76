// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// The helpers wrap [os/exec.Cmd] to capture stderr and include it in error
// messages, log each invocation through the context logger, and return
// [context.Canceled] or [context.DeadlineExceeded] when the context ends
// the command.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "status"); err != nil {
//	    return fmt.Errorf("git failed: %w", err)
//	}
//
//	// Keep everything the command printed, for the log:
//	out, err := cmd.CombinedContext(ctx, dir, "git", "pull", "origin", "master")
//
// # Design Notes
//
// freshen shells out to git and the installer rather than using Go
// libraries, so user configuration (SSH keys, credential helpers, aliases,
// sudo policy) applies unchanged.
package cmd
