// Package git provides the git operations freshen and compact need, via
// shell commands.
//
// All operations call the git CLI directly rather than using Go git
// libraries. This keeps user configuration (SSH keys, credential helpers,
// aliases, hooks) in effect for pulls and pushes.
//
// # Operations
//
// [Client] implements the version-control collaborator of the runner:
//
//   - [Client.IsRepo]: verify a directory is a git work tree
//   - [Client.CurrentRef], [Client.Checkout]: save and restore the checked-out branch
//   - [Client.Fetch], [Client.Pull], [Client.Push]: synchronize with remotes
//   - [Client.GC]: garbage-collect and repack
//
// Every operation returns everything git printed so the caller can log it,
// even when git fails.
package git
