// Package install reinstalls a repository after it has been freshened.
//
// The installer is an external command, by default "sudo python setup.py",
// with the install mode ("install" or "develop") appended. It runs in the
// repository directory.
package install

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/freshen/internal/cmd"
	"github.com/raphi011/freshen/internal/repoconf"
)

// SetupPy runs the configured installer command.
type SetupPy struct {
	// Command is the argv prefix; the install mode is appended.
	Command []string
	// Stdin is handed to the installer so sudo can prompt for a password.
	// Nil means no input.
	Stdin io.Reader
}

// New returns an installer running command. Stdin is attached only when the
// process's own stdin is a terminal.
func New(command []string) *SetupPy {
	s := &SetupPy{Command: append([]string(nil), command...)}
	if isInteractive() {
		s.Stdin = os.Stdin
	}
	return s
}

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// CommandLine returns the command that Install runs for mode, for display.
func (s *SetupPy) CommandLine(mode repoconf.InstallMode) string {
	return strings.Join(s.argv(mode), " ")
}

func (s *SetupPy) argv(mode repoconf.InstallMode) []string {
	return append(append([]string(nil), s.Command...), string(mode))
}

// Install runs the installer for mode in dir and returns its combined output.
func (s *SetupPy) Install(ctx context.Context, dir string, mode repoconf.InstallMode) (string, error) {
	if len(s.Command) == 0 {
		return "", errors.New("no install command configured")
	}
	argv := s.argv(mode)
	return cmd.CombinedWithInput(ctx, dir, s.Stdin, argv[0], argv[1:]...)
}
