package install

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/freshen/internal/repoconf"
)

func TestCommandLine(t *testing.T) {
	t.Parallel()
	s := &SetupPy{Command: []string{"sudo", "python", "setup.py"}}
	if got := s.CommandLine(repoconf.InstallDevelop); got != "sudo python setup.py develop" {
		t.Errorf("CommandLine = %q", got)
	}
}

func TestNew_CopiesCommand(t *testing.T) {
	t.Parallel()
	command := []string{"sh", "-c"}
	s := New(command)
	command[0] = "changed"
	if s.Command[0] != "sh" {
		t.Errorf("Command[0] = %q, want sh", s.Command[0])
	}
}

func TestInstall(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	// The mode lands in $0 of the inline script.
	s := &SetupPy{Command: []string{"sh", "-c", `pwd > ran; echo "mode $0"`}}
	out, err := s.Install(context.Background(), dir, repoconf.InstallInstall)
	if err != nil {
		t.Fatalf("Install = %v\n%s", err, out)
	}
	if !strings.Contains(out, "mode install") {
		t.Errorf("output = %q, want mode install", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "ran")); err != nil {
		t.Errorf("installer did not run in repository dir: %v", err)
	}
}

func TestInstall_Failure(t *testing.T) {
	t.Parallel()
	s := &SetupPy{Command: []string{"sh", "-c", `echo "error: no setup.py" >&2; exit 1`}}
	out, err := s.Install(context.Background(), t.TempDir(), repoconf.InstallDevelop)
	if err == nil {
		t.Fatal("Install = nil, want error")
	}
	if err.Error() != "error: no setup.py" {
		t.Errorf("error = %q", err)
	}
	if !strings.Contains(out, "no setup.py") {
		t.Errorf("output = %q, want captured stderr", out)
	}
}

func TestInstall_NoCommand(t *testing.T) {
	t.Parallel()
	if _, err := (&SetupPy{}).Install(context.Background(), t.TempDir(), repoconf.InstallInstall); err == nil {
		t.Error("Install without command = nil, want error")
	}
}
