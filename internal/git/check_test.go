package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCheckGit_Available(t *testing.T) {
	t.Parallel()
	// git must be available in CI and dev environments
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil (git should be in PATH)", err)
	}
}

func TestErrGitNotFound_Sentinel(t *testing.T) {
	t.Parallel()
	if !errors.Is(ErrGitNotFound, ErrGitNotFound) {
		t.Error("ErrGitNotFound should match itself with errors.Is")
	}
}

func TestGitArgs(t *testing.T) {
	t.Parallel()

	if got := gitArgs("", []string{"gc"}); !reflect.DeepEqual(got, []string{"gc"}) {
		t.Errorf("gitArgs(\"\", gc) = %v", got)
	}
	want := []string{"-C", "/src/nova", "pull", "origin", "master"}
	if got := gitArgs("/src/nova", []string{"pull", "origin", "master"}); !reflect.DeepEqual(got, want) {
		t.Errorf("gitArgs = %v, want %v", got, want)
	}
}

func TestClient_IsRepo_NotADirectory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	err := Client{}.IsRepo(ctx, filepath.Join(dir, "missing"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("IsRepo(missing) = %v, want does-not-exist error", err)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	err = Client{}.IsRepo(ctx, file)
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("IsRepo(file) = %v, want not-a-directory error", err)
	}
}
