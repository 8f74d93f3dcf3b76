package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/raphi011/freshen/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestRunContext_Success(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Errorf("RunContext(echo hello) = %v, want nil", err)
	}
}

func TestRunContext_Failure(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "exit 1")
	if err == nil {
		t.Error("RunContext(exit 1) = nil, want error")
	}
}

func TestRunContext_StderrMessage(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "echo 'bad thing' >&2; exit 1")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}
	if err.Error() != "bad thing" {
		t.Errorf("RunContext error = %q, want %q", err.Error(), "bad thing")
	}
}

func TestRunContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	err := RunContext(ctx, "", "sleep", "10")
	if err != context.Canceled {
		t.Errorf("RunContext error = %v, want context.Canceled", err)
	}
}

func TestRunContext_Dir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out, err := OutputContext(logCtx(), dir, "pwd")
	if err != nil {
		t.Fatalf("OutputContext with dir = %v, want nil", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(out)), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("pwd = %q, want %q", out, dir)
	}
}

func TestOutputContext_Success(t *testing.T) {
	t.Parallel()
	out, err := OutputContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Fatalf("OutputContext(echo hello) = %v, want nil", err)
	}
	if got := string(out); got != "hello\n" {
		t.Errorf("OutputContext output = %q, want %q", got, "hello\n")
	}
}

func TestOutputContext_StderrMessage(t *testing.T) {
	t.Parallel()
	_, err := OutputContext(logCtx(), "", "sh", "-c", "echo 'error msg' >&2; exit 1")
	if err == nil {
		t.Fatal("OutputContext = nil, want error")
	}
	if err.Error() != "error msg" {
		t.Errorf("OutputContext error = %q, want %q", err.Error(), "error msg")
	}
}

func TestCombinedContext(t *testing.T) {
	t.Parallel()

	t.Run("captures both streams", func(t *testing.T) {
		t.Parallel()
		out, err := CombinedContext(logCtx(), "", "sh", "-c", "echo out; echo err >&2")
		if err != nil {
			t.Fatalf("CombinedContext = %v, want nil", err)
		}
		if !strings.Contains(out, "out\n") || !strings.Contains(out, "err\n") {
			t.Errorf("CombinedContext output = %q, want both streams", out)
		}
	})

	t.Run("keeps output on failure", func(t *testing.T) {
		t.Parallel()
		out, err := CombinedContext(logCtx(), "", "sh", "-c", "echo progress; echo 'fatal: nope' >&2; exit 128")
		if err == nil {
			t.Fatal("CombinedContext = nil, want error")
		}
		if err.Error() != "fatal: nope" {
			t.Errorf("error = %q, want %q", err.Error(), "fatal: nope")
		}
		if !strings.Contains(out, "progress") {
			t.Errorf("output = %q, want stdout kept", out)
		}
	})
}

func TestCombinedWithInput(t *testing.T) {
	t.Parallel()
	out, err := CombinedWithInput(logCtx(), "", strings.NewReader("secret\n"), "cat")
	if err != nil {
		t.Fatalf("CombinedWithInput = %v, want nil", err)
	}
	if out != "secret\n" {
		t.Errorf("output = %q, want %q", out, "secret\n")
	}
}

func TestCommandLogging(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	if err := RunContext(ctx, "", "echo", "hi"); err != nil {
		t.Fatalf("RunContext = %v", err)
	}
	if !strings.Contains(buf.String(), "$ echo hi") {
		t.Errorf("log = %q, want command line", buf.String())
	}
}
