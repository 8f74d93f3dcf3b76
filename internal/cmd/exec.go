package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/raphi011/freshen/internal/log"
)

// RunContext executes a command and returns stderr in the error message if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command and returns stdout, with stderr in error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	err := run(ctx, dir, nil, &stdout, &stderr, name, args...)
	if err != nil {
		return nil, commandError(ctx, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// CombinedContext executes a command and returns everything it printed on
// stdout and stderr, interleaved. The output is returned even on failure so
// callers can log it; the error carries the trimmed stderr when present.
func CombinedContext(ctx context.Context, dir, name string, args ...string) (string, error) {
	return CombinedWithInput(ctx, dir, nil, name, args...)
}

// CombinedWithInput is CombinedContext with stdin connected to in.
// A nil in leaves stdin empty.
func CombinedWithInput(ctx context.Context, dir string, in io.Reader, name string, args ...string) (string, error) {
	var combined, stderr bytes.Buffer
	// exec copies stdout and stderr from separate goroutines.
	shared := &lockedWriter{w: &combined}
	err := run(ctx, dir, in, shared, io.MultiWriter(shared, &stderr), name, args...)
	if err != nil {
		return combined.String(), commandError(ctx, err, stderr.String())
	}
	return combined.String(), nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func run(ctx context.Context, dir string, in io.Reader, stdout, stderr io.Writer, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = in
	c.Stdout = stdout
	c.Stderr = stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))
	return err
}

// commandError prefers the context error, then stderr, then the exec error.
func commandError(ctx context.Context, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return err
}
