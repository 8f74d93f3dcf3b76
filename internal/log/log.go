// Package log provides the logger handle shared by a freshen/compact run.
//
// A Logger writes human-readable diagnostics to the terminal (stderr) and,
// once a file is attached, mirrors every record into an append-only log file
// through zerolog. The terminal side honors --verbose and --quiet; the file
// side always records everything, including debug records and captured
// command output.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Logger provides output and verbose command logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool

	file  zerolog.Logger
	runID string
}

// New creates a new logger writing terminal diagnostics to out.
// The file sink is disabled until WithFile is called.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{
		out:     out,
		verbose: verbose,
		quiet:   quiet,
		file:    zerolog.Nop(),
	}
}

// WithFile returns a copy of the logger that also appends every record to w.
// Records carry a run field so that several runs appended to one file can be
// told apart. An empty runID generates a fresh one.
func (l *Logger) WithFile(w io.Writer, runID string) *Logger {
	if runID == "" {
		runID = uuid.NewString()
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	c := *l
	c.runID = runID
	c.file = zerolog.New(cw).Level(zerolog.DebugLevel).With().Timestamp().Str("run", runID).Logger()
	return &c
}

// OpenFile opens path for appending, creating it and its parent directory
// when missing.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, false)
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.file.Info().Msg(strings.TrimRight(msg, "\n"))
	if l.quiet {
		return
	}
	fmt.Fprint(l.out, msg)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	msg := fmt.Sprintln(args...)
	l.file.Info().Msg(strings.TrimRight(msg, "\n"))
	if l.quiet {
		return
	}
	fmt.Fprint(l.out, msg)
}

// Warnf writes a warning. Warnings reach the terminal even in quiet mode.
func (l *Logger) Warnf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.file.Warn().Msg(msg)
	fmt.Fprintf(l.out, "Warning: %s\n", msg)
}

// Errorf writes an error. Errors reach the terminal even in quiet mode.
func (l *Logger) Errorf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.file.Error().Msg(msg)
	fmt.Fprintf(l.out, "Error: %s\n", msg)
}

// Transcript records captured command output. It always lands in the log
// file and is echoed to the terminal only in verbose mode.
func (l *Logger) Transcript(text string) {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	l.file.Info().Msg(text)
	if l.IsVerbose() {
		fmt.Fprintln(l.out, text)
	}
}

// Command logs an external command execution and returns a function that
// records its duration once it completes. Only prints when verbose.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	line := "$ " + name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	return func(d time.Duration) {
		l.file.Debug().Dur("took", d).Msg(line)
		if l.IsVerbose() {
			fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
		}
	}
}

// Debug writes a message with key-value pairs. The terminal copy is only
// printed in verbose mode. A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	ev := l.file.Debug()
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		ev = ev.Interface(key, keyvals[i+1])
		fmt.Fprintf(&b, " %s=%v", key, keyvals[i+1])
	}
	ev.Msg(msg)
	if l.IsVerbose() {
		fmt.Fprintln(l.out, b.String())
	}
}

// IsVerbose returns true if verbose terminal output is enabled.
// Quiet overrides verbose.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// RunID returns the id stamped on file records, or "" without a file.
func (l *Logger) RunID() string {
	return l.runID
}
