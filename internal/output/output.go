// Package output provides context-aware output for freshen and compact.
// Stdout is used for primary data output (the summary table or JSON).
// Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
)

type ctxKey struct{}

// Printer writes primary output (summary table, JSON) to stdout.
type Printer struct {
	w io.Writer
}

// New creates a new Printer writing to the given writer as is.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewTerminal creates a Printer that downsamples ANSI styling to what w
// supports, as detected from w and environ. All styling is stripped when w
// is not a terminal; NO_COLOR drops colors but keeps bold.
func NewTerminal(w io.Writer, environ []string) *Printer {
	return &Printer{w: colorprofile.NewWriter(w, environ)}
}

// NoColor reports whether w, as seen by NewTerminal, renders no colors.
func NoColor(w io.Writer, environ []string) bool {
	return colorprofile.Detect(w, environ) < colorprofile.ANSI
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// JSON writes v as indented JSON followed by a newline.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
