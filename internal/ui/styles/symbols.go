package styles

// Status symbols
const (
	SymbolOK      = "✓"
	SymbolFailed  = "✗"
	SymbolUnknown = "?"
)

// FormatStatus returns the styled status cell for a repository result.
func FormatStatus(succeeded bool) string {
	if succeeded {
		return SuccessStyle.Render(SymbolOK + " ok")
	}
	return ErrorStyle.Render(SymbolFailed + " failed")
}

// FormatUnknown returns the styled status cell for a filter name that
// matched no repository.
func FormatUnknown() string {
	return WarningStyle.Render(SymbolUnknown + " unknown")
}

// FormatStep returns the styled failed-step cell, or "" when no step failed.
func FormatStep(step string) string {
	if step == "" {
		return ""
	}
	return ErrorStyle.Render(step)
}
