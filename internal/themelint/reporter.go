package themelint

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Reporter writes human-readable status lines.
// Progress goes to w; warnings and errors go to errW.
type Reporter struct {
	w         io.Writer
	errW      io.Writer
	useColors bool
	quiet     bool
}

// NewReporter creates a reporter. A quiet reporter only prints errors.
func NewReporter(w, errW io.Writer, useColors, quiet bool) *Reporter {
	return &Reporter{
		w:         w,
		errW:      errW,
		useColors: useColors,
		quiet:     quiet,
	}
}

// Discard returns a reporter that prints nothing.
func Discard() *Reporter {
	return NewReporter(io.Discard, io.Discard, false, true)
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// Respect https://no-color.org
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// Success prints a "✓" line.
func (r *Reporter) Success(format string, args ...any) {
	r.line(r.w, StyleGreen, "✓", format, args...)
}

// Info prints an "ℹ" line.
func (r *Reporter) Info(format string, args ...any) {
	r.line(r.w, StyleCyan, "ℹ", format, args...)
}

// Warn prints a "⚠ Warning:" line.
func (r *Reporter) Warn(format string, args ...any) {
	r.line(r.errW, StyleYellow, "⚠ Warning:", format, args...)
}

// Error prints a "❌ Error:" line. Errors are printed even when quiet.
func (r *Reporter) Error(format string, args ...any) {
	if r == nil {
		return
	}
	marker := RenderStyle(StyleRed, "❌ Error:", r.useColors)
	fmt.Fprintf(r.errW, "%s %s\n", marker, fmt.Sprintf(format, args...))
}

// Println prints an unadorned line.
func (r *Reporter) Println(format string, args ...any) {
	if r == nil || r.quiet {
		return
	}
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Hint prints an indented, dimmed block such as an example config.
func (r *Reporter) Hint(text string) {
	if r == nil || r.quiet {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleGray, line, r.useColors))
	}
}

func (r *Reporter) line(w io.Writer, style lipgloss.Style, marker, format string, args ...any) {
	if r == nil || r.quiet {
		return
	}
	fmt.Fprintf(w, "%s %s\n", RenderStyle(style, marker, r.useColors), fmt.Sprintf(format, args...))
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
