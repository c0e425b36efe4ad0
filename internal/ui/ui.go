// Package ui renders user-facing terminal output: colored status tags,
// section headers and stderr notices.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

var writer io.Writer = os.Stderr

// SetWriter overrides the stderr notice writer (for testing). Passing nil
// restores os.Stderr.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	writer = w
}

// --- Color detection ---

var stdoutColor = detectColor(os.Stdout)
var stderrColor = detectColor(os.Stderr)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorMode applies a configured color mode: "always", "never", or
// "auto" (terminal detection). NO_COLOR wins over "always".
func SetColorMode(mode string) {
	switch mode {
	case "always":
		SetColorEnabled(os.Getenv("NO_COLOR") == "")
	case "never":
		SetColorEnabled(false)
	default:
		stdoutColor = detectColor(os.Stdout)
		stderrColor = detectColor(os.Stderr)
	}
}

// SetColorEnabled overrides color detection.
func SetColorEnabled(enabled bool) {
	stdoutColor = enabled
	stderrColor = enabled
}

// ColorEnabled reports whether stdout color is enabled.
func ColorEnabled() bool {
	return stdoutColor
}

// --- ANSI styles (stdout) ---

func ansi(code, s string) string {
	if !stdoutColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func ansiStderr(code, s string) string {
	if !stderrColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Bold returns s wrapped in bold ANSI codes.
func Bold(s string) string { return ansi("1", s) }

// Dim returns s wrapped in dim ANSI codes.
func Dim(s string) string { return ansi("2", s) }

// Green returns s wrapped in green ANSI codes.
func Green(s string) string { return ansi("32", s) }

// Red returns s wrapped in red ANSI codes.
func Red(s string) string { return ansi("31", s) }

// --- Formatting helpers ---

// Section writes a bold title with a thin underline.
func Section(w io.Writer, title string) {
	fmt.Fprintln(w, Bold(title))
	fmt.Fprintln(w, Dim(strings.Repeat("─", len([]rune(title)))))
}

// OKTag returns a green "✓".
func OKTag() string { return Green("✓") }

// FailTag returns a red "✗".
func FailTag() string { return Red("✗") }

// Check writes an indented "✓ msg" line.
func Check(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s %s\n", OKTag(), msg)
}

// Numbered writes items as an indented 1-based list with a red marker.
func Numbered(w io.Writer, items []string) {
	width := len(fmt.Sprint(len(items)))
	for i, item := range items {
		fmt.Fprintf(w, "  %s %s\n", Red(fmt.Sprintf("%*d.", width, i+1)), item)
	}
}

// --- Stderr notices ---

// Warn prints a user-facing warning to stderr.
func Warn(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr("33", "Warning:"), msg)
}

// Warnf prints a formatted user-facing warning to stderr.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Error prints a user-facing error to stderr.
func Error(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr("31", "Error:"), msg)
}
