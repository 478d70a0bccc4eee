// Package printer renders styled console output: colored text helpers, the
// numbered release steps and the final error report.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

// SetNoColor disables colors when noColor is set or stdout is not a
// terminal, and re-detects the terminal profile otherwise.
func SetNoColor(noColor bool) {
	if noColor || !ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
}

// Render functions return styled strings without printing.

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// ErrorReport writes the final failure message: a blank line, a bold red
// "Error:" label followed by msg, then an optional hint block.
func ErrorReport(w io.Writer, msg string, hint string, suggestions []string) {
	fmt.Fprintf(w, "\n%s %s\n", Bold(Error("Error:")), msg)
	if hint == "" {
		return
	}
	fmt.Fprintf(w, "%s%s\n", Indent, Warning(hint))
	for _, s := range suggestions {
		fmt.Fprintf(w, "%s  - %s\n", Indent, Faint(s))
	}
}
