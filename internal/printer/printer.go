// Package printer renders verup's console output. Plain results go to the
// output writer, diagnostics to the error writer.
package printer

import (
	"fmt"
	"io"
	"os"
	"sync"

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

var (
	mu        sync.Mutex
	out       io.Writer = os.Stdout
	errOut    io.Writer = os.Stderr
	noColored bool
)

// SetNoColor disables (or re-enables) ANSI styling for every render function.
func SetNoColor(disabled bool) {
	mu.Lock()
	defer mu.Unlock()
	noColored = disabled
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// NoColor reports whether styling is disabled.
func NoColor() bool {
	mu.Lock()
	defer mu.Unlock()
	return noColored
}

// SetOutput redirects standard output and returns a function restoring the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		out = prev
	}
}

// SetErrorOutput redirects diagnostics and returns a function restoring the previous writer.
func SetErrorOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := errOut
	errOut = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		errOut = prev
	}
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

// Print functions write a line to the output writer.

// Println writes text unstyled.
func Println(text string) {
	writeLine(stdout(), text)
}

// PrintFaint prints text with faint styling.
func PrintFaint(text string) {
	writeLine(stdout(), Faint(text))
}

// PrintSuccess prints text with success (green) styling.
func PrintSuccess(text string) {
	writeLine(stdout(), Success(text))
}

// PrintInfo prints text with info (cyan) styling.
func PrintInfo(text string) {
	writeLine(stdout(), Info(text))
}

// Diagnostics go to the error writer.

// PrintError prints text with error (red) styling.
func PrintError(text string) {
	writeLine(stderr(), Error(text))
}

// PrintWarning prints text with warning (yellow) styling.
func PrintWarning(text string) {
	writeLine(stderr(), Warning(text))
}

func stdout() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func stderr() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return errOut
}

func writeLine(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, text)
}
