package printer

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// ColorEnabled reports whether styled output should keep its colors:
// NO_COLOR unset and stdout a terminal.
func ColorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTTY()
}
