// Copyright © 2026 The elmguard authors

package diagnostic

import "os"

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// palette holds the ANSI escape sequences for diagnostic output.
type palette struct {
	bold     string
	yellow   string
	boldRed  string
	boldBlue string
	boldCyan string
	reset    string
}

var ansiPalette = palette{
	bold:     "\033[1m",
	yellow:   "\033[33m",
	boldRed:  "\033[1;31m",
	boldBlue: "\033[1;34m",
	boldCyan: "\033[1;36m",
	reset:    "\033[0m",
}

var plainPalette = palette{}

// choosePalette selects colored or plain output. f is the file backing the
// output writer, or nil when the writer is not a terminal candidate.
func choosePalette(mode ColorMode, f *os.File) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return plainPalette
	}
	if os.Getenv("NO_COLOR") != "" {
		return plainPalette
	}
	if f == nil || !isTerminal(f) {
		return plainPalette
	}
	return ansiPalette
}

// isTerminal reports whether f is a character device. This is the cheap
// stat-based check; it misclassifies some exotic writers but never panics.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
