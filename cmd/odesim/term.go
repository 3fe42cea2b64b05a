package main

import (
	"errors"
	"os"

	"golang.org/x/term"
)

var errNotTerminal = errors.New("view needs an interactive terminal; use solve or export instead")

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the stdout width, or fallback when stdout is not a
// terminal.
func terminalWidth(fallback int) int {
	if !isTerminal(os.Stdout) {
		return fallback
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
