// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Output wider than the terminal is wrapped at these bounds.
const (
	fallbackWidth  = 80
	narrowestWidth = 40
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether stdin is attached to a terminal, which is what the
// TUI and the chat prompt need.
func IsTTY() bool { return isTerminal(os.Stdin) }

// IsStdoutTTY reports whether stdout is attached to a terminal.
func IsStdoutTTY() bool { return isTerminal(os.Stdout) }

// GetTerminalWidth returns the stdout width for separators and markdown.
func GetTerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	return clampWidth(w, err)
}

func clampWidth(w int, err error) int {
	switch {
	case err != nil, w <= 0:
		return fallbackWidth
	case w < narrowestWidth:
		return narrowestWidth
	default:
		return w
	}
}

var colorOnce = sync.OnceValue(func() bool {
	return wantColor(os.Getenv, IsStdoutTTY())
})

// ColorsEnabled reports whether styled output goes to stdout. It is decided
// once per process.
func ColorsEnabled() bool { return colorOnce() }

// wantColor applies NO_COLOR, then FORCE_COLOR, then TERM=dumb, and falls
// back to whether stdout is a terminal.
func wantColor(getenv func(string) string, stdoutTTY bool) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if getenv("FORCE_COLOR") != "" {
		return true
	}
	if getenv("TERM") == "dumb" {
		return false
	}
	return stdoutTTY
}

// GetColorProfile is the lipgloss profile for the CLI styles.
func GetColorProfile() termenv.Profile {
	if ColorsEnabled() {
		return termenv.ColorProfile()
	}
	return termenv.Ascii
}
