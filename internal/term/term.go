// Package term resolves the color mode and applies it to every styled
// writer (lipgloss output and the charm log handler).
//
// [Configure] runs once during startup. When colors are disabled the
// profile is termenv.Ascii and styles render as plain text.
package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/backmassage/xresconv/internal/config"
)

// Configure resolves mode against out and installs the resulting color
// profile as the lipgloss default. The profile is returned so loggers
// writing elsewhere can use the same one.
func Configure(mode config.ColorMode, out *os.File) termenv.Profile {
	p := Profile(mode, out, os.Getenv)
	lipgloss.SetColorProfile(p)
	return p
}

// Profile returns the color profile for mode. Auto enables colors only on
// a TTY, without NO_COLOR (https://no-color.org) and with TERM not "dumb".
func Profile(mode config.ColorMode, out *os.File, getenv func(string) string) termenv.Profile {
	if !Enabled(mode, out, getenv) {
		return termenv.Ascii
	}
	if out == nil {
		out = os.Stdout
	}
	p := termenv.NewOutput(out, termenv.WithTTY(true), termenv.WithEnvironment(envFunc(getenv))).EnvColorProfile()
	if p == termenv.Ascii {
		// Forced on a terminal termenv does not recognize.
		p = termenv.ANSI256
	}
	return p
}

// Enabled reports whether mode turns colors on for out.
func Enabled(mode config.ColorMode, out *os.File, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(out) &&
			getenv("NO_COLOR") == "" &&
			strings.ToLower(getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type envFunc func(string) string

func (e envFunc) Getenv(key string) string { return e(key) }

func (e envFunc) Environ() []string { return nil }
