// Package logging builds the slog loggers used across xresconv: a charm
// log console handler, optionally fanned out to a plain append-only file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// SetupHandlerText configures a text slog handler with the provided writer
// and log level. "trace" is debug with timestamps and caller information.
func SetupHandlerText(logLevel string, writer io.Writer) *log.Logger {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(logLevel) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "info":
		lvl = log.InfoLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// Options configures New.
type Options struct {
	Level   string
	Console io.Writer       // Default: os.Stderr.
	Profile termenv.Profile // Console color profile, see term.Configure.
	LogFile string          // Optional; appended to, never colored.
}

// New returns the process logger. The returned closer releases the log file
// and is safe to call when no file was opened.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := SetupHandlerText(opts.Level, opts.Console)
	console.SetColorProfile(opts.Profile)

	if opts.LogFile == "" {
		return slog.New(console), nopCloser{}, nil
	}

	f, err := OpenLogFile(opts.LogFile)
	if err != nil {
		return nil, nil, err
	}
	file := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           console.GetLevel(),
		Formatter:       log.LogfmtFormatter,
	})
	file.SetColorProfile(termenv.Ascii)

	return slog.New(Fanout(console, file)), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
