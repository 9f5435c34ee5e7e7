// Package config holds runtime configuration: defaults, command-line flags,
// environment variables, an optional TOML profile and validation.
//
// Precedence, highest first: flag, environment variable, profile, default.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/backmassage/xresconv/internal/converter"
	"github.com/backmassage/xresconv/internal/dispatch"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Log levels accepted by --log-level. "trace" adds caller information.
var logLevels = []string{"trace", "debug", "info", "warn", "warning", "error"}

// Config holds all runtime settings. It is built by [DefaultConfig],
// overlaid by [FromCommand] and checked by [Config.Validate] before use.
type Config struct {
	// Inputs (positional arguments).
	ListFile    string   // Convert list descriptor.
	Passthrough []string // Extra xresloader arguments after the list file.

	// Selection.
	Schemes     []string // Only convert items with one of these schemes.
	DataVersion *string  // Overrides every <data_version>.

	// Execution.
	DryRun          bool
	Parallelism     int      // Default: half the spare CPUs, at most 2.
	Java            string   // Default: "java".
	JavaOptions     []string // JVM options, "-" prefixed when missing.
	ConsoleEncoding string   // Default: "UTF-8".

	// Display and logging.
	ColorMode ColorMode // Default: "auto".
	LogLevel  string    // Default: "info".
	LogFile   string    // Optional plain-text log file.
	ShowTree  bool      // Print the merged configuration before running.
	CheckOnly bool      // Run diagnostics and exit.

	ProfileFile string // TOML profile the defaults were read from.
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Parallelism:     dispatch.DefaultParallelism(),
		Java:            converter.DefaultJava,
		ConsoleEncoding: "UTF-8",
		ColorMode:       ColorAuto,
		LogLevel:        "info",
	}
}

// Validate checks enum fields and ranges, normalizing case where it is
// harmless. A missing list file is not an error here: it has its own exit
// status and is reported when the descriptor is loaded.
func (c *Config) Validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}

	c.ColorMode = ColorMode(strings.ToLower(string(c.ColorMode)))
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !isLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q (use one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}

	if strings.TrimSpace(c.Java) == "" {
		return errors.New("java executable must not be empty")
	}
	if strings.TrimSpace(c.ConsoleEncoding) == "" {
		return errors.New("console encoding must not be empty")
	}
	return nil
}

func isLogLevel(s string) bool {
	for _, l := range logLevels {
		if s == l {
			return true
		}
	}
	return false
}
