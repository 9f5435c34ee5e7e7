package config

// This file declares the command-line flags and folds a parsed command into
// a Config. Environment variables are attached to flags as value sources.

import (
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	FlagSchemeName      = "scheme-name"
	FlagTest            = "test"
	FlagParallelism     = "parallelism"
	FlagJavaOption      = "java-option"
	FlagDataVersion     = "data-version"
	FlagJava            = "java"
	FlagConsoleEncoding = "console-encoding"
	FlagColor           = "color"
	FlagLogLevel        = "log-level"
	FlagLogFile         = "log-file"
	FlagTree            = "tree"
	FlagCheck           = "check"
	FlagConfig          = "config"
)

// EnvPrefix prefixes every environment variable the command reads.
const EnvPrefix = "XRESCONV_"

// Flags returns the root command's flags. Defaults shown in help come from
// def; the values actually used are resolved by FromCommand.
func Flags(def Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    FlagSchemeName,
			Aliases: []string{"s"},
			Usage:   "only convert items whose scheme is `SCHEME` (repeatable)",
		},
		&cli.BoolFlag{
			Name:    FlagTest,
			Aliases: []string{"t"},
			Usage:   "print the converter commands and jobs instead of running them",
		},
		&cli.IntFlag{
			Name:    FlagParallelism,
			Aliases: []string{"p"},
			Usage:   "number of converter processes",
			Value:   def.Parallelism,
			Sources: cli.EnvVars(EnvPrefix + "PARALLELISM"),
		},
		&cli.StringSliceFlag{
			Name:    FlagJavaOption,
			Aliases: []string{"j"},
			Usage:   "add `OPTION` to the java command, e.g. Xmx2048m (repeatable)",
		},
		&cli.StringFlag{
			Name:    FlagDataVersion,
			Aliases: []string{"a"},
			Usage:   "data version; overrides data_version in the convert list",
		},
		&cli.StringFlag{
			Name:    FlagJava,
			Usage:   "java executable",
			Value:   def.Java,
			Sources: cli.EnvVars(EnvPrefix + "JAVA"),
		},
		&cli.StringFlag{
			Name:    FlagConsoleEncoding,
			Usage:   "encoding of this console; converter output is re-encoded to it",
			Value:   def.ConsoleEncoding,
			Sources: cli.EnvVars(EnvPrefix + "CONSOLE_ENCODING"),
		},
		&cli.StringFlag{
			Name:    FlagColor,
			Usage:   "colored output: auto | always | never",
			Value:   string(def.ColorMode),
			Sources: cli.EnvVars(EnvPrefix + "COLOR"),
		},
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "log level: trace | debug | info | warn | error",
			Value:   def.LogLevel,
			Sources: cli.EnvVars(EnvPrefix + "LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    FlagLogFile,
			Usage:   "also append plain logs to `FILE`",
			Sources: cli.EnvVars(EnvPrefix + "LOG_FILE"),
		},
		&cli.BoolFlag{
			Name:  FlagTree,
			Usage: "print the merged convert list configuration before running",
		},
		&cli.BoolFlag{
			Name:  FlagCheck,
			Usage: "run environment diagnostics and exit",
		},
		&cli.StringFlag{
			Name:    FlagConfig,
			Usage:   "read defaults from TOML profile `FILE`",
			Sources: cli.EnvVars(EnvPrefix + "CONFIG"),
		},
	}
}

// FromCommand builds a Config from a parsed command: defaults, then the
// profile named by --config, then every flag or environment variable that
// was set. The first positional argument is the list file; the rest are
// passed through to the converter.
func FromCommand(cmd *cli.Command) (Config, error) {
	cfg := DefaultConfig()

	if path := cmd.String(FlagConfig); path != "" {
		p, err := LoadProfile(path)
		if err != nil {
			return cfg, err
		}
		p.Apply(&cfg)
		cfg.ProfileFile = path
	}

	if cmd.IsSet(FlagSchemeName) {
		cfg.Schemes = cmd.StringSlice(FlagSchemeName)
	}
	if cmd.IsSet(FlagParallelism) {
		cfg.Parallelism = cmd.Int(FlagParallelism)
	}
	if cmd.IsSet(FlagJavaOption) {
		cfg.JavaOptions = cmd.StringSlice(FlagJavaOption)
	}
	if cmd.IsSet(FlagDataVersion) {
		v := cmd.String(FlagDataVersion)
		cfg.DataVersion = &v
	}
	if cmd.IsSet(FlagJava) {
		cfg.Java = cmd.String(FlagJava)
	}
	if cmd.IsSet(FlagConsoleEncoding) {
		cfg.ConsoleEncoding = cmd.String(FlagConsoleEncoding)
	}
	if cmd.IsSet(FlagColor) {
		cfg.ColorMode = ColorMode(cmd.String(FlagColor))
	}
	if cmd.IsSet(FlagLogLevel) {
		cfg.LogLevel = cmd.String(FlagLogLevel)
	}
	if cmd.IsSet(FlagLogFile) {
		cfg.LogFile = cmd.String(FlagLogFile)
	}
	cfg.DryRun = cmd.Bool(FlagTest)
	cfg.ShowTree = cmd.Bool(FlagTree)
	cfg.CheckOnly = cmd.Bool(FlagCheck)

	if args := cmd.Args().Slice(); len(args) > 0 {
		cfg.ListFile = args[0]
		cfg.Passthrough = append([]string(nil), args[1:]...)
	}
	return cfg, cfg.Validate()
}
