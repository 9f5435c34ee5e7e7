// Command xresconv compiles a convert list into xresloader jobs and runs
// them on a pool of converter processes.
//
// Usage:
//
//	xresconv [options] <convert list file> [-- xresloader options...]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/backmassage/xresconv/internal/config"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "2.0.0"
	commit  = "unknown"
)

// Exit statuses for configuration failures. Execution failures exit with
// the number of failed converters instead.
const (
	exitOK           = 0
	exitNoInput      = -1
	exitBadList      = -2
	exitNoRoot       = -3
	exitNoConverter  = -4
	exitUsage        = 2
	exitCheckFailure = 1
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run parses args and executes the command, returning the process exit
// status instead of exiting so it can be driven from tests.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := exitOK
	cmd := &cli.Command{
		Name:      "xresconv",
		Version:   fmt.Sprintf("%s (%s)", version, commit),
		Usage:     "convert spreadsheets with xresloader from a convert list",
		ArgsUsage: "<convert list file> [-- xresloader options...]",
		Flags:     config.Flags(config.DefaultConfig()),
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit statuses are returned from run, never by os.Exit inside cli.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.FromCommand(cmd)
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			code = convert(ctx, cfg, stdout, stderr)
			return nil
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			if msg := ec.Error(); msg != "" {
				fmt.Fprintf(stderr, "xresconv: %s\n", msg)
			}
			return ec.ExitCode()
		}
		fmt.Fprintf(stderr, "xresconv: %v\n", err)
		return exitUsage
	}
	return code
}
