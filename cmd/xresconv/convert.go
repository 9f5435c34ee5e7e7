package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/xresconv/internal/check"
	"github.com/backmassage/xresconv/internal/config"
	"github.com/backmassage/xresconv/internal/converter"
	"github.com/backmassage/xresconv/internal/descriptor"
	"github.com/backmassage/xresconv/internal/dispatch"
	"github.com/backmassage/xresconv/internal/display"
	"github.com/backmassage/xresconv/internal/logging"
	"github.com/backmassage/xresconv/internal/options"
	"github.com/backmassage/xresconv/internal/planner"
	"github.com/backmassage/xresconv/internal/term"
)

// convert runs one invocation after flags are parsed and returns its exit
// status.
func convert(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) int {
	// Phase 1: Bootstrap. Colors first so both lipgloss and the logger
	// agree, then the logger. Errors before that go straight to stderr.
	// Log records and drained converter output share one console lock.
	out, _ := stdout.(*os.File)
	profile := term.Configure(cfg.ColorMode, out)
	console := dispatch.NewConsole(stdout, stderr)

	log, closer, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Console: console.Stderr(),
		Profile: profile,
		LogFile: cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(stderr, "xresconv: %v\n", err)
		return exitUsage
	}
	defer closer.Close()
	if cfg.ProfileFile != "" {
		log.Debug("profile loaded", "path", cfg.ProfileFile)
	}

	if cfg.CheckOnly {
		display.PrintBanner(stdout, version)
		return runCheck(ctx, cfg, log)
	}

	// Phase 2: Load and compile the convert list.
	tree, err := descriptor.Load(cfg.ListFile)
	if err != nil {
		log.Error("cannot load convert list", "err", err)
		return loadExitCode(err)
	}
	log.Debug("convert list loaded", "files", len(tree.Files), "globals", len(tree.Globals), "items", len(tree.Items))

	g, warnings := options.Merge(tree.Globals, options.Overrides{
		DataVersion: cfg.DataVersion,
		Passthrough: cfg.Passthrough,
	})
	items, itemWarnings := options.LoadItems(tree.Items, g, cfg.Schemes)
	for _, w := range append(warnings, itemWarnings...) {
		log.Warn(w.Msg, "file", w.File, "tag", w.Tag)
	}

	workDir := g.ResolveWorkDir(cfg.ListFile)
	if cfg.ShowTree {
		fmt.Fprintln(stdout, display.ConfigTree(cfg.ListFile, g, items))
	}

	if err := check.CheckDeps(g.ConverterFile(workDir), cfg.Java, cfg.DryRun); err != nil {
		log.Error("converter unavailable", "err", err, "work_dir", workDir)
		return exitNoConverter
	}

	tc, err := dispatch.NewTranscoder(cfg.ConsoleEncoding)
	if err != nil {
		log.Warn("console output left as UTF-8", "err", err)
	}

	plan := planner.Compile(g, items)
	log.Info("jobs compiled",
		"jobs", len(plan.Jobs), "filtered", plan.Filtered, "disabled", plan.Disabled,
		"batch", plan.BatchSize, "console_encoding", tc.Name())

	// Phase 3: Signal handling. An interrupt stops workers from taking new
	// jobs; converters finish what they were already sent.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("received interrupt, finishing jobs already sent")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Dispatch. The converter path stays relative to the work
	// directory the processes run in.
	spec := converter.Spec{
		Java:        cfg.Java,
		CLIOptions:  cfg.JavaOptions,
		JavaOptions: g.JavaOptions,
		Converter:   g.ConverterPath,
		Dir:         workDir,
	}
	rep := dispatch.Run(ctx, plan.Jobs, dispatch.Options{
		Parallelism: cfg.Parallelism,
		BatchSize:   plan.BatchSize,
		DryRun:      cfg.DryRun,
		Launcher:    converter.ExecLauncher{Spec: spec},
		Command:     spec.String(),
		Console:     console,
		Transcoder:  tc,
		Logger:      log,
	})

	log.Info("run finished",
		"run_id", rep.RunID.String(),
		"delivered", rep.Delivered,
		"undelivered", rep.Undelivered,
		"elapsed", display.FormatElapsed(rep.Elapsed))
	fmt.Fprintln(stdout, display.Summary(rep.Failed))
	return rep.ExitStatus()
}

// loadExitCode maps descriptor errors to their exit statuses.
func loadExitCode(err error) int {
	switch {
	case errors.Is(err, descriptor.ErrNoInput):
		return exitNoInput
	case errors.Is(err, descriptor.ErrNoRoot):
		return exitNoRoot
	default:
		return exitBadList
	}
}

// runCheck reports on the environment. With a convert list it also
// resolves the work directory and converter jar the list points at.
func runCheck(ctx context.Context, cfg config.Config, log *slog.Logger) int {
	t := check.Target{Java: cfg.Java, Profile: cfg.ProfileFile}
	if cfg.ListFile != "" {
		tree, err := descriptor.Load(cfg.ListFile)
		if err != nil {
			log.Error("cannot load convert list", "err", err)
			return loadExitCode(err)
		}
		g, _ := options.Merge(tree.Globals, options.Overrides{})
		t.ListFile = cfg.ListFile
		t.WorkDir = g.ResolveWorkDir(cfg.ListFile)
		t.ConverterFile = g.ConverterFile(t.WorkDir)
	}
	tc, err := dispatch.NewTranscoder(cfg.ConsoleEncoding)
	if err != nil {
		log.Error("console encoding not supported", "err", err)
		return exitCheckFailure
	}
	t.Encoding = tc.Name()
	if !check.RunCheck(ctx, t, log) {
		return exitCheckFailure
	}
	return exitOK
}
