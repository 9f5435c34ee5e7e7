package dispatch

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/xresconv/internal/converter"
	"github.com/backmassage/xresconv/internal/display"
	"github.com/backmassage/xresconv/internal/planner"
)

// ErrNoLauncher is reported by every worker of a real run started without
// a Launcher.
var ErrNoLauncher = errors.New("no converter launcher configured")

// DefaultParallelism is half the spare CPUs, rounded up, capped at two.
func DefaultParallelism() int {
	return min(2, (runtime.NumCPU()-1)/2+1)
}

// Options configures Run.
type Options struct {
	// Parallelism is the number of workers; values below 1 mean one.
	Parallelism int
	// BatchSize is how many jobs a worker pops at once.
	BatchSize int
	// DryRun previews each worker's command and jobs without launching.
	DryRun bool

	Launcher converter.Launcher
	// Command is the converter command line shown in previews.
	Command string

	Console    *Console
	Transcoder *Transcoder
	Logger     *slog.Logger
}

// Run distributes jobs over opts.Parallelism workers and blocks until all
// of them are done. Cancelling ctx stops workers from taking new batches;
// converters already started still receive EOF on stdin and are waited for.
func Run(ctx context.Context, jobs []planner.Job, opts Options) Report {
	start := time.Now()
	rep := Report{RunID: uuid.Must(uuid.NewV6()), DryRun: opts.DryRun}

	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	if opts.Console == nil {
		opts.Console = NewConsole(io.Discard, io.Discard)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	log := opts.Logger.With("component", "dispatch", "run_id", rep.RunID.String())
	log.Debug("dispatch started",
		"jobs", len(jobs), "workers", opts.Parallelism, "batch", opts.BatchSize, "dry_run", opts.DryRun)

	q := NewQueue(jobs)
	results := make([]WorkerReport, opts.Parallelism)

	var g errgroup.Group
	for i := range results {
		w := &worker{id: i, queue: q, opts: &opts, log: log.With("worker", i)}
		g.Go(func() error {
			results[i] = w.run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		rep.add(r)
	}
	rep.Undelivered += q.Len()
	rep.Elapsed = time.Since(start)

	if ctx.Err() != nil && q.Len() > 0 {
		log.Warn("interrupted", "left_in_queue", q.Len())
	}
	log.Debug("dispatch finished",
		"delivered", rep.Delivered, "undelivered", rep.Undelivered, "failed", rep.Failed, "elapsed", rep.Elapsed)
	return rep
}

type worker struct {
	id    int
	queue *Queue
	opts  *Options
	log   *slog.Logger
}

func (w *worker) run(ctx context.Context) WorkerReport {
	if w.opts.DryRun {
		return w.preview(ctx)
	}
	rep := WorkerReport{ID: w.id}
	if w.opts.Launcher == nil {
		rep.Err, rep.ExitCode = ErrNoLauncher, 1
		return rep
	}

	proc, err := w.opts.Launcher.Launch(ctx, w.id)
	if err != nil {
		w.log.Error("converter did not start", "err", err)
		rep.Err, rep.ExitCode = err, 1
		return rep
	}

	// Drains start before the first write so a chatty converter cannot fill
	// its output pipes and stall on our input.
	var drains errgroup.Group
	drains.Go(func() error {
		return Drain(proc.Stdout(), w.opts.Console.Stdout(), w.opts.Transcoder)
	})
	drains.Go(func() error {
		return Drain(proc.Stderr(), w.opts.Console.Stderr(), w.opts.Transcoder)
	})

	writeErr := w.feed(ctx, proc.Stdin(), &rep)
	if err := proc.Stdin().Close(); err != nil && writeErr == nil {
		w.log.Debug("closing converter stdin", "err", err)
	}
	drainErr := drains.Wait()

	code, waitErr := proc.Wait()
	rep.ExitCode = code
	rep.Err = errors.Join(writeErr, drainErr, waitErr)

	if code != 0 {
		w.log.Error("converter exited with failure", "exit", code, "jobs", len(rep.Jobs))
	} else if rep.Err != nil {
		w.log.Error("converter output incomplete", "err", rep.Err)
	} else {
		w.log.Debug("converter done", "jobs", len(rep.Jobs))
	}
	return rep
}

// feed writes batches until the queue is empty, ctx is cancelled or the
// converter stops accepting input. A batch that fails to flush is recorded
// as undelivered.
func (w *worker) feed(ctx context.Context, stdin io.Writer, rep *WorkerReport) error {
	bw := bufio.NewWriter(stdin)
	for ctx.Err() == nil {
		batch := w.queue.PopBatch(w.opts.BatchSize)
		if len(batch) == 0 {
			return nil
		}
		for _, j := range batch {
			bw.WriteString(j.Line())
			bw.WriteByte('\n')
		}
		if err := bw.Flush(); err != nil {
			rep.Undelivered = append(rep.Undelivered, batch...)
			w.log.Error("converter stdin closed early", "err", err, "lost", len(batch))
			return err
		}
		rep.Jobs = append(rep.Jobs, batch...)
		for _, j := range batch {
			w.log.Debug("job sent", "item", j.Item, "rule", j.Rule)
		}
	}
	return nil
}

func (w *worker) preview(ctx context.Context) WorkerReport {
	rep := WorkerReport{ID: w.id}
	for ctx.Err() == nil {
		batch := w.queue.PopBatch(w.opts.BatchSize)
		if len(batch) == 0 {
			break
		}
		rep.Jobs = append(rep.Jobs, batch...)
	}
	if len(rep.Jobs) == 0 {
		return rep
	}
	lines := make([]string, len(rep.Jobs))
	for i, j := range rep.Jobs {
		lines[i] = j.Line()
	}
	io.WriteString(w.opts.Console.Stdout(), display.PreviewBlock(w.opts.Command, lines))
	return rep
}
