package dispatch

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/backmassage/xresconv/internal/planner"
)

// MaxExitStatus caps the process exit status derived from failures so it
// never wraps to zero or collides with signal statuses.
const MaxExitStatus = 125

// WorkerReport is the outcome of one worker.
type WorkerReport struct {
	ID int
	// Jobs were written to the converter (or previewed in a dry run).
	Jobs []planner.Job
	// Undelivered were popped but could not be written.
	Undelivered []planner.Job
	// ExitCode is the converter's exit status; 1 when it could not start.
	ExitCode int
	Err      error
}

// Failures is the worker's contribution to Report.Failed.
func (w WorkerReport) Failures() int {
	switch {
	case w.ExitCode > 0:
		return w.ExitCode
	case w.Err != nil:
		return 1
	}
	return 0
}

// Report aggregates one Run.
type Report struct {
	RunID   uuid.UUID
	DryRun  bool
	Workers []WorkerReport

	Delivered   int
	Undelivered int
	// Failed is the sum of every worker's failures.
	Failed  int
	Elapsed time.Duration
}

// OK reports whether every job was delivered and every converter exited 0.
func (r Report) OK() bool { return r.Failed == 0 && r.Undelivered == 0 }

// ExitStatus maps the report to a process exit status: 0 when OK,
// otherwise the failure count clamped to 1..MaxExitStatus.
func (r Report) ExitStatus() int {
	n := r.Failed
	if n == 0 && r.Undelivered > 0 {
		n = 1
	}
	return min(max(n, 0), MaxExitStatus)
}

func (r *Report) add(w WorkerReport) {
	r.Workers = append(r.Workers, w)
	r.Delivered += len(w.Jobs)
	r.Undelivered += len(w.Undelivered)
	r.Failed += w.Failures()
}
