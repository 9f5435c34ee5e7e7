package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrLaunch wraps every failure to start a converter process.
var ErrLaunch = errors.New("cannot start converter")

// Process is a running converter. Stdout and Stderr must be read to EOF
// before Wait is called.
type Process interface {
	Stdin() io.WriteCloser
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait blocks until the process exits and returns its exit status.
	// err is non-nil only when the status could not be determined.
	Wait() (code int, err error)
}

// Launcher starts one converter per worker.
type Launcher interface {
	Launch(ctx context.Context, worker int) (Process, error)
}

// ExecLauncher starts converters as child processes.
type ExecLauncher struct {
	Spec Spec
	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// Launch starts the converter described by l.Spec. Cancelling ctx does not
// kill a started process: the caller closes stdin and lets the converter
// finish what it was given.
func (l ExecLauncher) Launch(ctx context.Context, worker int) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: worker %d: %w", ErrLaunch, worker, err)
	}
	args := l.Spec.Args()
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = l.Spec.Dir
	cmd.Env = l.Env

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLaunch, args[0], err)
	}
	return &execProcess{cmd: cmd, stdin: stdin, stdout: stdout, stderr: stderr}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.Reader
	stderr io.Reader
}

func (p *execProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *execProcess) Stdout() io.Reader     { return p.stdout }
func (p *execProcess) Stderr() io.Reader     { return p.stderr }

func (p *execProcess) Wait() (int, error) {
	return ExitCode(p.cmd.Wait())
}

// ExitCode converts the error returned by exec.Cmd.Wait into an exit
// status. A process killed by a signal reports 1.
func ExitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if code := ee.ExitCode(); code > 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, err
}
