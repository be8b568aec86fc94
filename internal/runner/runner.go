package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result carries the outcome of a completed child process. A non-zero exit
// code is part of the result, not an error; the caller decides whether it
// is fatal.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// SpawnError means the executable could not be started at all (missing
// binary, permission denied). It is distinct from a process that ran and
// exited non-zero.
type SpawnError struct {
	Cmd string
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Cmd, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Runner spawns external tools and captures their output.
type Runner struct{}

func New() *Runner {
	return &Runner{}
}

// Run executes the command with the given arguments and waits for it to
// terminate. Stdout and stderr are accumulated separately; each stream's own
// ordering is preserved. Run resolves even if the process produces no
// output. The context bounds the process lifetime; on expiry the process is
// killed and the context error is returned.
func (r *Runner) Run(ctx context.Context, dir string, command string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Cmd: command, Err: err}
	}

	err := cmd.Wait()

	res := &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Completed with non-zero exit. Reported via the result.
			return res, nil
		}
		return res, err
	}

	return res, nil
}
