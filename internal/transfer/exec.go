package transfer

import (
	"context"
	"errors"
	"os/exec"
)

// Result is the outcome of an external command.
type Result struct {
	ExitCode int
	Output   []byte
}

// Runner executes an external program. A non-nil error means the program
// could not be run at all; a failing program is reported through ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (Result, error)
}

// ExecRunner runs programs with os/exec, capturing stdout and stderr together.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string) (Result, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Output: out}, nil
	}
	if err != nil {
		return Result{ExitCode: -1, Output: out}, err
	}
	return Result{Output: out}, nil
}
