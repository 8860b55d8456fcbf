// Package invoker runs the external export run (cargo test with
// the ts-rs export feature) that writes the TypeScript bindings.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Invoker runs an [Invocation] to completion.
//
// Invoke returns a [*LaunchError] if the program couldn't be started
// and an [*ExitError] if it ran but exited with a nonzero status.
type Invoker interface {
	Invoke(ctx context.Context, inv Invocation) error
}

// LaunchError means the program could not be started at all,
// e.g. because it wasn't found.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return "launch " + e.Program + ": " + e.Err.Error()
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitError means the program ran but didn't succeed.
type ExitError struct {
	Program string
	// Code is -1 if the program was killed by a signal.
	Code int
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return e.Program + " was terminated by a signal"
	}
	return fmt.Sprintf("%v exited with status %v", e.Program, e.Code)
}

// ExitCode makes ExitError usable as a process exit code.
func (e *ExitError) ExitCode() int {
	if e.Code <= 0 {
		return 1
	}
	return e.Code
}

// ExecInvoker runs invocations as child processes.
//
// The zero value inherits the standard streams and
// environment of the current process.
type ExecInvoker struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Base environment. If nil, [os.Environ] is used.
	Environ []string
}

func (x *ExecInvoker) Invoke(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)

	base := x.Environ
	if base == nil {
		base = os.Environ()
	}
	cmd.Env = inv.Environ(base)

	cmd.Stdin, cmd.Stdout, cmd.Stderr = x.Stdin, x.Stdout, x.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return &LaunchError{Program: inv.Program, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Program: inv.Program, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("wait for %v: %w", inv.Program, err)
	}
	return nil
}
