package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// RunIDEnv carries the invocation id into every generator process
const RunIDEnv = EnvPrefix + "RUN_ID"

// Process is a started generator
type Process interface {
	// Wait blocks until the generator exits
	Wait() error
}

// Executor starts generator commands
type Executor interface {
	Start(ctx context.Context, cmd *Command) (Process, error)
}

// ShellExecutor runs the serialized command line through the system shell
// with the orchestrator's standard streams
type ShellExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
}

// NewShellExecutor creates an executor inheriting the process streams and
// environment, tagged with runID
func NewShellExecutor(runID string) *ShellExecutor {
	return &ShellExecutor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Env:    append(os.Environ(), RunIDEnv+"="+runID),
	}
}

// Start launches cmd and returns without waiting for it. The generator is
// not tied to ctx and keeps running if the orchestrator exits.
func (e *ShellExecutor) Start(ctx context.Context, cmd *Command) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c *exec.Cmd
	if runtime.GOOS == "windows" {
		c = exec.Command("cmd", "/C", cmd.String())
	} else {
		c = exec.Command("sh", "-c", cmd.String())
	}
	c.Stdin = e.Stdin
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr
	c.Env = e.Env

	if err := c.Start(); err != nil {
		return nil, err
	}
	return c, nil
}
