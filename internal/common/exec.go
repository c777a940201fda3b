package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// waitDelay bounds how long a killed process may hold its output pipes open.
const waitDelay = 2 * time.Second

// CommandResult holds the captured output of a finished process.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (r *CommandResult) Success() bool {
	return r != nil && r.ExitCode == 0
}

// CommandRunner runs an external program to completion.
//
// A non-nil error means the process could not be started or was killed by the
// context; a process that ran and exited non-zero is reported through
// CommandResult.ExitCode with a nil error.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (*CommandResult, error)
}

// ExecRunner is the os/exec backed CommandRunner.
type ExecRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (*CommandResult, error) {

	logrus.WithFields(logrus.Fields{
		"command": name,
		"args":    args,
		"stdin":   len(stdin) > 0,
	}).Debugln("Running external command")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	if len(r.Dir) > 0 {
		cmd.Dir = r.Dir
	}

	// Input is only ever passed on stdin so it never shows up in process listings
	if len(stdin) > 0 {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("%s did not finish: %w", name, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			logrus.WithFields(logrus.Fields{
				"command":  name,
				"exitCode": result.ExitCode,
			}).Debugln("External command exited with non-zero status")
			return result, nil
		}
		result.ExitCode = -1
		return result, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return result, nil
}
