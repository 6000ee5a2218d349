package testutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

// CommandOutput holds what a command wrote while running.
type CommandOutput struct {
	Stdout string
	Stderr string
}

// RunCommand executes command with args, as if invoked from a shell with the
// command's own name as argv[0], and captures its output.
func RunCommand(t *testing.T, command *cli.Command, args ...string) (*CommandOutput, error) {
	t.Helper()
	return RunCommandWithContext(context.Background(), t, command, args...)
}

// RunCommandWithContext executes a command with a custom context
func RunCommandWithContext(ctx context.Context, t *testing.T, command *cli.Command, args ...string) (*CommandOutput, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	command.Writer = &stdout
	command.ErrWriter = &stderr

	fullArgs := append([]string{command.Name}, args...)
	err := command.Run(ctx, fullArgs)

	return &CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
