// Package shell runs external programs (psql, git) with explicit argument
// lists and a bounded timeout. Arguments are never joined into a shell
// string, so identifiers and credentials cannot be reinterpreted.
package shell

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	"github.com/pkg/errors"
)

// ErrTimeout is returned when a command does not finish within the runner's
// timeout.
var ErrTimeout = errors.New("command timed out")

// waitDelay bounds how long Run waits for output pipes after the process is
// killed, since grandchildren may keep them open.
const waitDelay = 500 * time.Millisecond

type (
	// Cmd describes a single program invocation.
	Cmd struct {
		// Name is the program to run, looked up on PATH.
		Name string

		// Args are passed to the program verbatim.
		Args []string

		// Env holds additional KEY=VALUE pairs appended to the current
		// environment. Values here are never logged.
		Env []string

		// Dir is the working directory. Empty means the current directory.
		Dir string
	}

	// Result holds the captured output of a finished command.
	Result struct {
		Stdout string
		Stderr string
	}

	// Runner executes commands. It is satisfied by *ExecRunner and allows
	// psql and git interactions to be faked in tests.
	Runner interface {
		Run(context.Context, Cmd) (*Result, error)
		LookPath(string) (string, error)
	}

	// Options configures an ExecRunner.
	Options struct {
		// Timeout bounds each command. Zero means consts.DefaultCommandTimeout.
		Timeout time.Duration
	}

	// ExecRunner runs commands with os/exec.
	ExecRunner struct {
		timeout time.Duration
	}
)

// New creates an ExecRunner.
//
// Example:
//
//	runner := shell.New(shell.Options{Timeout: 10 * time.Second})
//	res, err := runner.Run(ctx, shell.Cmd{
//		Name: "git",
//		Args: []string{"rev-parse", "--abbrev-ref", "HEAD"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(strings.TrimSpace(res.Stdout))
func New(opts Options) *ExecRunner {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultCommandTimeout
	}

	return &ExecRunner{timeout: timeout}
}

// Timeout returns the per-command timeout.
func (r *ExecRunner) Timeout() time.Duration {
	return r.timeout
}

// LookPath reports the full path of the named program.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes c and waits for it to finish. A non-zero exit status is
// returned as an error that includes the trimmed stderr output; the Result is
// returned alongside it so callers can inspect what was printed.
func (r *ExecRunner) Run(ctx context.Context, c Cmd) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	slog.Debug("Running command", "name", c.Name, "args", c.Args)

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctx.Err() == context.DeadlineExceeded {
		return res, errors.Wrapf(ErrTimeout, "%s did not finish within %s", c.Name, r.timeout)
	}

	if err != nil {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			return res, errors.Wrapf(err, "%s failed", c.Name)
		}

		return res, errors.Wrapf(err, "%s failed: %s", c.Name, msg)
	}

	return res, nil
}

// Lines splits output into trimmed, non-empty lines.
func Lines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
