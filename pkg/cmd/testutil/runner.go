package testutil

import (
	"context"
	"os/exec"
	"slices"
	"strings"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"github.com/pkg/errors"
)

// ErrUnexpectedCommand is returned by FakeRunner for commands it has no
// response for.
var ErrUnexpectedCommand = errors.New("unexpected command")

type (
	// HandlerFunc answers an invocation of a faked program.
	HandlerFunc func(shell.Cmd) (*shell.Result, error)

	// FakeRunner is a shell.Runner that answers from canned responses and
	// records every command it receives.
	FakeRunner struct {
		Calls []shell.Cmd

		responses map[string]HandlerFunc
		handlers  map[string]HandlerFunc
		missing   []string
	}
)

// NewFakeRunner creates a FakeRunner with no responses. Every program is
// reported as installed until Missing is called.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]HandlerFunc),
		handlers:  make(map[string]HandlerFunc),
	}
}

// CommandLine renders c as a space separated string, used as the lookup key
// for canned responses.
func CommandLine(c shell.Cmd) string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Respond makes the exact command line print stdout and succeed.
func (f *FakeRunner) Respond(cmdline, stdout string) *FakeRunner {
	f.responses[cmdline] = func(shell.Cmd) (*shell.Result, error) {
		return &shell.Result{Stdout: stdout}, nil
	}

	return f
}

// Fail makes the exact command line fail with err.
func (f *FakeRunner) Fail(cmdline string, err error) *FakeRunner {
	f.responses[cmdline] = func(shell.Cmd) (*shell.Result, error) {
		return &shell.Result{}, err
	}

	return f
}

// Handle answers every invocation of program name that has no exact response.
func (f *FakeRunner) Handle(name string, fn HandlerFunc) *FakeRunner {
	f.handlers[name] = fn
	return f
}

// Missing makes LookPath fail for the given programs.
func (f *FakeRunner) Missing(names ...string) *FakeRunner {
	f.missing = append(f.missing, names...)
	return f
}

// Run implements shell.Runner.
func (f *FakeRunner) Run(_ context.Context, c shell.Cmd) (*shell.Result, error) {
	f.Calls = append(f.Calls, c)

	if fn, ok := f.responses[CommandLine(c)]; ok {
		return fn(c)
	}

	if fn, ok := f.handlers[c.Name]; ok {
		return fn(c)
	}

	return nil, errors.Wrap(ErrUnexpectedCommand, CommandLine(c))
}

// LookPath implements shell.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if slices.Contains(f.missing, name) {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	return "/usr/bin/" + name, nil
}

// CallsTo returns the recorded invocations of program name.
func (f *FakeRunner) CallsTo(name string) []shell.Cmd {
	var calls []shell.Cmd
	for _, c := range f.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}

	return calls
}
