package git

import (
	"context"
	"fmt"
	"strings"
)

// fakeRunner resolves commands against a canned response table keyed by the
// joined command line. Unexpected commands fail loudly so tests pin the
// exact git invocations.
type fakeRunner struct {
	responses map[string]fakeResult
	calls     []string
}

type fakeResult struct {
	output string
	err    error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]fakeResult)}
}

func (f *fakeRunner) on(cmdline, output string, err error) {
	f.responses[cmdline] = fakeResult{output: output, err: err}
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)
	res, ok := f.responses[cmdline]
	if !ok {
		return nil, fmt.Errorf("unexpected command: %s", cmdline)
	}
	return []byte(res.output), res.err
}

// exitError builds the CommandError an ExecRunner would produce for a
// command exiting with code.
func exitError(code int, output string) *CommandError {
	return &CommandError{Name: "git", Code: code, Output: []byte(output)}
}
