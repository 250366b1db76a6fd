package git

import (
	"context"
	"fmt"
	"strings"
)

// Runner executes an external command inside a repository working directory
// and returns its combined output. Tests inject a fake; production code uses
// ExecRunner.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// CommandError is returned by ExecRunner when a command exits non-zero. The
// exit code is preserved because some git predicates are ternary: merge-base
// --is-ancestor uses exit 1 for "no" and anything else for "broken".
type CommandError struct {
	Name   string
	Args   []string
	Code   int
	Output []byte
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s exited with code %d: %s",
		e.Name, strings.Join(e.Args, " "), e.Code, strings.TrimSpace(string(e.Output)))
}

// MergeOutcome classifies the result of a merge attempt.
type MergeOutcome int

const (
	// OutcomeClean means the merge applied without conflicts. It is left
	// uncommitted for the caller to inspect and commit.
	OutcomeClean MergeOutcome = iota
	// OutcomeConflicted means the merge stopped on conflicts. Not an error:
	// conflicts are surfaced for a human to resolve, never auto-resolved.
	OutcomeConflicted
)

func (o MergeOutcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeConflicted:
		return "conflicted"
	default:
		return "unknown"
	}
}
