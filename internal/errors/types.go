package errors

import (
	"errors"
	"fmt"
)

// Exit codes for the different failure classes.
const (
	ExitCodeSuccess           = 0
	ExitCodeGenericError      = 1
	ExitCodeUnsupportedSource = 2
	ExitCodeRemoteDiscovery   = 3
	ExitCodeNoMatchingVersion = 4
	ExitCodeAncestryCheck     = 5
	ExitCodeNetworkError      = 6
	ExitCodeMergeConflict     = 7
	ExitCodeGitError          = 8
	ExitCodeTimeout           = 124
)

// ErrUnsupportedSource is returned while classifying a project when its
// locator matches no known updater's URL pattern. It is recoverable during
// dispatch (the next candidate updater is tried) and fatal once dispatch
// is exhausted.
var ErrUnsupportedSource = errors.New("unsupported source url")

// RemoteDiscoveryError means the upstream remote or its default branch
// could not be determined. Fatal for the project.
type RemoteDiscoveryError struct {
	Remote string
	Reason string
}

func (e *RemoteDiscoveryError) Error() string {
	return fmt.Sprintf("remote discovery failed for %q: %s", e.Remote, e.Reason)
}

// NoMatchingVersionError means the tag/version search yielded nothing
// compatible with the project's current version. Distinct from "already at
// latest": the latter is a successful outcome, this is a fatal one.
type NoMatchingVersionError struct {
	Project string
	Current string
}

func (e *NoMatchingVersionError) Error() string {
	return fmt.Sprintf("no version matching %q found for %s", e.Current, e.Project)
}

// AncestryCheckError means an ancestry query failed for a reason other than
// git's documented "not an ancestor" exit status. Fatal, never retried.
type AncestryCheckError struct {
	Ancestor   string
	Descendant string
	Err        error
}

func (e *AncestryCheckError) Error() string {
	return fmt.Sprintf("ancestry check %s..%s failed: %v", e.Ancestor, e.Descendant, e.Err)
}

func (e *AncestryCheckError) Unwrap() error { return e.Err }

// TransportError wraps a network or subprocess failure. Fatal for the
// project; retries, if any, happen by re-running the whole check.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
