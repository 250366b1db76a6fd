package errors

import (
	"context"
	"errors"
	"strings"
)

// UpdateError is the classified form of a failure, carrying everything the
// CLI needs to print a useful message and pick an exit code.
type UpdateError struct {
	Message     string
	Details     string
	Suggestion  string
	ExitCode    int
	IsRetryable bool
}

// Handler classifies raw errors from the update engine into UpdateError.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Classify maps an error to a user-facing UpdateError.
func (h *Handler) Classify(err error) UpdateError {
	if err == nil {
		return UpdateError{ExitCode: ExitCodeSuccess}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return UpdateError{
			Message:     "operation timed out",
			Details:     err.Error(),
			ExitCode:    ExitCodeTimeout,
			IsRetryable: true,
		}
	}

	if errors.Is(err, ErrUnsupportedSource) {
		return UpdateError{
			Message:    "no updater supports this project's upstream URL",
			Details:    err.Error(),
			Suggestion: "supported sources: git remotes, crates.io, GitHub release archives",
			ExitCode:   ExitCodeUnsupportedSource,
		}
	}

	var remoteErr *RemoteDiscoveryError
	if errors.As(err, &remoteErr) {
		return UpdateError{
			Message:    "could not determine the upstream remote or its default branch",
			Details:    err.Error(),
			Suggestion: "check that the recorded upstream URL is reachable and is a git repository",
			ExitCode:   ExitCodeRemoteDiscovery,
		}
	}

	var noVersionErr *NoMatchingVersionError
	if errors.As(err, &noVersionErr) {
		return UpdateError{
			Message:    "no upstream version is compatible with the recorded one",
			Details:    err.Error(),
			Suggestion: "the upstream may have changed its tag scheme; record a new baseline version manually",
			ExitCode:   ExitCodeNoMatchingVersion,
		}
	}

	var ancestryErr *AncestryCheckError
	if errors.As(err, &ancestryErr) {
		return UpdateError{
			Message:  "ancestry check failed",
			Details:  err.Error(),
			ExitCode: ExitCodeAncestryCheck,
		}
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return UpdateError{
			Message:     "network or subprocess failure",
			Details:     err.Error(),
			Suggestion:  "re-run the check once the transient condition clears",
			ExitCode:    ExitCodeNetworkError,
			IsRetryable: true,
		}
	}

	errStr := err.Error()
	if strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "dial tcp") {
		return UpdateError{
			Message:     "network error occurred",
			Details:     errStr,
			Suggestion:  "check your internet connection and try again",
			ExitCode:    ExitCodeNetworkError,
			IsRetryable: true,
		}
	}

	if strings.Contains(errStr, "git") {
		return UpdateError{
			Message:  "git command failed",
			Details:  errStr,
			ExitCode: ExitCodeGitError,
		}
	}

	return UpdateError{
		Message:  "update failed",
		Details:  errStr,
		ExitCode: ExitCodeGenericError,
	}
}
