package cli

import (
	"errors"

	"github.com/yaklabco/tagforest/pkg/runner"
)

// Exit codes for tagforest.
const (
	// ExitSuccess indicates successful execution with no failing diagnostics.
	ExitSuccess = 0

	// ExitIssuesErrors indicates analysis found error-severity diagnostics
	// or unreadable files.
	ExitIssuesErrors = 1

	// ExitIssuesWarnings indicates analysis found warnings in strict mode.
	ExitIssuesWarnings = 2

	// ExitFailure indicates the command itself failed.
	ExitFailure = 1
)

// issuesError carries the exit code for a run that found issues.
type issuesError struct {
	code int
}

func (e *issuesError) Error() string { return ErrIssuesFound.Error() }

func (e *issuesError) Unwrap() error { return ErrIssuesFound }

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var issues *issuesError
	if errors.As(err, &issues) {
		return issues.code
	}
	return ExitFailure
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result.HasFailures():
		return ExitIssuesErrors
	case strict && result.HasWarnings():
		return ExitIssuesWarnings
	default:
		return ExitSuccess
	}
}
