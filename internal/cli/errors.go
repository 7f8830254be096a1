// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitFailure covers failed commands, missing input and not-found records
	ExitFailure = 1
	// ExitUsageError indicates an unknown command or malformed option
	ExitUsageError = 2
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError is a command line that cannot be interpreted at all.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// MissingArgumentError is a command run without its required input.
type MissingArgumentError struct {
	Command  string
	Argument string
	Usage    string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s requires %s\nUsage: %s", e.Command, e.Argument, e.Usage)
}

// NotFoundError is a record the portal does not have. Msg is the localized
// message shown to the user.
type NotFoundError struct {
	Resource string
	ID       string
	Msg      string
}

func (e *NotFoundError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Msg, e.ID)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// CommandError wraps a failure of a command's action.
type CommandError struct {
	Command string
	Action  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ReportedError is a failure the command has already shown to the user. It
// still sets the exit code but is not printed again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// =============================================================================
// HELPERS
// =============================================================================

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}
	return ExitFailure
}

// DisplayError writes err to w, as a JSON error envelope in JSON mode.
func DisplayError(w io.Writer, command string, err error, jsonMode bool) {
	var reported *ReportedError
	if err == nil || errors.As(err, &reported) {
		return
	}
	if jsonMode {
		_ = NewJSONErrorResponse(command, err).Write(w)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}
