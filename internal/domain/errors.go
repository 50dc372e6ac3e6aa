package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoActiveEditor indicates there is no file (or no selection) to link to
	ErrNoActiveEditor = errors.New("no active editor")

	// ErrNotInWorkspace indicates the file is outside every workspace folder
	ErrNotInWorkspace = errors.New("file is not part of a workspace")

	// ErrNoRemote indicates the repository has no configured remotes
	ErrNoRemote = errors.New("no git remote")

	// ErrVCSQueryFailed indicates a git query failed unexpectedly
	ErrVCSQueryFailed = errors.New("git query failed")

	// ErrUnsupportedProvider indicates the remote matched no known hosting provider
	ErrUnsupportedProvider = errors.New("unsupported git provider")

	// ErrInvalidLine indicates a line number below 1
	ErrInvalidLine = errors.New("invalid line number")
)

// VCSError represents a failed version-control query
type VCSError struct {
	Op  string
	Err error
}

func (e *VCSError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *VCSError) Unwrap() error {
	return e.Err
}

// Is reports every VCSError as ErrVCSQueryFailed.
func (e *VCSError) Is(target error) bool {
	return target == ErrVCSQueryFailed
}

// NewVCSError creates a new VCSError
func NewVCSError(op string, err error) *VCSError {
	return &VCSError{Op: op, Err: err}
}

// UnsupportedProviderError carries the remote that could not be resolved
type UnsupportedProviderError struct {
	Remote string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported git provider for remote %q", e.Remote)
}

func (e *UnsupportedProviderError) Is(target error) bool {
	return target == ErrUnsupportedProvider
}

// Message turns an error into the text shown to the user.
func Message(err error) string {
	var vcsErr *VCSError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoActiveEditor):
		return "No active editor found"
	case errors.Is(err, ErrNotInWorkspace):
		return "File is not part of a workspace"
	case errors.Is(err, ErrNoRemote):
		return "No git remote found"
	case errors.Is(err, ErrUnsupportedProvider):
		return "Could not generate link. Unsupported git provider."
	case errors.As(err, &vcsErr):
		return "Error generating link: " + vcsErr.Err.Error()
	default:
		return "Error: " + err.Error()
	}
}
