package resolve

import (
	"errors"
	"fmt"
)

// Resolution failure kinds. Every error returned by Resolve wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	ErrInvalidPullRequestURL = errors.New("invalid pull request URL")
	ErrMissingPRNumber       = errors.New("pull request number not specified")
	ErrInvalidNumber         = errors.New("invalid pull request number")
	ErrUnrecognizedFormat    = errors.New("unrecognized pull request reference")
	ErrInvalidRepoHint       = errors.New("invalid repository, expected owner/repo")
	ErrNoRepositoryContext   = errors.New("no repository context")
	ErrUnsupportedRemoteHost = errors.New("unsupported remote host")
)

// Error describes why a token could not be resolved.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Input is the offending string: the token, the repo hint, or the remote URL.
	Input string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Kind, e.Input)
	if e.Input == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, input string, cause error) *Error {
	return &Error{Kind: kind, Input: input, Err: cause}
}
