package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyStaleAccounts is returned when the account chooser keeps
	// coming back after the configured number of deletions.
	ErrTooManyStaleAccounts = errors.New("too many stale accounts")

	// ErrNoImage means an image request had neither data nor a path.
	ErrNoImage = errors.New("no image supplied")

	// ErrAmbiguousImage means an image request had both data and a path.
	ErrAmbiguousImage = errors.New("image data and path are mutually exclusive")

	// ErrInvalidPassword is returned when every password attempt was rejected.
	ErrInvalidPassword = errors.New("password rejected")
)

// NotFoundError reports a UI element that was not visible when required.
type NotFoundError struct {
	Action   UIAction
	Selector Selector
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (%s)", e.Action, e.Selector)
}

// ActionRejectedError reports a step that was attempted but failed.
type ActionRejectedError struct {
	Step UIAction
	Err  error
}

func (e *ActionRejectedError) Error() string {
	return fmt.Sprintf("%s rejected: %v", e.Step, e.Err)
}

func (e *ActionRejectedError) Unwrap() error {
	return e.Err
}

// ParseError reports a model response that could not be decoded.
type ParseError struct {
	Payload string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
