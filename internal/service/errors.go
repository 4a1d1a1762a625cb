package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the caller's key does not match the configured secret
	ErrUnauthorized = errors.New("unauthorised")
	// ErrProviderFailure covers transport errors, bad statuses and malformed provider replies
	ErrProviderFailure = errors.New("completion provider failure")
	// ErrTokenLimitExceeded is returned when the recipe completion used more tokens than allowed
	ErrTokenLimitExceeded = errors.New("token limit exceeded")
	// ErrResponseParse is returned when an expected marker or section is missing from a completion
	ErrResponseParse = errors.New("unable to process the completion")
)

// ProviderError describes a failed completion call
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "completion provider: " + msg
}

func (e *ProviderError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrProviderFailure, e.Err}
	}
	return []error{ErrProviderFailure}
}

// ParseError names the marker or section that could not be found
type ParseError struct {
	Stage   string
	Missing string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s completion: missing %q", e.Stage, e.Missing)
}

func (e *ParseError) Unwrap() error {
	return ErrResponseParse
}
