package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrFetchFailed   = errors.New("commission fetch failed")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// FetchError describes a failed attempt to load the commission list. Transport
// errors, non-2xx statuses and undecodable bodies all surface as a FetchError;
// callers do not distinguish between them.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	subject := "fetch"
	if e.URL != "" {
		subject += " " + e.URL
	}
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", subject, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", subject, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", subject, e.Err)
	default:
		return subject + " failed"
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports ErrFetchFailed as a match so callers can test the error kind
// without caring about the underlying cause.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
