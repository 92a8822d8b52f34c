package fetcher

import (
	"fmt"
	"time"
)

// TimeoutError reports a fetch that exceeded its deadline.
type TimeoutError struct {
	Source  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch %s timed out after %s", e.Source, e.Timeout)
}

// HTTPError reports a non-2xx upstream response.
type HTTPError struct {
	Source     string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: upstream returned %s", e.Source, e.Status)
}

// ParseError reports a malformed feed or page body. Callers may skip the
// source and continue.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
