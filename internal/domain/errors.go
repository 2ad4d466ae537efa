package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoTerminology is wrapped by LookupError
var ErrNoTerminology = errors.New("no terminology")

// ValidationError reports a malformed terminology source
type ValidationError struct {
	Source string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Source == "" {
		return "invalid terminology: " + e.Reason
	}
	return fmt.Sprintf("invalid terminology %s: %s", e.Source, e.Reason)
}

// LookupError reports a (domain, language) pair without terminology
type LookupError struct {
	Domain   string
	Language string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no terminology found for %s", NewScope(e.Domain, e.Language))
}

func (e *LookupError) Unwrap() error {
	return ErrNoTerminology
}

// TransportError reports a failure of the external translation provider
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("translation provider %s: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TimeoutError reports an external call that exceeded its deadline
type TimeoutError struct {
	Provider string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("translation provider %s timed out after %s", e.Provider, e.Timeout)
}
