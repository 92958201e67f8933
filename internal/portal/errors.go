// Package portal defines the common structs and errors used throughout the
// Paynova page objects.
package portal

import (
	"errors"
	"fmt"
)

var (
	ErrLoginFailed     = errors.New("login failed")
	ErrElementNotFound = errors.New("element not found")
	ErrModalNotFound   = errors.New("modal not found")
	ErrRequestNotInbox = errors.New("request not found in inbox")
	ErrTimeout         = errors.New("operation timed out")
)

// PortalError provides detailed error context
type PortalError struct {
	Page      string
	Operation string
	Cause     error
	Details   string
}

func (e *PortalError) Error() string {
	return fmt.Sprintf("[%s] %s failed: %v - %s", e.Page, e.Operation, e.Cause, e.Details)
}

func (e *PortalError) Unwrap() error {
	return e.Cause
}
