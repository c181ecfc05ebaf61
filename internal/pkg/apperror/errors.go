package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is the cause for tracking points outside the operating area
	ErrOutOfBounds = errors.New("coordinates outside operating area")
	// ErrRateCardIncomplete is the cause when a truck lacks a per-km rate or a minimum charge
	ErrRateCardIncomplete = errors.New("truck rate card is incomplete")
	// ErrInvalidTransition is the cause for status changes missing from the transition table
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrStaleState is the cause when a compare-and-set lost to a concurrent writer
	ErrStaleState = errors.New("record changed concurrently")
)

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Msg != "" && e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type AuthorizationError struct {
	Action string
	Msg    string
}

func (e AuthorizationError) Error() string {
	switch {
	case e.Msg != "" && e.Action != "":
		return fmt.Sprintf("not allowed to %s: %s", e.Action, e.Msg)
	case e.Action != "":
		return fmt.Sprintf("not allowed to %s", e.Action)
	case e.Msg != "":
		return e.Msg
	}
	return "not allowed"
}

type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.ID != "":
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return "not found"
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ConflictError reports a violated state precondition. From and To are set
// for rejected transitions so the caller sees both states.
type ConflictError struct {
	Resource string
	Msg      string
	From     string
	To       string
	Err      error
}

func (e ConflictError) Error() string {
	if e.From != "" || e.To != "" {
		return fmt.Sprintf("%s: cannot move from %q to %q", e.resource(), e.From, e.To)
	}
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	}
	return "conflict"
}

func (e ConflictError) resource() string {
	if e.Resource == "" {
		return "status"
	}
	return e.Resource
}

func (e ConflictError) Unwrap() error { return e.Err }

// DependencyError wraps a failure of an external collaborator
type DependencyError struct {
	Dependency string
	Err        error
}

func (e DependencyError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s unavailable", e.Dependency)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e DependencyError) Unwrap() error { return e.Err }

// ManualInterventionRequired signals a refund that could not be completed
// automatically because the funds already left escrow.
type ManualInterventionRequired struct {
	PaymentID string
	Reason    string
}

func (e ManualInterventionRequired) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("payment %s requires manual processing", e.PaymentID)
	}
	return fmt.Sprintf("payment %s requires manual processing: %s", e.PaymentID, e.Reason)
}

// InvalidTransition builds the conflict returned for an edge missing from the table
func InvalidTransition(from, to string) error {
	return ConflictError{Resource: "booking status", From: from, To: to, Err: ErrInvalidTransition}
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target AuthorizationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsDependency(err error) bool {
	var target DependencyError
	return errors.As(err, &target)
}

func IsManualIntervention(err error) bool {
	var target ManualInterventionRequired
	return errors.As(err, &target)
}
