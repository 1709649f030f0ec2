package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLineIndexOutOfRange is returned when a cart edit targets a line that does not exist.
	ErrLineIndexOutOfRange = errors.New("cart line index out of range")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrUnknownField        = errors.New("unknown cart line field")

	// ErrAwaitingConfirmation is returned for edits attempted while a snapshot awaits confirmation.
	ErrAwaitingConfirmation = errors.New("order is awaiting confirmation")
	ErrInvalidTransition    = errors.New("invalid order lifecycle transition")
)

// Reason classifies why an order submission was rejected.
type Reason string

const (
	ReasonMissingField     Reason = "missing_field"
	ReasonInvalidField     Reason = "invalid_field"
	ReasonInsufficientCash Reason = "insufficient_cash"
)

// ValidationError reports the first rule an order submission failed.
type ValidationError struct {
	Reason Reason
	Field  string
}

// ErrInsufficientCash is the errors.Is target for rejections caused by cash
// given below the total. Validate never returns it directly.
var ErrInsufficientCash = &ValidationError{Reason: ReasonInsufficientCash}

func MissingField(field string) *ValidationError {
	return &ValidationError{Reason: ReasonMissingField, Field: field}
}

func InvalidField(field string) *ValidationError {
	return &ValidationError{Reason: ReasonInvalidField, Field: field}
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case ReasonInvalidField:
		return fmt.Sprintf("%s must be valid", e.Field)
	case ReasonInsufficientCash:
		return "cash_given must cover the order total"
	default:
		return string(e.Reason)
	}
}

// Is matches on reason, and on field when the target names one.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok || t.Reason != e.Reason {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}
