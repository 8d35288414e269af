package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. Code and the wrapped cause are
// internal only; clients see Message and HTTPStatus.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// NewValidationError flags an unreadable request payload.
func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, nil)
}

// NewTicketNotFound signals an absent ticket, by public or internal id.
func NewTicketNotFound() error {
	return NewDomainError("NOT_FOUND", "Ticket Not Found", http.StatusNotFound, nil)
}

// NewAdminOnly signals an admin credential mismatch.
func NewAdminOnly() error {
	return NewDomainError("FORBIDDEN", "Admin Only", http.StatusForbidden, nil)
}

// NewStorageError wraps a store connectivity or query failure.
func NewStorageError(message string, err error) error {
	return NewDomainError("STORAGE_ERROR", message, http.StatusInternalServerError, err)
}

// NewNotificationError wraps an email delivery failure. Never surfaced as an
// HTTP failure on the create path; the status matters only if one escapes.
func NewNotificationError(err error) error {
	return NewDomainError("NOTIFICATION_FAILED", "Error Sending Notification Email", http.StatusInternalServerError, err)
}

// NewInternalError wraps anything unexpected.
func NewInternalError(err error) error {
	return NewDomainError("INTERNAL_ERROR", "internal server error", http.StatusInternalServerError, err)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewTicketNotFound().(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
