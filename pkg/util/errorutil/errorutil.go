package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres error code for a unique constraint breach.
const pgUniqueViolation = "23505"

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
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
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewDuplicateNumber signals a complaint number uniqueness violation.
func NewDuplicateNumber(number string) error {
	return NewDomainError(
		"DUPLICATE_NUMBER",
		"número da denúncia já existe",
		http.StatusConflict,
		map[string]any{"number": number},
	)
}

// NewInvalidTransition signals an approval decision on a non-pending record.
func NewInvalidTransition(current string) error {
	return NewDomainError(
		"INVALID_TRANSITION",
		"approval is no longer pending",
		http.StatusConflict,
		map[string]any{"current_status": current},
	)
}

// NewMissingComments signals a rejection submitted without a stated reason.
func NewMissingComments() error {
	return NewDomainError("MISSING_COMMENTS", "rejection requires comments", http.StatusBadRequest, nil)
}

// NewArchivedImmutable signals an edit to a field other than status on an
// archived case.
func NewArchivedImmutable(caseID string) error {
	return NewDomainError(
		"ARCHIVED",
		"archived complaint is read-only except for status",
		http.StatusConflict,
		map[string]any{"complaint_id": caseID},
	)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Storage-layer errors
// surface as internal failures; they are not retried here.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		// The unique index on complaints.number backstops the application
		// pre-check when two writers race.
		if de, ok := NewDuplicateNumber("").(*DomainError); ok {
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

func MapError(err error) error {
	return ToDomainError(err)
}
