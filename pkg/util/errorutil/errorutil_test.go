package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewDuplicateNumber("DEN-001")
	mapped := ToDomainError(original)

	require.NotNil(t, mapped)
	assert.Equal(t, "DUPLICATE_NUMBER", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.Equal(t, "DEN-001", mapped.Details["number"])
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)

	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	mapped := ToDomainError(&pgconn.PgError{Code: "23505"})

	require.NotNil(t, mapped)
	assert.Equal(t, "DUPLICATE_NUMBER", mapped.Code)
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))

	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.EqualError(t, mapped, "internal server error: boom")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewInvalidTransition("Aprovado"), "INVALID_TRANSITION", http.StatusConflict},
		{NewMissingComments(), "MISSING_COMMENTS", http.StatusBadRequest},
		{NewArchivedImmutable("c1"), "ARCHIVED", http.StatusConflict},
		{NewValidationError("bad", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("complaint", nil), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("role"), "FORBIDDEN", http.StatusForbidden},
	}

	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}
