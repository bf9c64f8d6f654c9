package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", NewValidationErrorCode("value", CodeInvalidRating, "bad"), http.StatusBadRequest, CodeInvalidRating},
		{"authentication", NewAuthenticationError(CodeTokenExpired, "expired"), http.StatusUnauthorized, CodeTokenExpired},
		{"authorization", NewForbidden("no"), http.StatusForbidden, CodeForbidden},
		{"not found", NewNotFoundError(CodeTargetNotFound, "gone"), http.StatusNotFound, CodeTargetNotFound},
		{"conflict", NewConflictError(CodeEmailTaken, "taken"), http.StatusConflict, CodeEmailTaken},
		{"storage", NewStorageError("db", stderrors.New("down")), http.StatusInternalServerError, CodeInternal},
		{"plain", stderrors.New("plain"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, HTTPStatus(tc.err))
			assert.Equal(t, tc.code, Code(tc.err))
		})
	}
}

func TestWrappedErrorsKeepTheirClass(t *testing.T) {
	err := fmt.Errorf("toggle like: %w", NewNotFoundError(CodeTargetNotFound, "gone"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.True(t, IsClientError(err))
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewStorageError("failed to save like", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save like: connection reset", err.Error())
}

func TestField(t *testing.T) {
	assert.Equal(t, "email", Field(NewValidationError("email", "required")))
	assert.Empty(t, Field(NewForbidden("no")))
}
