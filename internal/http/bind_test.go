package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Score    int    `json:"score" binding:"min=1,max=10"`
	Kind     string `json:"kind" binding:"omitempty,oneof=LIKE DISLIKE"`
	Parent   *int64 `json:"parentId" binding:"omitempty,min=1"`
}

func bindBody(body string) error {
	c, _ := newContext()
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var req signup
	return c.ShouldBindJSON(&req)
}

func TestBindError(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantCode  string
	}{
		{name: "missing email", body: `{"password":"Secret123","score":5}`, wantField: "email", wantCode: apperrors.CodeMissingFields},
		{name: "malformed email", body: `{"email":"nope","password":"Secret123","score":5}`, wantField: "email", wantCode: apperrors.CodeValidation},
		{name: "short password", body: `{"email":"a@example.com","password":"abc","score":5}`, wantField: "password", wantCode: apperrors.CodeValidation},
		{name: "score above range", body: `{"email":"a@example.com","password":"Secret123","score":11}`, wantField: "score", wantCode: apperrors.CodeValidation},
		{name: "unknown kind", body: `{"email":"a@example.com","password":"Secret123","score":5,"kind":"LOVE"}`, wantField: "kind", wantCode: apperrors.CodeValidation},
		{name: "zero pointer id", body: `{"email":"a@example.com","password":"Secret123","score":5,"parentId":0}`, wantField: "parentId", wantCode: apperrors.CodeValidation},
		{name: "broken json", body: `{"email":`, wantField: "request", wantCode: apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindError(bindBody(tt.body))
			assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(err))
			assert.Equal(t, tt.wantField, apperrors.Field(err))
			assert.Equal(t, tt.wantCode, apperrors.Code(err))
		})
	}

	t.Run("valid body binds", func(t *testing.T) {
		assert.NoError(t, bindBody(`{"email":"a@example.com","password":"Secret123","score":10,"kind":"DISLIKE"}`))
	})

	t.Run("non-binding error", func(t *testing.T) {
		err := BindError(errors.New("EOF"))
		assert.Equal(t, "request", apperrors.Field(err))
	})
}

func TestBindErrorThroughHandleError(t *testing.T) {
	c, w := newContext()
	h := NewResponseHandler(&testLogger{})

	h.HandleError(c, BindError(bindBody(`{"password":"Secret123","score":5}`)), "Invalid request format")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, apperrors.CodeMissingFields, resp.Error.Code)
	assert.Equal(t, "email", resp.Error.Field)
}
