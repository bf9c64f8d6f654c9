package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apphttp.Error  `json:"error"`
}

func setupRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	responseHandler := apphttp.NewResponseHandler(f.logger)
	auth.NewHandler(f.service, responseHandler).RegisterRoutes(router.Group("/api"))

	mw := auth.NewMiddleware(f.service, responseHandler)
	router.GET("/me", mw.Authenticate(), func(c *gin.Context) {
		id, _ := auth.CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	router.GET("/admin", mw.Authenticate(), mw.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/super", mw.Authenticate(), mw.RequireSuperAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/maybe", mw.OptionalAuthenticate(), func(c *gin.Context) {
		_, ok := auth.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestRegisterAPI(t *testing.T) {
	f := newFixture(t)
	router := setupRouter(f)

	t.Run("Successful Registration", func(t *testing.T) {
		w, env := doJSON(router, http.MethodPost, "/api/auth/register", auth.RegisterRequest{
			FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "Pass1234!",
		}, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)

		var resp auth.AuthResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "jane@example.com", resp.User.Email)
	})

	t.Run("Duplicate Registration", func(t *testing.T) {
		w, env := doJSON(router, http.MethodPost, "/api/auth/register", auth.RegisterRequest{
			FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "Pass1234!",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperrors.CodeEmailTaken, env.Error.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w, env := doJSON(router, http.MethodPost, "/api/auth/register", map[string]string{"email": "x@example.com"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.CodeMissingFields, env.Error.Code)
	})

	t.Run("Invalid Email", func(t *testing.T) {
		w, env := doJSON(router, http.MethodPost, "/api/auth/register", auth.RegisterRequest{
			FirstName: "Jane", LastName: "Doe", Email: "jane.example.com", Password: "Pass1234!",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, apperrors.CodeValidation, env.Error.Code)
		assert.Equal(t, "email", env.Error.Field)
	})

	t.Run("Short Password", func(t *testing.T) {
		w, env := doJSON(router, http.MethodPost, "/api/auth/register", auth.RegisterRequest{
			FirstName: "Jane", LastName: "Doe", Email: "short@example.com", Password: "abc",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "password", env.Error.Field)
		_, err := f.users.GetByEmail(context.Background(), "short@example.com")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("Multipart Missing Email", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		writer.WriteField("firstName", "No")
		writer.WriteField("lastName", "Mail")
		writer.WriteField("password", "Pass1234!")
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperrors.CodeMissingFields, env.Error.Code)
		assert.Equal(t, "email", env.Error.Field)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Multipart With Picture", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		writer.WriteField("firstName", "Pic")
		writer.WriteField("lastName", "Ture")
		writer.WriteField("email", "pic@example.com")
		writer.WriteField("password", "Pass1234!")
		part, err := writer.CreateFormFile("profilePicture", "face.png")
		require.NoError(t, err)
		part.Write([]byte("png-bytes"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, 1, f.store.Len())
	})
}

func TestLoginAPI(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "user@example.com", "Pass1234!", auth.RoleUser, false)
	router := setupRouter(f)

	w, env := doJSON(router, http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: "user@example.com", Password: "Pass1234!"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = doJSON(router, http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: "user@example.com", Password: "nope-nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.CodeInvalidCreds, env.Error.Code)

	w, _ = doJSON(router, http.MethodPost, "/api/auth/admin/login", auth.LoginRequest{Email: "user@example.com", Password: "Pass1234!"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = doJSON(router, http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: "user@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeMissingFields, env.Error.Code)
	assert.Equal(t, "password", env.Error.Field)

	w, env = doJSON(router, http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: "not-an-email", Password: "Pass1234!"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email", env.Error.Field)
}

func TestMiddleware(t *testing.T) {
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	f := newFixture(t)
	user := f.seed(t, "user@example.com", "Pass1234!", auth.RoleUser, false)
	admin := f.seed(t, "admin@example.com", "Pass1234!", auth.RoleAdmin, false)
	super := f.seed(t, "super@example.com", "Pass1234!", auth.RoleSuperAdmin, false)
	router := setupRouter(f)

	token := func(u *auth.User) string {
		tok, err := f.tokens.IssueToken(u, time.Hour)
		require.NoError(t, err)
		return tok
	}

	t.Run("missing token", func(t *testing.T) {
		w, env := doJSON(router, http.MethodGet, "/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.CodeInvalidToken, env.Error.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w, _ := doJSON(router, http.MethodGet, "/me", nil, token(user))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
	})

	t.Run("role gates", func(t *testing.T) {
		w, _ := doJSON(router, http.MethodGet, "/admin", nil, token(user))
		assert.Equal(t, http.StatusForbidden, w.Code)
		w, _ = doJSON(router, http.MethodGet, "/admin", nil, token(admin))
		assert.Equal(t, http.StatusOK, w.Code)
		w, _ = doJSON(router, http.MethodGet, "/super", nil, token(admin))
		assert.Equal(t, http.StatusForbidden, w.Code)
		w, _ = doJSON(router, http.MethodGet, "/super", nil, token(super))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("optional auth", func(t *testing.T) {
		w, _ := doJSON(router, http.MethodGet, "/maybe", nil, "")
		assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
		w, _ = doJSON(router, http.MethodGet, "/maybe", nil, "garbage")
		assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
		w, _ = doJSON(router, http.MethodGet, "/maybe", nil, token(user))
		assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())
	})

	t.Run("banned after issue", func(t *testing.T) {
		tok := token(user)
		require.NoError(t, f.users.Update(ctx, user.ID, map[string]interface{}{"is_banned": true}))
		w, env := doJSON(router, http.MethodGet, "/me", nil, tok)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, apperrors.CodeAccountBanned, env.Error.Code)
	})
}
