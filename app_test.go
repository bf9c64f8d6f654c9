package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/config"
	"github.com/soldout/backend/internal/events"
	"github.com/soldout/backend/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
environment: test
database:
  host: db.local
  user: soldout
  dbname: soldout_test
storage:
  driver: local
  uploadDir: %s
auth:
  bcryptCost: 4
  superAdmin:
    email: root@example.com
    password: RootPass123
`

func newTestApp(t *testing.T) (*App, *testhelper.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	require.NoError(t, os.MkdirAll(uploads, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config_test.yaml"), []byte(fmt.Sprintf(testConfig, uploads)), 0o600))
	t.Setenv("ENV", "test")

	log := testhelper.NewTestLogger(false)
	cfg, err := config.NewConfigService(log).Load(dir)
	require.NoError(t, err)

	users := testhelper.NewUserRepository()
	app := &App{
		config:    cfg,
		logger:    log,
		store:     testhelper.NewFileStore(),
		publisher: events.NoopPublisher{},
	}
	repos := repositories{
		users:        users,
		videos:       testhelper.NewVideoRepository(users),
		comments:     testhelper.NewCommentRepository(users),
		interactions: testhelper.NewInteractionRepository(users),
		audits:       testhelper.NewAuditRepository(),
	}
	require.NoError(t, app.buildHandlers(context.Background(), repos))
	require.NoError(t, app.setupRoutes())
	return app, users
}

func TestSetupRoutes(t *testing.T) {
	app, users := newTestApp(t)

	t.Run("seeds the configured super admin", func(t *testing.T) {
		root, err := users.GetByEmail(context.Background(), "root@example.com")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleSuperAdmin, root.Role)
	})

	t.Run("health without dependency checks", func(t *testing.T) {
		w, env := testhelper.Do(app.router, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
	})

	t.Run("public list", func(t *testing.T) {
		w, _ := testhelper.DoJSON(app.router, http.MethodGet, "/api/videos/approved", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("writes need a token", func(t *testing.T) {
		w, _ := testhelper.DoJSON(app.router, http.MethodPost, "/api/interactions/like", map[string]interface{}{"videoId": 1, "type": "LIKE"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin routes need a token", func(t *testing.T) {
		w, _ := testhelper.DoJSON(app.router, http.MethodGet, "/api/admin/dashboard", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin login reaches the dashboard", func(t *testing.T) {
		w, env := testhelper.DoJSON(app.router, http.MethodPost, "/api/auth/admin/login",
			map[string]string{"email": "root@example.com", "password": "RootPass123"})
		require.Equal(t, http.StatusOK, w.Code)

		var login auth.AuthResponse
		require.NoError(t, json.Unmarshal(env.Data, &login))
		require.NotEmpty(t, login.Token)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+login.Token)
		w, env = testhelper.Do(app.router, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"pendingVideos":0,"approvedVideos":0,"rejectedVideos":0,"totalUsers":1}`, string(env.Data))
	})

	t.Run("request id is echoed", func(t *testing.T) {
		w, _ := testhelper.DoJSON(app.router, http.MethodGet, "/api/videos/approved", nil)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestShutdownWithoutServer(t *testing.T) {
	app, _ := newTestApp(t)
	assert.NoError(t, app.Shutdown())
}
