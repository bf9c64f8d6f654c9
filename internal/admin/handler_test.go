package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/admin"
	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/video"
	"github.com/soldout/backend/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Dashboard(ctx context.Context) (*admin.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Dashboard), args.Error(1)
}

func (m *MockAdminService) Videos(ctx context.Context, status video.Status) ([]video.Video, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]video.Video), args.Error(1)
}

func (m *MockAdminService) Video(ctx context.Context, id int64) (*video.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func (m *MockAdminService) Users(ctx context.Context) ([]admin.UserSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]admin.UserSummary), args.Error(1)
}

func (m *MockAdminService) Admins(ctx context.Context) ([]auth.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]auth.User), args.Error(1)
}

func (m *MockAdminService) UpdateUser(ctx context.Context, actor *auth.User, userID int64, req admin.UpdateUserRequest) (*auth.User, error) {
	args := m.Called(ctx, actor, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockAdminService) Ban(ctx context.Context, actor *auth.User, userID int64, reason string) (*auth.User, error) {
	args := m.Called(ctx, actor, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockAdminService) Unban(ctx context.Context, actor *auth.User, userID int64) (*auth.User, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockAdminService) RegisterAdmin(ctx context.Context, actor *auth.User, req admin.RegisterAdminRequest) (*auth.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockAdminService) Promote(ctx context.Context, actor *auth.User, userID int64) (*auth.User, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockAdminService) DeleteAdmin(ctx context.Context, actor *auth.User, userID int64) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

func (m *MockAdminService) AuditLogs(ctx context.Context, page, limit int) ([]admin.AuditLog, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]admin.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) ChangePassword(ctx context.Context, actor *auth.User, req admin.ChangePasswordRequest) error {
	args := m.Called(ctx, actor, req)
	return args.Error(0)
}

func setupRouter(service admin.AdminService, actor *auth.User) *gin.Engine {
	router := testhelper.NewRouter()
	responses := apphttp.NewResponseHandler(testhelper.NewTestLogger(false))
	guard := auth.NewMiddleware(nil, responses)

	group := router.Group("/api/admin", testhelper.AsUser(actor), guard.RequireAdmin())
	admin.NewHandler(service, responses).RegisterRoutes(group, guard.RequireSuperAdmin())
	return router
}

var (
	superUser = &auth.User{ID: 1, Role: auth.RoleSuperAdmin}
	adminUser = &auth.User{ID: 2, Role: auth.RoleAdmin}
	plainUser = &auth.User{ID: 3, Role: auth.RoleUser}
)

func TestAdminGuard(t *testing.T) {
	service := new(MockAdminService)
	w, _ := testhelper.DoJSON(setupRouter(service, plainUser), http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	service.AssertNotCalled(t, "Dashboard", mock.Anything)
}

func TestDashboardRoute(t *testing.T) {
	service := new(MockAdminService)
	service.On("Dashboard", mock.Anything).Return(&admin.Dashboard{PendingVideos: 4, TotalUsers: 9}, nil)

	w, env := testhelper.DoJSON(setupRouter(service, adminUser), http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var out map[string]int64
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, int64(4), out["pendingVideos"])
	assert.Equal(t, int64(9), out["totalUsers"])
}

func TestVideoQueueRoutes(t *testing.T) {
	service := new(MockAdminService)
	service.On("Videos", mock.Anything, video.StatusPending).Return([]video.Video{{ID: 1}}, nil)
	service.On("Videos", mock.Anything, video.StatusRejected).Return([]video.Video{}, nil)
	router := setupRouter(service, adminUser)

	w, _ := testhelper.DoJSON(router, http.MethodGet, "/api/admin/videos/pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = testhelper.DoJSON(router, http.MethodGet, "/api/admin/videos/rejected", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestUsersRouteIncludesVideoCount(t *testing.T) {
	service := new(MockAdminService)
	service.On("Users", mock.Anything).Return([]admin.UserSummary{
		{User: auth.User{ID: 7, FirstName: "Mo", Role: auth.RoleAdmin}, VideoCount: 3},
	}, nil)

	w, env := testhelper.DoJSON(setupRouter(service, adminUser), http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, float64(3), rows[0]["videoCount"])
	assert.Equal(t, true, rows[0]["isAdmin"])
	assert.Equal(t, "Mo", rows[0]["firstName"])
	assert.NotContains(t, rows[0], "password")
}

func TestBanRoute(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		service := new(MockAdminService)
		service.On("Ban", mock.Anything, adminUser, int64(3), "spam").Return(&auth.User{ID: 3, IsBanned: true}, nil)

		w, _ := testhelper.DoJSON(setupRouter(service, adminUser), http.MethodPost, "/api/admin/users/3/ban", admin.BanRequest{Reason: "spam"})
		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("forbidden target", func(t *testing.T) {
		service := new(MockAdminService)
		service.On("Ban", mock.Anything, adminUser, int64(1), "").
			Return(nil, apperrors.NewForbidden("A super admin cannot be banned"))

		w, env := testhelper.DoJSON(setupRouter(service, adminUser), http.MethodPost, "/api/admin/users/1/ban", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, env.Success)
	})
}

func TestSuperAdminRoutes(t *testing.T) {
	req := admin.RegisterAdminRequest{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "Secret123"}

	t.Run("admin is rejected before the service", func(t *testing.T) {
		service := new(MockAdminService)
		router := setupRouter(service, adminUser)

		w, _ := testhelper.DoJSON(router, http.MethodPost, "/api/admin/register", req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		w, _ = testhelper.DoJSON(router, http.MethodDelete, "/api/admin/admins/5", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		w, _ = testhelper.DoJSON(router, http.MethodGet, "/api/admin/audit-logs", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, service.Calls)
	})

	t.Run("register returns 201", func(t *testing.T) {
		service := new(MockAdminService)
		service.On("RegisterAdmin", mock.Anything, superUser, req).Return(&auth.User{ID: 10, Role: auth.RoleAdmin}, nil)

		w, _ := testhelper.DoJSON(setupRouter(service, superUser), http.MethodPost, "/api/admin/register", req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("register validates the body", func(t *testing.T) {
		service := new(MockAdminService)
		router := setupRouter(service, superUser)

		bad := req
		bad.Email = "not-an-email"
		w, env := testhelper.DoJSON(router, http.MethodPost, "/api/admin/register", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "email", env.Error.Field)

		bad = req
		bad.Password = "short"
		w, env = testhelper.DoJSON(router, http.MethodPost, "/api/admin/register", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "password", env.Error.Field)

		w, env = testhelper.DoJSON(router, http.MethodPost, "/api/admin/promote", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.CodeMissingFields, env.Error.Code)
		assert.Empty(t, service.Calls)
	})

	t.Run("promote", func(t *testing.T) {
		service := new(MockAdminService)
		service.On("Promote", mock.Anything, superUser, int64(2)).Return(&auth.User{ID: 2, Role: auth.RoleSuperAdmin}, nil)

		w, _ := testhelper.DoJSON(setupRouter(service, superUser), http.MethodPost, "/api/admin/promote", admin.PromoteRequest{UserID: 2})
		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("delete super admin is forbidden", func(t *testing.T) {
		service := new(MockAdminService)
		service.On("DeleteAdmin", mock.Anything, superUser, int64(1)).Return(apperrors.NewForbidden("A super admin cannot be deleted"))

		w, _ := testhelper.DoJSON(setupRouter(service, superUser), http.MethodDelete, "/api/admin/admins/1", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("audit logs are paginated", func(t *testing.T) {
		service := new(MockAdminService)
		service.On("AuditLogs", mock.Anything, 2, 10).Return([]admin.AuditLog{{ID: 1, Action: admin.ActionBanned}}, int64(11), nil)

		w, _ := testhelper.DoJSON(setupRouter(service, superUser), http.MethodGet, "/api/admin/audit-logs?page=2&limit=10", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var body apphttp.PaginatedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotNil(t, body.Pagination)
		assert.Equal(t, 2, body.Pagination.CurrentPage)
		assert.Equal(t, 2, body.Pagination.TotalPages)
		assert.Equal(t, int64(11), body.Pagination.TotalRecords)
	})
}

func TestChangePasswordRoute(t *testing.T) {
	service := new(MockAdminService)
	req := admin.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "NewSecret1"}
	service.On("ChangePassword", mock.Anything, adminUser, req).
		Return(apperrors.NewAuthenticationError(apperrors.CodeInvalidCreds, "Current password is incorrect"))

	w, env := testhelper.DoJSON(setupRouter(service, adminUser), http.MethodPost, "/api/admin/change-password", req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.CodeInvalidCreds, env.Error.Code)
}
