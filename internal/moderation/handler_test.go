package moderation_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/moderation"
	"github.com/soldout/backend/internal/video"
	"github.com/soldout/backend/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockModerator struct {
	mock.Mock
}

func (m *MockModerator) Approve(ctx context.Context, videoID int64, actor *auth.User) (*video.Video, error) {
	args := m.Called(ctx, videoID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func (m *MockModerator) Reject(ctx context.Context, videoID int64, actor *auth.User, reason string) (*video.Video, error) {
	args := m.Called(ctx, videoID, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func (m *MockModerator) Unpublish(ctx context.Context, videoID int64, actor *auth.User) (*video.Video, error) {
	args := m.Called(ctx, videoID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func TestModerationRoutes(t *testing.T) {
	admin := &auth.User{ID: 2, Role: auth.RoleAdmin}
	moderator := new(MockModerator)
	moderator.On("Approve", mock.Anything, int64(5), admin).Return(&video.Video{ID: 5, Status: video.StatusApproved}, nil)
	moderator.On("Reject", mock.Anything, int64(5), admin, "spam").Return(&video.Video{ID: 5, Status: video.StatusRejected}, nil)
	moderator.On("Reject", mock.Anything, int64(7), admin, "").Return(&video.Video{ID: 7, Status: video.StatusRejected}, nil)
	moderator.On("Unpublish", mock.Anything, int64(6), admin).
		Return(nil, apperrors.NewConflictError(apperrors.CodeInvalidTransition, "Cannot move video from PENDING to PENDING"))

	router := testhelper.NewRouter()
	group := router.Group("/api/admin", testhelper.AsUser(admin))
	moderation.NewHandler(moderator, apphttp.NewResponseHandler(testhelper.NewTestLogger(false))).RegisterRoutes(group)

	w, env := testhelper.DoJSON(router, http.MethodPost, "/api/admin/videos/5/approve", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = testhelper.DoJSON(router, http.MethodPost, "/api/admin/videos/5/reject", moderation.RejectRequest{Reason: "spam"})
	assert.Equal(t, http.StatusOK, w.Code)

	// reason is optional
	w, _ = testhelper.DoJSON(router, http.MethodPost, "/api/admin/videos/7/reject", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = testhelper.DoJSON(router, http.MethodPost, "/api/admin/videos/6/unpublish", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.CodeInvalidTransition, env.Error.Code)

	w, _ = testhelper.DoJSON(router, http.MethodPost, "/api/admin/videos/zero/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	moderator.AssertExpectations(t)
}
