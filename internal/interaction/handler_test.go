package interaction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/auth"
	apperrors "github.com/soldout/backend/internal/errors"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) ToggleLike(ctx context.Context, userID int64, target interaction.LikeTarget, likeType interaction.LikeType) (*interaction.LikeResult, error) {
	args := m.Called(ctx, userID, target, likeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interaction.LikeResult), args.Error(1)
}

func (m *MockInteractionService) ToggleSubscription(ctx context.Context, userID, videoID int64) (*interaction.SubscriptionResult, error) {
	args := m.Called(ctx, userID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interaction.SubscriptionResult), args.Error(1)
}

func (m *MockInteractionService) RateVideo(ctx context.Context, userID, videoID int64, value int) (*interaction.RatingResult, error) {
	args := m.Called(ctx, userID, videoID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interaction.RatingResult), args.Error(1)
}

func (m *MockInteractionService) AddTrivia(ctx context.Context, userID, videoID int64, text string) (*interaction.Trivia, error) {
	args := m.Called(ctx, userID, videoID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interaction.Trivia), args.Error(1)
}

func (m *MockInteractionService) ListTrivia(ctx context.Context, videoID int64) ([]interaction.Trivia, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interaction.Trivia), args.Error(1)
}

func setupRouter(service interaction.InteractionService, user *auth.User) *gin.Engine {
	router := testhelper.NewRouter()
	authenticate := func(c *gin.Context) { c.Next() }
	if user != nil {
		authenticate = testhelper.AsUser(user)
	}
	interaction.NewHandler(service, apphttp.NewResponseHandler(testhelper.NewTestLogger(false))).
		RegisterRoutes(router.Group("/api"), authenticate)
	return router
}

func int64Ptr(v int64) *int64 { return &v }

func TestLikeRoute(t *testing.T) {
	user := &auth.User{ID: 1, Role: auth.RoleUser}

	t.Run("toggles the named target", func(t *testing.T) {
		service := new(MockInteractionService)
		service.On("ToggleLike", mock.Anything, int64(1), interaction.CommentTarget(42), interaction.TypeLike).
			Return(&interaction.LikeResult{Action: "created", Liked: true, LikeCount: 1, Type: interaction.TargetComment}, nil)

		w, env := testhelper.DoJSON(setupRouter(service, user), http.MethodPost, "/api/interactions/like",
			interaction.LikeRequest{CommentID: int64Ptr(42)})
		assert.Equal(t, http.StatusOK, w.Code)

		var res interaction.LikeResult
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "created", res.Action)
		assert.Equal(t, interaction.TargetComment, res.Type)
		service.AssertExpectations(t)
	})

	t.Run("rejects two targets", func(t *testing.T) {
		service := new(MockInteractionService)
		w, env := testhelper.DoJSON(setupRouter(service, user), http.MethodPost, "/api/interactions/like",
			interaction.LikeRequest{VideoID: int64Ptr(1), ReplyID: int64Ptr(2)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.CodeMissingFields, env.Error.Code)
		service.AssertNotCalled(t, "ToggleLike")
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		service := new(MockInteractionService)
		w, env := testhelper.DoJSON(setupRouter(service, user), http.MethodPost, "/api/interactions/like",
			interaction.LikeRequest{VideoID: int64Ptr(1), Type: "LOVE"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "type", env.Error.Field)
		service.AssertNotCalled(t, "ToggleLike")
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		service := new(MockInteractionService)
		w, env := testhelper.DoJSON(setupRouter(service, user), http.MethodPost, "/api/interactions/like",
			interaction.LikeRequest{CommentID: int64Ptr(-4)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "commentId", env.Error.Field)
	})

	t.Run("requires identity", func(t *testing.T) {
		service := new(MockInteractionService)
		w, _ := testhelper.DoJSON(setupRouter(service, nil), http.MethodPost, "/api/interactions/like",
			interaction.LikeRequest{VideoID: int64Ptr(1)})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateRoute(t *testing.T) {
	user := &auth.User{ID: 7, Role: auth.RoleUser}
	service := new(MockInteractionService)
	service.On("RateVideo", mock.Anything, int64(7), int64(100), 8).
		Return(&interaction.RatingResult{Rating: &interaction.Rating{Value: 8}, Average: 8, Count: 1}, nil)
	router := setupRouter(service, user)

	for _, value := range []int{0, 11, -3} {
		w, env := testhelper.DoJSON(router, http.MethodPost, "/api/interactions/rate", interaction.RateRequest{VideoID: 100, Value: value})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, apperrors.CodeInvalidRating, env.Error.Code)
		assert.Equal(t, "value", env.Error.Field)
	}

	w, env := testhelper.DoJSON(router, http.MethodPost, "/api/interactions/rate", map[string]int{"value": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeMissingFields, env.Error.Code)
	assert.Equal(t, "videoId", env.Error.Field)

	w, _ = testhelper.DoJSON(router, http.MethodPost, "/api/interactions/rate", interaction.RateRequest{VideoID: 100, Value: 8})
	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertNumberOfCalls(t, "RateVideo", 1)
}

func TestSubscribeRoute(t *testing.T) {
	user := &auth.User{ID: 1, Role: auth.RoleUser}
	service := new(MockInteractionService)
	service.On("ToggleSubscription", mock.Anything, int64(1), int64(100)).
		Return(&interaction.SubscriptionResult{Action: "subscribed", Subscribed: true, CreatorID: 7, SubscriberCount: 1}, nil)

	router := setupRouter(service, user)
	w, env := testhelper.DoJSON(router, http.MethodPost, "/api/interactions/subscribe", interaction.SubscribeRequest{VideoID: 100})
	assert.Equal(t, http.StatusOK, w.Code)
	var res interaction.SubscriptionResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(7), res.CreatorID)

	w, env = testhelper.DoJSON(router, http.MethodPost, "/api/interactions/subscribe", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeMissingFields, env.Error.Code)
	assert.Equal(t, "videoId", env.Error.Field)
}

func TestTriviaRoutes(t *testing.T) {
	user := &auth.User{ID: 1, Role: auth.RoleUser}
	service := new(MockInteractionService)
	service.On("AddTrivia", mock.Anything, int64(1), int64(100), "fun fact").
		Return(&interaction.Trivia{ID: 3, VideoID: 100, UserID: 1, Text: "fun fact"}, nil)
	service.On("ListTrivia", mock.Anything, int64(100)).
		Return([]interaction.Trivia{{ID: 3, VideoID: 100, Text: "fun fact"}}, nil)

	router := setupRouter(service, user)
	w, _ := testhelper.DoJSON(router, http.MethodPost, "/api/interactions/trivia", interaction.TriviaRequest{VideoID: 100, Text: "fun fact"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := testhelper.DoJSON(router, http.MethodGet, "/api/videos/100/trivia", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []interaction.Trivia
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}
