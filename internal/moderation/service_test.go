package moderation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/config"
	apperrors "github.com/soldout/backend/internal/errors"
	"github.com/soldout/backend/internal/events"
	"github.com/soldout/backend/internal/moderation"
	"github.com/soldout/backend/internal/video"
	"github.com/soldout/backend/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateLists(context.Context) { c.calls++ }

type fixture struct {
	service *moderation.Service
	users   *testhelper.UserRepository
	videos  *testhelper.VideoRepository
	events  *testhelper.EventRecorder
	lists   *countingInvalidator
	owner   *auth.User
	admin   *auth.User
}

func newFixture(t *testing.T, transitions []string) *fixture {
	t.Helper()
	machine, err := moderation.NewStateMachine(transitions)
	require.NoError(t, err)

	f := &fixture{
		users:  testhelper.NewUserRepository(),
		events: testhelper.NewEventRecorder(),
		lists:  &countingInvalidator{},
	}
	f.videos = testhelper.NewVideoRepository(f.users)
	f.owner = f.users.Seed(auth.User{FirstName: "Uma", LastName: "Owner", Email: "uma@example.com"})
	f.admin = f.users.Seed(auth.User{FirstName: "Ari", LastName: "Admin", Email: "ari@example.com", Role: auth.RoleAdmin})
	f.service = moderation.NewService(f.videos, machine, f.lists, f.events, testhelper.NewTestLogger(false))
	return f
}

func (f *fixture) pending() *video.Video {
	return f.videos.Seed(video.Video{UserID: f.owner.ID, Title: "Clip", Status: video.StatusPending})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("admin approves pending video", func(t *testing.T) {
		f := newFixture(t, config.DefaultTransitions)
		v := f.pending()

		approved, err := f.service.Approve(ctx, v.ID, f.admin)
		require.NoError(t, err)
		assert.Equal(t, video.StatusApproved, approved.Status)
		require.NotNil(t, approved.ApprovedAt)
		assert.Equal(t, 1, f.lists.calls)

		published := f.events.Events()
		require.Len(t, published, 1)
		assert.Equal(t, events.VideoApproved, published[0].Type)
		assert.Equal(t, f.admin.ID, published[0].ActorID)
		assert.Equal(t, v.ID, published[0].SubjectID)
	})

	t.Run("re-approval is accepted", func(t *testing.T) {
		f := newFixture(t, config.DefaultTransitions)
		v := f.pending()
		_, err := f.service.Approve(ctx, v.ID, f.admin)
		require.NoError(t, err)
		_, err = f.service.Approve(ctx, v.ID, f.admin)
		assert.NoError(t, err)
	})

	t.Run("non admin is forbidden and status unchanged", func(t *testing.T) {
		f := newFixture(t, config.DefaultTransitions)
		v := f.pending()

		_, err := f.service.Approve(ctx, v.ID, f.owner)
		assert.Equal(t, 403, apperrors.HTTPStatus(err))
		assert.Equal(t, video.StatusPending, f.videos.Status(v.ID))
		assert.Empty(t, f.events.Events())

		_, err = f.service.Approve(ctx, v.ID, nil)
		assert.Equal(t, apperrors.CodeForbidden, apperrors.Code(err))
	})

	t.Run("unknown video", func(t *testing.T) {
		f := newFixture(t, config.DefaultTransitions)
		_, err := f.service.Approve(ctx, 999, f.admin)
		assert.Equal(t, apperrors.CodeVideoNotFound, apperrors.Code(err))
	})

	t.Run("rejected video cannot be approved by default", func(t *testing.T) {
		f := newFixture(t, config.DefaultTransitions)
		v := f.videos.Seed(video.Video{UserID: f.owner.ID, Title: "Nope", Status: video.StatusRejected})
		_, err := f.service.Approve(ctx, v.ID, f.admin)
		assert.Equal(t, apperrors.CodeInvalidTransition, apperrors.Code(err))
		assert.Equal(t, 409, apperrors.HTTPStatus(err))
	})

	t.Run("configured transition enables approval of rejected video", func(t *testing.T) {
		f := newFixture(t, append(append([]string{}, config.DefaultTransitions...), "REJECTED->APPROVED"))
		v := f.videos.Seed(video.Video{UserID: f.owner.ID, Title: "Second chance", Status: video.StatusRejected, RejectionReason: "blurry"})
		approved, err := f.service.Approve(ctx, v.ID, f.admin)
		require.NoError(t, err)
		assert.Empty(t, approved.RejectionReason)
		assert.Nil(t, approved.RejectedAt)
	})

	t.Run("publish failure does not fail approval", func(t *testing.T) {
		f := newFixture(t, config.DefaultTransitions)
		f.events.Err = errors.New("broker down")
		v := f.pending()
		_, err := f.service.Approve(ctx, v.ID, f.admin)
		assert.NoError(t, err)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.DefaultTransitions)

	v := f.pending()
	_, err := f.service.Reject(ctx, v.ID, f.admin, strings.Repeat("x", 1001))
	assert.Equal(t, apperrors.CodeValidation, apperrors.Code(err))

	rejected, err := f.service.Reject(ctx, v.ID, f.admin, "Copyrighted <i>music</i>")
	require.NoError(t, err)
	assert.Equal(t, video.StatusRejected, rejected.Status)
	assert.Equal(t, "Copyrighted music", rejected.RejectionReason)
	assert.NotNil(t, rejected.RejectedAt)

	_, err = f.service.Reject(ctx, v.ID, f.owner, "mine")
	assert.Equal(t, 403, apperrors.HTTPStatus(err))

	_, err = f.service.Reject(ctx, v.ID, f.admin, "again")
	assert.Equal(t, apperrors.CodeInvalidTransition, apperrors.Code(err))
}

func TestRejectWithoutReason(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.DefaultTransitions)

	v := f.pending()
	rejected, err := f.service.Reject(ctx, v.ID, f.admin, "  ")
	require.NoError(t, err)
	assert.Equal(t, video.StatusRejected, rejected.Status)
	assert.Empty(t, rejected.RejectionReason)
	assert.NotNil(t, rejected.RejectedAt)
}

func TestUnpublish(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.DefaultTransitions)

	v := f.pending()
	_, err := f.service.Unpublish(ctx, v.ID, f.admin)
	assert.Equal(t, apperrors.CodeInvalidTransition, apperrors.Code(err))

	_, err = f.service.Approve(ctx, v.ID, f.admin)
	require.NoError(t, err)
	unpublished, err := f.service.Unpublish(ctx, v.ID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, video.StatusPending, unpublished.Status)
	assert.Nil(t, unpublished.ApprovedAt)
	assert.Equal(t, []events.EventType{events.VideoApproved, events.VideoUnpublished}, f.events.Types())
}
