package video_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/schema"
	"github.com/soldout/backend/internal/video"
	"github.com/soldout/backend/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUpdateStatusRace(t *testing.T) {
	ctx := context.Background()
	db := testhelper.SetupTestDB(t, schema.Models()...)
	users := auth.NewUserRepository(db)
	videos := video.NewRepository(db)

	owner := &auth.User{FirstName: "Race", LastName: "Owner", Email: fmt.Sprintf("owner-%s@example.com", uuid.NewString()), Password: "x"}
	require.NoError(t, users.Create(ctx, owner))
	t.Cleanup(func() { db.Delete(&auth.User{}, owner.ID) })

	v := &video.Video{UserID: owner.ID, Title: "Contested", Thumbnail: "t.png", VideoURL: "v.mp4", Status: video.StatusPending}
	require.NoError(t, videos.Create(ctx, v))

	now := time.Now()
	moves := []map[string]interface{}{
		{"status": video.StatusApproved, "approved_at": now},
		{"status": video.StatusRejected, "rejected_at": now, "rejection_reason": "late"},
	}

	start := make(chan struct{})
	errs := make([]error, len(moves))
	var wg sync.WaitGroup
	for i, fields := range moves {
		wg.Add(1)
		go func(i int, fields map[string]interface{}) {
			defer wg.Done()
			<-start
			errs[i] = videos.UpdateStatus(ctx, v.ID, video.StatusPending, fields)
		}(i, fields)
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			assert.Equal(t, -1, winner, "both updates applied")
			winner = i
			continue
		}
		assert.True(t, errors.Is(err, video.ErrStatusChanged), "unexpected error: %v", err)
	}
	require.NotEqual(t, -1, winner, "no update applied")

	stored, err := videos.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, moves[winner]["status"], stored.Status)
}

func TestGormUpdateStatusFromWrongState(t *testing.T) {
	ctx := context.Background()
	db := testhelper.SetupTestDB(t, schema.Models()...)
	users := auth.NewUserRepository(db)
	videos := video.NewRepository(db)

	owner := &auth.User{FirstName: "State", LastName: "Owner", Email: fmt.Sprintf("state-%s@example.com", uuid.NewString()), Password: "x"}
	require.NoError(t, users.Create(ctx, owner))
	t.Cleanup(func() { db.Delete(&auth.User{}, owner.ID) })

	v := &video.Video{UserID: owner.ID, Title: "Settled", Thumbnail: "t.png", VideoURL: "v.mp4", Status: video.StatusApproved}
	require.NoError(t, videos.Create(ctx, v))

	err := videos.UpdateStatus(ctx, v.ID, video.StatusPending, map[string]interface{}{"status": video.StatusRejected})
	assert.ErrorIs(t, err, video.ErrStatusChanged)

	stored, err := videos.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, video.StatusApproved, stored.Status)
}
