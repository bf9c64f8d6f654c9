package testhelper

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/soldout/backend/internal/video"
)

// VideoRepository is an in-memory video.Repository. When Users is set the
// Owner relation is filled on reads.
type VideoRepository struct {
	mu     sync.Mutex
	nextID int64
	videos map[int64]video.Video
	Users  *UserRepository
	// Err, when set, is returned by every call
	Err error
}

// NewVideoRepository creates an empty repository resolving owners through users
func NewVideoRepository(users *UserRepository) *VideoRepository {
	return &VideoRepository{videos: map[int64]video.Video{}, Users: users}
}

// Seed stores v as-is, assigning an id and timestamps when missing
func (r *VideoRepository) Seed(v video.Video) *video.Video {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == 0 {
		r.nextID++
		v.ID = r.nextID
	} else if v.ID > r.nextID {
		r.nextID = v.ID
	}
	if v.Status == "" {
		v.Status = video.StatusPending
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	v.UpdatedAt = v.CreatedAt
	r.videos[v.ID] = v
	return &v
}

func (r *VideoRepository) Create(_ context.Context, v *video.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	v.ID = r.nextID
	if v.Status == "" {
		v.Status = video.StatusPending
	}
	now := time.Now()
	v.CreatedAt, v.UpdatedAt = now, now
	r.videos[v.ID] = *v
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*video.Video, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	v, ok := r.videos[id]
	r.mu.Unlock()
	if !ok {
		return nil, video.ErrVideoNotFound
	}
	r.withOwner(ctx, &v)
	return &v, nil
}

func (r *VideoRepository) List(ctx context.Context, filter video.ListFilter) ([]video.Video, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	out := r.matching(filter)
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch filter.Order {
		case video.OrderRecentlyApproved:
			at, bt := approvedAt(a), approvedAt(b)
			if !at.Equal(bt) {
				return at.After(bt)
			}
		case video.OrderMostViewed:
			if a.Views != b.Views {
				return a.Views > b.Views
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID > b.ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	for i := range out {
		r.withOwner(ctx, &out[i])
	}
	return out, nil
}

func (r *VideoRepository) Count(_ context.Context, filter video.ListFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.matching(filter))), nil
}

func (r *VideoRepository) CountByOwners(_ context.Context, ownerIDs []int64) (map[int64]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	wanted := map[int64]bool{}
	for _, id := range ownerIDs {
		wanted[id] = true
	}
	counts := map[int64]int64{}
	for _, v := range r.videos {
		if wanted[v.UserID] {
			counts[v.UserID]++
		}
	}
	return counts, nil
}

func (r *VideoRepository) Update(_ context.Context, id int64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	v, ok := r.videos[id]
	if !ok {
		return video.ErrVideoNotFound
	}
	applyVideoFields(&v, fields)
	r.videos[id] = v
	return nil
}

func (r *VideoRepository) UpdateStatus(_ context.Context, id int64, from video.Status, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	v, ok := r.videos[id]
	if !ok || v.Status != from {
		return video.ErrStatusChanged
	}
	applyVideoFields(&v, fields)
	r.videos[id] = v
	return nil
}

func (r *VideoRepository) AddViews(_ context.Context, counts map[int64]int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for id, n := range counts {
		if v, ok := r.videos[id]; ok {
			v.Views += n
			r.videos[id] = v
		}
	}
	return nil
}

// Status returns the stored status of id
func (r *VideoRepository) Status(id int64) video.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videos[id].Status
}

func (r *VideoRepository) matching(filter video.ListFilter) []video.Video {
	var out []video.Video
	for _, v := range r.videos {
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.OwnerID != 0 && v.UserID != filter.OwnerID {
			continue
		}
		if !filter.CreatedSince.IsZero() && v.CreatedAt.Before(filter.CreatedSince) {
			continue
		}
		if !filter.CreatedBefore.IsZero() && !v.CreatedAt.Before(filter.CreatedBefore) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (r *VideoRepository) withOwner(ctx context.Context, v *video.Video) {
	if r.Users == nil {
		return
	}
	if owner, err := r.Users.GetByID(ctx, v.UserID); err == nil {
		v.Owner = owner
	}
}

func approvedAt(v video.Video) time.Time {
	if v.ApprovedAt == nil {
		return time.Time{}
	}
	return *v.ApprovedAt
}

func applyVideoFields(v *video.Video, fields map[string]interface{}) {
	for column, value := range fields {
		switch column {
		case "status":
			v.Status = value.(video.Status)
		case "approved_at":
			v.ApprovedAt = timePtr(value)
		case "rejected_at":
			v.RejectedAt = timePtr(value)
		case "rejection_reason":
			v.RejectionReason = value.(string)
		case "synopsis":
			v.Synopsis = value.(string)
		case "title":
			v.Title = value.(string)
		case "description":
			v.Description = value.(string)
		}
	}
	v.UpdatedAt = time.Now()
}

func timePtr(value interface{}) *time.Time {
	switch t := value.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	default:
		return nil
	}
}
