package testhelper

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/soldout/backend/internal/interaction"
)

type likeKey struct {
	userID int64
	target interaction.LikeTarget
}

type pairKey struct {
	a, b int64
}

// InteractionRepository is an in-memory interaction.Repository. It emulates
// the unique indexes on likes, subscriptions and ratings.
type InteractionRepository struct {
	mu            sync.Mutex
	nextID        int64
	clock         time.Time
	likes         map[likeKey]interaction.Like
	subscriptions map[pairKey]interaction.Subscription
	ratings       map[pairKey]interaction.Rating
	trivia        []interaction.Trivia
	Users         *UserRepository
	// Err, when set, is returned by every call
	Err error
}

// NewInteractionRepository creates an empty repository resolving trivia authors through users
func NewInteractionRepository(users *UserRepository) *InteractionRepository {
	return &InteractionRepository{
		clock:         time.Now(),
		likes:         map[likeKey]interaction.Like{},
		subscriptions: map[pairKey]interaction.Subscription{},
		ratings:       map[pairKey]interaction.Rating{},
		Users:         users,
	}
}

func (r *InteractionRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *InteractionRepository) CreateLike(_ context.Context, like *interaction.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	key := likeKey{like.UserID, like.Target()}
	if _, ok := r.likes[key]; ok {
		return interaction.ErrDuplicate
	}
	r.nextID++
	like.ID = r.nextID
	like.CreatedAt = r.tick()
	r.likes[key] = *like
	return nil
}

func (r *InteractionRepository) DeleteLike(_ context.Context, userID int64, target interaction.LikeTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.likes, likeKey{userID, target})
	return nil
}

func (r *InteractionRepository) GetLike(_ context.Context, userID int64, target interaction.LikeTarget) (*interaction.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	like, ok := r.likes[likeKey{userID, target}]
	if !ok {
		return nil, interaction.ErrLikeNotFound
	}
	return &like, nil
}

func (r *InteractionRepository) CountLikes(ctx context.Context, target interaction.LikeTarget) (interaction.LikeCounts, error) {
	counts, err := r.CountLikesByTargets(ctx, target.Kind, []int64{target.ID})
	if err != nil {
		return interaction.LikeCounts{}, err
	}
	return counts[target.ID], nil
}

func (r *InteractionRepository) CountLikesByTargets(_ context.Context, kind interaction.TargetKind, ids []int64) (map[int64]interaction.LikeCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	wanted := idSet(ids)
	counts := make(map[int64]interaction.LikeCounts)
	for key, like := range r.likes {
		if key.target.Kind != kind || !wanted[key.target.ID] {
			continue
		}
		c := counts[key.target.ID]
		if like.Type == interaction.TypeDislike {
			c.Dislikes++
		} else {
			c.Likes++
		}
		counts[key.target.ID] = c
	}
	return counts, nil
}

func (r *InteractionRepository) UserLikes(_ context.Context, userID int64, kind interaction.TargetKind, ids []int64) (map[int64]interaction.LikeType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	wanted := idSet(ids)
	out := make(map[int64]interaction.LikeType)
	for key, like := range r.likes {
		if key.userID == userID && key.target.Kind == kind && wanted[key.target.ID] {
			out[key.target.ID] = like.Type
		}
	}
	return out, nil
}

func (r *InteractionRepository) CreateSubscription(_ context.Context, sub *interaction.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	key := pairKey{sub.SubscriberID, sub.CreatorID}
	if _, ok := r.subscriptions[key]; ok {
		return interaction.ErrDuplicate
	}
	r.nextID++
	sub.ID = r.nextID
	sub.CreatedAt = r.tick()
	r.subscriptions[key] = *sub
	return nil
}

func (r *InteractionRepository) DeleteSubscription(_ context.Context, subscriberID, creatorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.subscriptions, pairKey{subscriberID, creatorID})
	return nil
}

func (r *InteractionRepository) IsSubscribed(_ context.Context, subscriberID, creatorID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.subscriptions[pairKey{subscriberID, creatorID}]
	return ok, nil
}

func (r *InteractionRepository) CountSubscribers(_ context.Context, creatorID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for key := range r.subscriptions {
		if key.b == creatorID {
			n++
		}
	}
	return n, nil
}

func (r *InteractionRepository) UpsertRating(_ context.Context, rating *interaction.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	key := pairKey{rating.UserID, rating.VideoID}
	now := r.tick()
	if existing, ok := r.ratings[key]; ok {
		existing.Value = rating.Value
		existing.UpdatedAt = now
		r.ratings[key] = existing
		*rating = existing
		return nil
	}
	r.nextID++
	rating.ID = r.nextID
	rating.CreatedAt, rating.UpdatedAt = now, now
	r.ratings[key] = *rating
	return nil
}

func (r *InteractionRepository) GetRating(_ context.Context, userID, videoID int64) (*interaction.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	rating, ok := r.ratings[pairKey{userID, videoID}]
	if !ok {
		return nil, interaction.ErrRatingNotFound
	}
	return &rating, nil
}

func (r *InteractionRepository) RatingStats(_ context.Context, videoID int64) (interaction.RatingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return interaction.RatingStats{}, r.Err
	}
	var stats interaction.RatingStats
	var sum int
	for key, rating := range r.ratings {
		if key.b == videoID {
			sum += rating.Value
			stats.Count++
		}
	}
	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return stats, nil
}

func (r *InteractionRepository) CreateTrivia(_ context.Context, trivia *interaction.Trivia) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	trivia.ID = r.nextID
	trivia.CreatedAt = r.tick()
	stored := *trivia
	stored.User = nil
	r.trivia = append(r.trivia, stored)
	return nil
}

func (r *InteractionRepository) ListTrivia(ctx context.Context, videoID int64) ([]interaction.Trivia, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	var out []interaction.Trivia
	for _, t := range r.trivia {
		if t.VideoID == videoID {
			out = append(out, t)
		}
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if r.Users != nil {
		for i := range out {
			if user, err := r.Users.GetByID(ctx, out[i].UserID); err == nil {
				out[i].User = user
			}
		}
	}
	return out, nil
}

// LikeCount returns the number of stored likes across all targets
func (r *InteractionRepository) LikeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.likes)
}

// RatingRows returns the number of stored ratings
func (r *InteractionRepository) RatingRows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ratings)
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
