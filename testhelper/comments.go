package testhelper

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/comment"
)

// CommentRepository is an in-memory comment.Repository. Rows get strictly
// increasing timestamps so ordering is deterministic.
type CommentRepository struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	comments map[int64]comment.Comment
	replies  map[int64]comment.Reply
	Users    *UserRepository
	// Err, when set, is returned by every call
	Err error
}

// NewCommentRepository creates an empty repository resolving authors through users
func NewCommentRepository(users *UserRepository) *CommentRepository {
	return &CommentRepository{
		clock:    time.Now(),
		comments: map[int64]comment.Comment{},
		replies:  map[int64]comment.Reply{},
		Users:    users,
	}
}

// SeedComment stores c with its id, assigning one when zero
func (r *CommentRepository) SeedComment(c comment.Comment) *comment.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	} else if c.ID > r.nextID {
		r.nextID = c.ID
	}
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	r.comments[c.ID] = c
	return &c
}

func (r *CommentRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *CommentRepository) CreateComment(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = r.tick()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	stored.User, stored.Replies = nil, nil
	r.comments[c.ID] = stored
	return nil
}

func (r *CommentRepository) CreateReply(_ context.Context, reply *comment.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	reply.ID = r.nextID
	reply.CreatedAt = r.tick()
	reply.UpdatedAt = reply.CreatedAt
	stored := *reply
	stored.User = nil
	r.replies[reply.ID] = stored
	return nil
}

func (r *CommentRepository) GetComment(_ context.Context, id int64) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.comments[id]
	if !ok {
		return nil, comment.ErrCommentNotFound
	}
	return &c, nil
}

func (r *CommentRepository) GetReply(_ context.Context, id int64) (*comment.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	reply, ok := r.replies[id]
	if !ok {
		return nil, comment.ErrReplyNotFound
	}
	return &reply, nil
}

func (r *CommentRepository) ListComments(ctx context.Context, videoID int64, offset, limit int) ([]comment.Comment, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	var out []comment.Comment
	for _, c := range r.comments {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 {
		if offset >= len(out) {
			return []comment.Comment{}, nil
		}
		end := offset + limit
		if end > len(out) {
			end = len(out)
		}
		out = out[offset:end]
	}
	for i := range out {
		out[i].User = r.author(ctx, out[i].UserID)
	}
	return out, nil
}

func (r *CommentRepository) CountComments(_ context.Context, videoID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, c := range r.comments {
		if c.VideoID == videoID {
			n++
		}
	}
	return n, nil
}

func (r *CommentRepository) ListReplies(ctx context.Context, commentIDs []int64) ([]comment.Reply, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	wanted := make(map[int64]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}
	var out []comment.Reply
	for _, reply := range r.replies {
		if wanted[reply.CommentID] {
			out = append(out, reply)
		}
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	for i := range out {
		out[i].User = r.author(ctx, out[i].UserID)
	}
	return out, nil
}

// CommentCount returns the number of stored comments
func (r *CommentRepository) CommentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.comments)
}

// ReplyCount returns the number of stored replies
func (r *CommentRepository) ReplyCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.replies)
}

func (r *CommentRepository) author(ctx context.Context, id int64) *auth.User {
	if r.Users == nil {
		return nil
	}
	user, err := r.Users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}
