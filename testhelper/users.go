package testhelper

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/soldout/backend/internal/auth"
)

// UserRepository is an in-memory auth.UserRepository with a unique email index
type UserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]auth.User
	// Err, when set, is returned by every call
	Err error
}

// NewUserRepository creates an empty repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[int64]auth.User{}}
}

// Seed stores user as-is, assigning an id when zero, and returns the stored copy
func (r *UserRepository) Seed(user auth.User) *auth.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	} else if user.ID > r.nextID {
		r.nextID = user.ID
	}
	if user.Role == "" {
		user.Role = auth.RoleUser
	}
	r.users[user.ID] = user
	return &user
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return auth.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	if user.Role == "" {
		user.Role = auth.RoleUser
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Update(_ context.Context, id int64, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	user, ok := r.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	if email, ok := fields["email"].(string); ok {
		for otherID, other := range r.users {
			if otherID != id && strings.EqualFold(other.Email, email) {
				return auth.ErrEmailTaken
			}
		}
	}
	for column, value := range fields {
		switch column {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "email":
			user.Email = value.(string)
		case "password":
			user.Password = value.(string)
		case "role":
			user.Role = value.(auth.Role)
		case "is_banned":
			user.IsBanned = value.(bool)
		case "bio":
			user.Bio = value.(string)
		case "profile_picture":
			user.ProfilePicture = value.(string)
		}
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[id]; !ok {
		return auth.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) List(_ context.Context, roles ...auth.Role) ([]auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []auth.User
	for id := r.nextID; id > 0; id-- {
		user, ok := r.users[id]
		if ok && matchesRole(user.Role, roles) {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context, roles ...auth.Role) (int64, error) {
	users, err := r.List(ctx, roles...)
	return int64(len(users)), err
}

func matchesRole(role auth.Role, roles []auth.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
