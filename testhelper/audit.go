package testhelper

import (
	"context"
	"sync"
	"time"

	"github.com/soldout/backend/internal/admin"
)

// AuditRepository is an in-memory admin.AuditRepository
type AuditRepository struct {
	mu      sync.Mutex
	entries []admin.AuditLog
	clock   time.Time
	// Err, when set, is returned by every call
	Err error
}

// NewAuditRepository creates an empty repository
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *AuditRepository) Create(_ context.Context, entry *admin.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.clock = r.clock.Add(time.Second)
	entry.ID = int64(len(r.entries) + 1)
	entry.CreatedAt = r.clock
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *AuditRepository) List(_ context.Context, offset, limit int) ([]admin.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []admin.AuditLog
	for i := len(r.entries) - 1 - offset; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *AuditRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.entries)), nil
}

// Actions returns the recorded actions, oldest first
func (r *AuditRepository) Actions() []admin.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]admin.Action, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}
