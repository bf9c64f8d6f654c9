package storage

import (
	"context"
	"io"
)

// Batch tracks assets written during one operation so they can be removed
// if a later step fails.
type Batch struct {
	store  FileStore
	logger Logger
	refs   []string
}

// NewBatch starts an empty batch over store.
func NewBatch(store FileStore, logger Logger) *Batch {
	return &Batch{store: store, logger: logger}
}

// Save writes through to the store and remembers the reference on success.
func (b *Batch) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	ref, err := b.store.Save(ctx, key, r, size, contentType)
	if err != nil {
		return "", err
	}
	b.refs = append(b.refs, ref)
	return ref, nil
}

// Refs returns the references written so far.
func (b *Batch) Refs() []string {
	return append([]string(nil), b.refs...)
}

// Discard deletes every written asset, newest first. Failures are logged
// and do not stop the remaining deletions.
func (b *Batch) Discard(ctx context.Context) {
	for i := len(b.refs) - 1; i >= 0; i-- {
		ref := b.refs[i]
		if err := b.store.Delete(ctx, ref); err != nil {
			b.logger.LogError(err, "Failed to clean up stored asset "+ref)
			continue
		}
		b.logger.LogInfo("Removed orphaned asset", map[string]interface{}{"ref": ref})
	}
	b.refs = nil
}
