package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	viewsKey        = "videos:views:pending"
	viewsFlushKey   = "videos:views:flushing"
	viewsMutexName  = "videos:views:flush-lock"
	viewsLockExpiry = 30 * time.Second
)

// ViewBuffer accumulates view increments in a Redis hash and periodically
// moves them into durable storage through a ViewSink. A redsync mutex makes
// sure a single replica flushes at a time.
type ViewBuffer struct {
	client   *redis.Client
	sink     ViewSink
	mutex    *redsync.Mutex
	interval time.Duration
	logger   Logger
}

// NewViewBuffer creates a buffer flushing into sink every interval.
func NewViewBuffer(client *redis.Client, sink ViewSink, interval time.Duration, logger Logger) *ViewBuffer {
	rs := redsync.New(goredis.NewPool(client))
	return &ViewBuffer{
		client:   client,
		sink:     sink,
		mutex:    rs.NewMutex(viewsMutexName, redsync.WithExpiry(viewsLockExpiry), redsync.WithTries(1)),
		interval: interval,
		logger:   logger,
	}
}

// Increment records one view of videoID.
func (b *ViewBuffer) Increment(ctx context.Context, videoID int64) error {
	return b.client.HIncrBy(ctx, viewsKey, strconv.FormatInt(videoID, 10), 1).Err()
}

// Record increments videoID and returns every view still waiting for a flush.
func (b *ViewBuffer) Record(ctx context.Context, videoID int64) (int64, error) {
	if err := b.Increment(ctx, videoID); err != nil {
		return 0, err
	}
	return b.Pending(ctx, videoID)
}

// Pending returns views recorded for videoID that have not reached storage yet.
func (b *ViewBuffer) Pending(ctx context.Context, videoID int64) (int64, error) {
	field := strconv.FormatInt(videoID, 10)
	var total int64
	for _, key := range []string{viewsKey, viewsFlushKey} {
		n, err := b.client.HGet(ctx, key, field).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Run flushes on every tick until ctx is cancelled, then flushes once more.
func (b *ViewBuffer) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := b.Flush(ctx); err != nil {
				b.logger.LogError(err, "Failed to flush buffered views")
			}
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := b.Flush(final); err != nil {
				b.logger.LogError(err, "Failed to flush buffered views on shutdown")
			}
			cancel()
			return
		}
	}
}

// Flush moves pending counts into the sink. It is a no-op when another
// replica holds the flush lock.
func (b *ViewBuffer) Flush(ctx context.Context) error {
	if err := b.mutex.LockContext(ctx); err != nil {
		b.logger.LogDebug("View flush skipped, lock held elsewhere", map[string]interface{}{"error": err.Error()})
		return nil
	}
	defer func() {
		if _, err := b.mutex.UnlockContext(context.Background()); err != nil {
			b.logger.LogWarn("Failed to release view flush lock", map[string]interface{}{"error": err.Error()})
		}
	}()

	// A previous flush may have failed after the rename; drain it first so
	// RENAME below does not overwrite it.
	if err := b.drain(ctx); err != nil {
		return err
	}

	exists, err := b.client.Exists(ctx, viewsKey).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}
	if err := b.client.Rename(ctx, viewsKey, viewsFlushKey).Err(); err != nil {
		return err
	}
	return b.drain(ctx)
}

func (b *ViewBuffer) drain(ctx context.Context) error {
	raw, err := b.client.HGetAll(ctx, viewsFlushKey).Result()
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	counts := parseCounts(raw, b.logger)
	if len(counts) > 0 {
		if err := b.sink.AddViews(ctx, counts); err != nil {
			return err
		}
	}
	return b.client.Del(ctx, viewsFlushKey).Err()
}

func parseCounts(raw map[string]string, logger Logger) map[int64]int64 {
	counts := make(map[int64]int64, len(raw))
	for field, value := range raw {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			logger.LogWarn("Dropping malformed view counter field", map[string]interface{}{"field": field})
			continue
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		counts[id] = n
	}
	return counts
}
