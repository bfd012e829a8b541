package services

import (
	"MindWellGo/config"
	"MindWellGo/metrics"
	"MindWellGo/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	progressKeyPrefix           = "mindwell:progress:"
	progressGenerationKeyPrefix = "mindwell:progress-gen:"

	// outlives any progress read in flight
	progressGenerationTTL = 24 * time.Hour
)

var errStaleProgress = errors.New("progress changed since it was read")

// ProgressCache caches progress responses per user. A nil *ProgressCache is
// valid and caches nothing. Redis errors are logged and treated as misses.
//
// Every user has a generation counter that Invalidate bumps. A reader takes
// the generation before querying the database and Set only stores the
// snapshot while the generation is unchanged, so a snapshot read before a
// write can never replace that write's invalidation.
type ProgressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache returns nil when client is nil or ttl is not positive
func NewProgressCache(client *redis.Client, ttl time.Duration) *ProgressCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &ProgressCache{client: client, ttl: ttl}
}

func progressKey(userID string) string {
	return progressKeyPrefix + userID
}

func progressGenerationKey(userID string) string {
	return progressGenerationKeyPrefix + userID
}

// Get returns the cached records and whether they were found
func (c *ProgressCache) Get(ctx context.Context, userID string) ([]models.ProgressRecordResponse, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, progressKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ProgressCacheTotal.WithLabelValues("miss").Inc()
		} else {
			metrics.ProgressCacheTotal.WithLabelValues("error").Inc()
			config.Logger.Warnw("failed to read progress cache", "error", err, "userId", userID)
		}
		return nil, false
	}

	var records []models.ProgressRecordResponse
	if err := json.Unmarshal(data, &records); err != nil {
		metrics.ProgressCacheTotal.WithLabelValues("error").Inc()
		config.Logger.Warnw("discarding malformed progress cache entry", "error", err, "userId", userID)
		return nil, false
	}

	metrics.ProgressCacheTotal.WithLabelValues("hit").Inc()
	return records, true
}

// Generation returns the user's current generation. Call it before reading
// the records that will be passed to Set. ok is false when the cache is
// disabled or unreachable, and the snapshot must then not be cached.
func (c *ProgressCache) Generation(ctx context.Context, userID string) (generation int64, ok bool) {
	if c == nil {
		return 0, false
	}
	generation, err := readGeneration(ctx, c.client, userID)
	if err != nil {
		config.Logger.Warnw("failed to read progress generation", "error", err, "userId", userID)
		return 0, false
	}
	return generation, true
}

// Set stores records for userID if no Invalidate happened since generation
// was read
func (c *ProgressCache) Set(ctx context.Context, userID string, generation int64, records []models.ProgressRecordResponse) {
	if c == nil {
		return
	}
	err := c.set(ctx, userID, generation, records)
	switch {
	case err == nil:
	case errors.Is(err, errStaleProgress), errors.Is(err, redis.TxFailedErr):
		config.Logger.Debugw("skipping stale progress snapshot", "userId", userID)
	default:
		config.Logger.Warnw("failed to write progress cache", "error", err, "userId", userID)
	}
}

func (c *ProgressCache) set(ctx context.Context, userID string, generation int64, records []models.ProgressRecordResponse) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	genKey := progressGenerationKey(userID)
	return c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleProgress
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, progressKey(userID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)
}

// Invalidate drops the cached entry for userID and bumps its generation
func (c *ProgressCache) Invalidate(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	genKey := progressGenerationKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, progressGenerationTTL)
		pipe.Del(ctx, progressKey(userID))
		return nil
	})
	if err != nil {
		config.Logger.Warnw("failed to invalidate progress cache", "error", err, "userId", userID)
	}
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, userID string) (int64, error) {
	generation, err := cmd.Get(ctx, progressGenerationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}
