package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// SubmissionDedup provides double-submit protection backed by Redis.
// Key format: dedup:<author_id>:<idempotency_key>
type SubmissionDedup struct {
	client *redis.Client
}

// NewSubmissionDedup creates a SubmissionDedup wrapping the given Redis client.
func NewSubmissionDedup(client *redis.Client) *SubmissionDedup {
	return &SubmissionDedup{client: client}
}

// IsDuplicate reports whether this author has already submitted with this key.
func (d *SubmissionDedup) IsDuplicate(ctx context.Context, authorID int64, key string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(authorID, key)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission key (expires after dedupTTL).
func (d *SubmissionDedup) Mark(ctx context.Context, authorID int64, key string) error {
	return d.client.Set(ctx, d.key(authorID, key), "1", dedupTTL).Err()
}

func (d *SubmissionDedup) key(authorID int64, key string) string {
	return fmt.Sprintf("dedup:%d:%s", authorID, key)
}
