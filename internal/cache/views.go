// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// views.go accumulates article view counts in a Valkey hash. Public reads
// only touch Valkey; a scheduled task periodically drains the hash into
// posts.view_count so the hot path never writes to Postgres.
package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// viewsKey is the Valkey hash holding pending view increments, keyed by
// post id.
const viewsKey = "post_views"

// ViewCounter tracks per-post view increments in Valkey.
type ViewCounter struct {
	client *redis.Client
}

// NewViewCounter creates a view counter backed by the given Valkey client.
func NewViewCounter(client *redis.Client) *ViewCounter {
	return &ViewCounter{client: client}
}

// Increment records one view for the post. Failures are logged and
// swallowed; losing a view count never fails a page load.
func (vc *ViewCounter) Increment(ctx context.Context, postID uuid.UUID) {
	if err := vc.client.HIncrBy(ctx, viewsKey, postID.String(), 1).Err(); err != nil {
		slog.Warn("view counter increment failed", "post_id", postID, "error", err)
	}
}

// Drain atomically reads and clears all pending increments, returning a
// map of post id to view delta. Returns an empty map when nothing is
// pending.
func (vc *ViewCounter) Drain(ctx context.Context) (map[uuid.UUID]int64, error) {
	pipe := vc.client.TxPipeline()
	getAll := pipe.HGetAll(ctx, viewsKey)
	pipe.Del(ctx, viewsKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("view counter drain: %w", err)
	}

	raw := getAll.Val()
	counts := make(map[uuid.UUID]int64, len(raw))
	for field, val := range raw {
		id, err := uuid.Parse(field)
		if err != nil {
			slog.Warn("view counter: skipping malformed post id", "field", field)
			continue
		}
		var n int64
		if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
			slog.Warn("view counter: skipping malformed count", "field", field, "value", val)
			continue
		}
		counts[id] = n
	}
	return counts, nil
}

// Restore credits drained deltas back to the hash. Used when the database
// write of a drained batch fails, so the views are retried on the next
// sync instead of being dropped. Views recorded meanwhile merge in via
// HIncrBy.
func (vc *ViewCounter) Restore(ctx context.Context, counts map[uuid.UUID]int64) error {
	if len(counts) == 0 {
		return nil
	}
	pipe := vc.client.TxPipeline()
	for id, delta := range counts {
		pipe.HIncrBy(ctx, viewsKey, id.String(), delta)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("view counter restore: %w", err)
	}
	return nil
}
