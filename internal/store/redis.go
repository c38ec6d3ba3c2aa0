// Package store persists room state in Redis as JSON blobs with a
// bounded expiry window.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/collabcanvas/server/internal/domain"
)

// StateTTL is how long an idle room's state survives. Every Save resets
// the clock, so an active room never expires mid-session.
const StateTTL = 24 * time.Hour

// Client wraps the Redis connection for room state access.
// It is safe for concurrent use.
type Client struct {
	rdb *redis.Client
}

func NewClient(opts *redis.Options) *Client {
	return &Client{rdb: redis.NewClient(opts)}
}

// Ping verifies Redis connectivity. Useful for startup and health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Load fetches the state stored under roomID. A missing key and a
// malformed blob are treated the same way: (nil, nil), room absent.
// Only transport-level failures surface as errors.
func (c *Client) Load(ctx context.Context, roomID domain.RoomID) (*domain.RoomState, error) {
	raw, err := c.rdb.Get(ctx, string(roomID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}

	var state domain.RoomState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Warn().Err(err).Str("module", "store").Str("room", string(roomID)).Msg("malformed room state, treating as absent")
		return nil, nil
	}
	return &state, nil
}

// Save serializes the state and overwrites whatever was stored before,
// refreshing the expiry. There is no concurrency token: last write wins.
func (c *Client) Save(ctx context.Context, roomID domain.RoomID, state *domain.RoomState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", roomID, err)
	}
	if err := c.rdb.Set(ctx, string(roomID), raw, StateTTL).Err(); err != nil {
		return fmt.Errorf("save room %s: %w", roomID, err)
	}
	return nil
}
