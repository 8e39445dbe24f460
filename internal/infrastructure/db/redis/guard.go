package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DPD accepts at most two authentications per account per 24 hours. The
// session cache already keeps us under that in a single process; this
// counter holds the line across restarts and replicas.
const (
	authLimit  = 2
	authWindow = 24 * time.Hour
)

// AuthGuard is a Redis-backed login-quota counter: INCR the key and set the
// TTL when the key is first created.
type AuthGuard struct {
	client *redis.Client
}

func NewAuthGuard(client *redis.Client) *AuthGuard {
	return &AuthGuard{client: client}
}

// Allow consumes one login attempt and reports whether the carrier-side
// quota still permits it.
func (g *AuthGuard) Allow(ctx context.Context, key string) (bool, error) {
	pipe := g.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, authWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("auth guard: %w", err)
	}
	return incr.Val() <= authLimit, nil
}

// SyncGuard suppresses repeated tracking polls for the same shipment within
// a cooldown window. Key format: sync:<reference>
type SyncGuard struct {
	client   *redis.Client
	cooldown time.Duration
}

func NewSyncGuard(client *redis.Client, cooldown time.Duration) *SyncGuard {
	return &SyncGuard{client: client, cooldown: cooldown}
}

// Recently reports whether the shipment was polled within the cooldown.
func (g *SyncGuard) Recently(ctx context.Context, ref string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(ref)).Result()
	if err != nil {
		return false, fmt.Errorf("sync guard: %w", err)
	}
	return n > 0, nil
}

// Mark records that the shipment has just been polled.
func (g *SyncGuard) Mark(ctx context.Context, ref string) error {
	return g.client.Set(ctx, g.key(ref), "1", g.cooldown).Err()
}

func (g *SyncGuard) key(ref string) string {
	return "sync:" + ref
}
