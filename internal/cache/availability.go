package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	availabilityKey = "availability:v1"
	availabilityTTL = 30 * time.Second
)

// Availability is a short-lived cache of the availability response.
// Every slot-claiming mutation invalidates it, the TTL covers the
// rest. All methods are no-ops on a nil receiver so callers need no
// redis-enabled/disabled branching.
type Availability struct {
	rdb *redis.Client
}

// New returns nil when addr is empty; the cache is then disabled.
func New(addr, password string, db int) *Availability {
	if addr == "" {
		return nil
	}
	return &Availability{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (a *Availability) Get(ctx context.Context) ([]byte, bool) {
	if a == nil {
		return nil, false
	}
	payload, err := a.rdb.Get(ctx, availabilityKey).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (a *Availability) Set(ctx context.Context, payload []byte) {
	if a == nil {
		return
	}
	a.rdb.Set(ctx, availabilityKey, payload, availabilityTTL)
}

func (a *Availability) Invalidate(ctx context.Context) {
	if a == nil {
		return
	}
	a.rdb.Del(ctx, availabilityKey)
}
