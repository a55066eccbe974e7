package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftcoach/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ErrNotAcquired means another session holds the lock for the same
// user+exercise right now (multi-device use).
var ErrNotAcquired = errors.New("lock not acquired")

const defaultTTL = 30 * time.Second

// Locker serializes decision cycles per user+exercise key through redis.
// State writes additionally carry an optimistic version check, the lock
// only keeps concurrent sessions from interleaving whole cycles.
type Locker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{
		rdb: rdb,
		ttl: defaultTTL,
	}
}

// Acquire takes the per-key lock. The returned release func is safe to
// defer and only deletes the lock if this caller still owns it.
func (l *Locker) Acquire(ctx context.Context, userID, exerciseID string) (release func(), err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "lock.acquire")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := lockKey(userID, exerciseID)
	span.SetAttributes(attribute.String("key", key))

	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("setnx %s: %w", key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	return func() {
		// owner check and delete; a stale unlock must not release
		// somebody else's lock after a TTL expiry
		val, err := l.rdb.Get(context.Background(), key).Result()
		if err != nil {
			return
		}
		if val == token {
			l.rdb.Del(context.Background(), key)
		}
	}, nil
}

func lockKey(userID, exerciseID string) string {
	return fmt.Sprintf("liftcoach::lock::%s::%s", userID, exerciseID)
}
