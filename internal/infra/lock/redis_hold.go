package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrHeld = errors.New("lock: slot is held by another booking")

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Hold is an acquired slot hold. Release is idempotent.
type Hold struct {
	client *redis.Client
	key    string
	token  string
}

func (h *Hold) Key() string {
	if h == nil {
		return ""
	}
	return h.key
}

func (h *Hold) Release(ctx context.Context) error {
	if h == nil || h.client == nil {
		return nil
	}
	if err := releaseScript.Run(ctx, h.client, []string{h.key}, h.token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("lock: release %s: %w", h.key, err)
	}
	return nil
}

// SlotHolder hands out short-lived holds on (provider, instant) pairs so two
// concurrent bookings of the same slot cannot both reach the insert.
type SlotHolder struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotHolder(client *redis.Client, ttl time.Duration) *SlotHolder {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SlotHolder{client: client, ttl: ttl}
}

func SlotKey(providerID uint, start time.Time) string {
	return fmt.Sprintf("hold:provider:%d:%d", providerID, start.UTC().Unix())
}

// Acquire takes the hold or returns ErrHeld. Other errors mean Redis itself
// failed.
func (s *SlotHolder) Acquire(ctx context.Context, providerID uint, start time.Time) (*Hold, error) {
	key := SlotKey(providerID, start)
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, key, token, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("lock: acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrHeld
	}

	return &Hold{client: s.client, key: key, token: token}, nil
}
