package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"alugae-backend/internal/config"
	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript deletes the key only while it still holds our token, so an
// expired lock taken over by another sweep is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(cfg config.RedisConfig, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}

func (l *RedisLocker) Acquire(ctx context.Context, vehicleID int32) (func(), error) {
	key := vehicleLockKey(vehicleID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock for vehicle %d: %w", vehicleID, err)
	}
	if !ok {
		return nil, fmt.Errorf("vehicle %d: %w", vehicleID, domain.ErrVehicleBusy)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := unlockScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				logger.Warn("Failed to release vehicle lock", "vehicleID", vehicleID, "error", err)
			}
		})
	}, nil
}

func vehicleLockKey(vehicleID int32) string {
	return fmt.Sprintf("lock:release:vehicle:%d", vehicleID)
}

// LocalLocker guards vehicles within a single process. It is used when no
// Redis address is configured.
type LocalLocker struct {
	mu   sync.Mutex
	held map[int32]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[int32]struct{})}
}

func (l *LocalLocker) Acquire(_ context.Context, vehicleID int32) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[vehicleID]; busy {
		return nil, fmt.Errorf("vehicle %d: %w", vehicleID, domain.ErrVehicleBusy)
	}
	l.held[vehicleID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, vehicleID)
			l.mu.Unlock()
		})
	}, nil
}
