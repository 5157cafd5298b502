package dismissal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps dismissals in a sorted set per user.
// Member is the alert key, score is the expiry time in unix seconds.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// NewRedisStore создаёт хранилище поверх готового клиента
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(userID int) string {
	return "dailycoach:dismissed:" + strconv.Itoa(userID)
}

func (s *RedisStore) Dismiss(ctx context.Context, userID int, key string, now time.Time) error {
	k := redisKey(userID)
	expires := now.Add(s.ttl)

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(expires.Unix()), Member: key})
	pipe.ExpireAt(ctx, k, expires)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("dismiss %s for user %d: %w", key, userID, err)
	}
	return nil
}

func (s *RedisStore) Active(ctx context.Context, userID int, now time.Time) (map[string]bool, error) {
	k := redisKey(userID)
	cutoff := strconv.FormatInt(now.Unix(), 10)

	// просроченные удаляем, остальные читаем
	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "-inf", cutoff)
	members := pipe.ZRangeByScore(ctx, k, &redis.ZRangeBy{Min: "(" + cutoff, Max: "+inf"})
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load dismissals for user %d: %w", userID, err)
	}

	active := make(map[string]bool)
	for _, m := range members.Val() {
		active[m] = true
	}
	return active, nil
}
