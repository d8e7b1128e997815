package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oggyb/muzz-discovery/internal/config"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

// NewRedisCacheFromClient wraps an existing client (tests point it at miniredis).
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

// --- sets ---

// SAdd adds members to the set at key and slides its TTL, in one round trip.
func (c *RedisCache) SAdd(ctx context.Context, key string, ttl time.Duration, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, args...)
		if ttl > 0 {
			pipe.PExpire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (c *RedisCache) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.Client.SMembers(ctx, key).Result()
}

// SMIsMember reports membership for each of members, in order.
func (c *RedisCache) SMIsMember(ctx context.Context, key string, members ...string) ([]bool, error) {
	if len(members) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return c.Client.SMIsMember(ctx, key, args...).Result()
}

// ARGV[1] is the TTL in ms (0 keeps the key persistent), ARGV[2:] the members.
// Returns the members this call added.
var claimScript = redis.NewScript(`
local added = {}
for i = 2, #ARGV do
	if redis.call('SADD', KEYS[1], ARGV[i]) == 1 then
		added[#added + 1] = ARGV[i]
	end
end
local ttl = tonumber(ARGV[1])
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
end
return added
`)

// SClaim atomically adds members to the set at key and returns only those that
// were not already present. Two concurrent claims never both win a member.
func (c *RedisCache) SClaim(ctx context.Context, key string, ttl time.Duration, members ...string) ([]string, error) {
	if len(members) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(members)+1)
	args = append(args, ttl.Milliseconds())
	for _, m := range members {
		args = append(args, m)
	}
	added, err := claimScript.Run(ctx, c.Client, []string{key}, args...).StringSlice()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return added, err
}

// KeyForSeen is the seen-set key of one viewer session.
func (c *RedisCache) KeyForSeen(viewerID uint64, sessionID string) string {
	return fmt.Sprintf("seen:%d:%s", viewerID, sessionID)
}

// --- match counts ---

// KeyForMatchCount generates Redis key for a user's match count
func (c *RedisCache) KeyForMatchCount(userID uint64) string {
	return fmt.Sprintf("matches:count:%d", userID)
}

func (c *RedisCache) SetMatchCount(ctx context.Context, userID uint64, count int64, ttl time.Duration) error {
	return c.Client.Set(ctx, c.KeyForMatchCount(userID), count, ttl).Err()
}

// GetMatchCount returns ok=false on a cache miss.
func (c *RedisCache) GetMatchCount(ctx context.Context, userID uint64) (int64, bool, error) {
	val, err := c.Client.Get(ctx, c.KeyForMatchCount(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// InvalidateMatchCounts drops cached counts for users.
func (c *RedisCache) InvalidateMatchCounts(ctx context.Context, userIDs ...uint64) error {
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.KeyForMatchCount(id)
	}
	return c.Del(ctx, keys...)
}
