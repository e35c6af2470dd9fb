package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Hash fields of a cached entry.
const (
	fieldValue    = "v"
	fieldDeadline = "abs"
	fieldSliding  = "sld"
)

// RedisStore keeps each entry in a hash holding the value, the absolute
// deadline (unix nanos, 0 for none) and the sliding window. The key TTL is
// always min(sliding, deadline-now), refreshed on every hit.
type RedisStore struct {
	client *redis.Client
	prefix string
	log    *logrus.Logger
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, prefix string, log *logrus.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		log:    log,
		now:    time.Now,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	k := s.prefix + key
	values, err := s.client.HMGet(ctx, k, fieldValue, fieldDeadline, fieldSliding).Result()
	if err != nil {
		s.log.Warnf("Failed to read cache key %s: %+v", k, err)
		return nil, false
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, false
	}
	deadline := parseInt64(values[1])
	sliding := time.Duration(parseInt64(values[2]))

	now := s.now()
	ttl, alive := effectiveTTL(sliding, deadline, now)
	if !alive {
		if err := s.client.Del(ctx, k).Err(); err != nil {
			s.log.Warnf("Failed to drop expired cache key %s: %+v", k, err)
		}
		return nil, false
	}

	if sliding > 0 {
		if err := s.client.PExpire(ctx, k, ttl).Err(); err != nil {
			s.log.Warnf("Failed to refresh cache key %s: %+v", k, err)
		}
	}

	return []byte(raw), true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, opts EntryOptions) error {
	k := s.prefix + key
	now := s.now()

	var deadline int64
	if opts.Absolute > 0 {
		deadline = now.Add(opts.Absolute).UnixNano()
	}
	ttl, _ := effectiveTTL(opts.Sliding, deadline, now)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, k)
	pipe.HSet(ctx, k,
		fieldValue, value,
		fieldDeadline, deadline,
		fieldSliding, int64(opts.Sliding),
	)
	if ttl > 0 {
		pipe.PExpire(ctx, k, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set cache key %s: %w", k, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	k := s.prefix + key
	if err := s.client.Del(ctx, k).Err(); err != nil {
		return fmt.Errorf("delete cache key %s: %w", k, err)
	}
	return nil
}

// Close is a no-op; the redis client is owned by the caller.
func (s *RedisStore) Close() error {
	return nil
}

// effectiveTTL returns the key TTL for an entry and whether it is still
// alive at now. A zero TTL with alive=true means the entry never expires.
func effectiveTTL(sliding time.Duration, deadline int64, now time.Time) (time.Duration, bool) {
	ttl := sliding
	if deadline > 0 {
		remaining := time.Duration(deadline - now.UnixNano())
		if remaining <= 0 {
			return 0, false
		}
		if ttl <= 0 || remaining < ttl {
			ttl = remaining
		}
	}
	return ttl, true
}

func parseInt64(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
