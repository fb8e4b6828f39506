// File: internal/cache/cache.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 封裝 Redis 的最小操作集合，測試時以 FakeCache 替換
// ttl <= 0 表示不設過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Close() error
}

// IsMiss 判斷 Get 的錯誤是否只是鍵不存在
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

// HealthCheck 以寫入再讀回的方式確認快取可用
func HealthCheck(ctx context.Context, c Cache, key string) error {
	want := fmt.Sprint(time.Now().UnixNano())
	if err := c.Set(ctx, key, want, time.Minute).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	got, err := c.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("cache get: %w", err)
	}
	if got != want {
		return fmt.Errorf("cache round trip mismatch: %q != %q", got, want)
	}
	return nil
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	CloseFn func() error
}

// Get 執行 Fake 設定或 panic
func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

// Set 執行 Fake 設定或 panic
func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

// MemoryCache 以 map 實作 FakeCache 的讀寫，供其他套件的測試使用
func MemoryCache() *FakeCache {
	m := map[string]string{}
	return &FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			v, ok := m[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		SetFn: func(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
			switch v := value.(type) {
			case []byte:
				m[key] = string(v)
			default:
				m[key] = fmt.Sprint(v)
			}
			return redis.NewStatusResult("OK", nil)
		},
	}
}
