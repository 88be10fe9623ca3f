package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired 未能在等待时间内拿到锁
var ErrNotAcquired = errors.New("lock not acquired")

// Lua 脚本：只有持有者才能释放锁，防止误删他人的锁
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// RedisLock 基于 Redis 的互斥锁
// 用于购物车等需要按用户串行化的读改写操作
type RedisLock struct {
	rdb *redis.Client
}

func NewRedisLock(rdb *redis.Client) *RedisLock {
	return &RedisLock{rdb: rdb}
}

// Acquire 获取锁，带自旋等待
// ttl 防止持有者崩溃后锁永远不释放；返回的函数用于释放锁
func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.New().String()

	// 自旋重试，间隔 20ms，最多等待 2s
	deadline := time.Now().Add(2 * time.Second)
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}

	release := func() {
		releaseScript.Run(context.Background(), l.rdb, []string{key}, token)
	}
	return release, nil
}
