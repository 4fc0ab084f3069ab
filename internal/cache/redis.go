package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/silver-jubilee/backend/internal/config"
)

const pingTimeout = time.Millisecond * 1500

// NewRedis connects to the single-instance Redis used for the task queue
// and the login attempt limiter.
func NewRedis(cfg config.Cache) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:            cfg.Redis.Address,
		Password:        cfg.Redis.Password,
		DB:              0,
		PoolSize:        cfg.Redis.PoolSize,
		ConnMaxIdleTime: 170 * time.Second,
		DialTimeout:     time.Second * 1,
		ReadTimeout:     time.Second * 1,
		WriteTimeout:    time.Second * 1,
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	_, err := client.Ping(pingCtx).Result()
	return client, err
}
