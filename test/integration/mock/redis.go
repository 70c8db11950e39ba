package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis returns a client connected to a process-wide miniredis instance.
func NewRedis() *redis.Client {
	if redisConn == nil {
		redisConnOnce.Do(
			func() {
				redisConn = openRedisConn()
			},
		)
	}

	return redisConn
}

func openRedisConn() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	redisServer = miniRedis

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return conn
}

func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}

// FastForwardRedis expires keys as if d had passed.
func FastForwardRedis(d time.Duration) {
	if redisServer != nil {
		redisServer.FastForward(d)
	}
}
