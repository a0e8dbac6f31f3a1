// Package queue wires asynq to the shared Redis client.
package queue

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Queue names with their relative weights.
const (
	Critical = "critical"
	Default  = "default"
	Low      = "low"
)

// redisConnOpt lets asynq reuse an existing Redis client instead of dialing its own.
type redisConnOpt struct {
	client redis.UniversalClient
}

func (r redisConnOpt) MakeRedisClient() interface{} {
	return r.client
}

// NewClient returns an asynq client on top of rdb. Closing it closes rdb as well.
func NewClient(rdb redis.UniversalClient) *asynq.Client {
	return asynq.NewClient(redisConnOpt{client: rdb})
}

// ServerOptions configures the worker side.
type ServerOptions struct {
	Concurrency     int
	LogLevel        string
	ShutdownTimeout time.Duration
}

// NewServer returns an asynq server consuming the default queues.
func NewServer(rdb redis.UniversalClient, opts ServerOptions) *asynq.Server {
	var level asynq.LogLevel
	if opts.LogLevel == "" {
		level = asynq.InfoLevel
	} else if err := level.Set(opts.LogLevel); err != nil {
		log.Warn().Str("logLevel", opts.LogLevel).Err(err).Msg("invalid asynq log level, using info")
		level = asynq.InfoLevel
	}
	shutdown := opts.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	return asynq.NewServer(redisConnOpt{client: rdb}, asynq.Config{
		Concurrency:     concurrency,
		Queues:          map[string]int{Critical: 6, Default: 3, Low: 1},
		Logger:          zerologAdapter{},
		LogLevel:        level,
		ShutdownTimeout: shutdown,
	})
}
