package queue

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle-backend/internal/testutil"
)

func TestRedisConnOpt_ReusesClient(t *testing.T) {
	rdb, _ := testutil.OpenRedis(t)
	opt := redisConnOpt{client: rdb}
	assert.Same(t, rdb, opt.MakeRedisClient())
}

func TestNewServer_DefaultsDoNotPanic(t *testing.T) {
	rdb, _ := testutil.OpenRedis(t)
	require.NotNil(t, NewServer(rdb, ServerOptions{LogLevel: "not-a-level"}))
}

func TestZerologAdapter_WritesComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	zerologAdapter{}.Warn("lease ", "expired")
	assert.Contains(t, buf.String(), `"component":"asynq"`)
	assert.Contains(t, buf.String(), `"message":"lease expired"`)
}
