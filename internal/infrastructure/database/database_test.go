package database_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"huddle-backend/internal/infrastructure/database"
	"huddle-backend/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func query(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 3 }
}

func TestGormLogger_Trace(t *testing.T) {
	buf := captureLog(t)
	l := database.NewGormLogger(logger.Warn, 100*time.Millisecond)
	ctx := context.Background()

	l.Trace(ctx, time.Now(), query("SELECT 1"), errors.New("too many clients"))
	assert.Contains(t, buf.String(), `"sql":"SELECT 1"`)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "too many clients")

	buf.Reset()
	l.Trace(ctx, time.Now(), query("SELECT 2"), gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now().Add(-time.Second), query("SELECT 3"), nil)
	assert.Contains(t, buf.String(), "slow sql query")

	buf.Reset()
	l.Trace(ctx, time.Now(), query("SELECT 4"), nil)
	assert.Empty(t, buf.String(), "fast queries are not logged at warn level")

	l.LogMode(logger.Info).Trace(ctx, time.Now(), query("SELECT 5"), nil)
	assert.Contains(t, buf.String(), `"sql":"SELECT 5"`)
}

func TestGormLogger_SilentDropsEverything(t *testing.T) {
	buf := captureLog(t)
	l := database.NewGormLogger(logger.Silent, 0)
	l.Trace(context.Background(), time.Now(), query("SELECT 1"), errors.New("boom"))
	l.Error(context.Background(), "failed %d", 1)
	assert.Empty(t, buf.String())
}

func TestClose(t *testing.T) {
	db := testutil.OpenDB(t)
	require.NoError(t, database.Close(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
	assert.NoError(t, database.Close(nil))
}
