package auth

import (
	"context"
	"testing"

	"huddle-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroyUserSessions(t *testing.T) {
	rdb, mr := testutil.OpenRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("session:a", "{}"))
	require.NoError(t, mr.Set("session:b", "{}"))
	require.NoError(t, mr.Set("session:other", "{}"))
	_, err := mr.SAdd(UserSessionsPrefix+"u-1", "a", "b")
	require.NoError(t, err)

	n, err := DestroyUserSessions(ctx, rdb, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, mr.Exists("session:a"))
	assert.False(t, mr.Exists("session:b"))
	assert.False(t, mr.Exists(UserSessionsPrefix+"u-1"))
	assert.True(t, mr.Exists("session:other"))

	n, err = DestroyUserSessions(ctx, rdb, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
