package auth

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	UserSessionsPrefix = "user_sessions:"
	sessionKeyPrefix   = "session:"
)

// DestroyUserSessions deletes every session tracked for userID and the tracking set itself.
// It returns how many sessions were removed.
func DestroyUserSessions(ctx context.Context, rdb redis.UniversalClient, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	key := UserSessionsPrefix + userID
	sessionIDs, err := rdb.SMembers(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(sessionIDs)+1)
	for _, sid := range sessionIDs {
		keys = append(keys, sessionKeyPrefix+sid)
	}
	keys = append(keys, key)
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		return 0, err
	}
	return len(sessionIDs), nil
}
