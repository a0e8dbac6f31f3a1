package suggestedactions

import (
	"context"
	"testing"
	"time"

	"huddle-backend/internal/domain"
	"huddle-backend/internal/pkg/constants"
	"huddle-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveSuggestedAction(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := &Service{DB: db, Now: func() time.Time { return now }}
	ctx := context.Background()
	user := uuid.New()

	got, err := svc.RemoveSuggestedAction(ctx, user, constants.SuggestedActionInviteYourTeam)
	require.NoError(t, err)
	assert.Nil(t, got, "nothing to remove")

	other := &domain.SuggestedAction{UserID: user, Type: "tryRetroMeeting"}
	action := &domain.SuggestedAction{UserID: user, Type: constants.SuggestedActionInviteYourTeam}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, db.Create(action).Error)

	got, err = svc.RemoveSuggestedAction(ctx, user, constants.SuggestedActionInviteYourTeam)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, action.SuggestedActionID, *got)

	var reloaded domain.SuggestedAction
	require.NoError(t, db.First(&reloaded, "suggested_action_id = ?", action.SuggestedActionID).Error)
	require.NotNil(t, reloaded.RemovedAt)
	assert.True(t, now.Equal(*reloaded.RemovedAt))

	require.NoError(t, db.First(&reloaded, "suggested_action_id = ?", other.SuggestedActionID).Error)
	assert.Nil(t, reloaded.RemovedAt)

	got, err = svc.RemoveSuggestedAction(ctx, user, constants.SuggestedActionInviteYourTeam)
	require.NoError(t, err)
	assert.Nil(t, got, "already removed")
}
