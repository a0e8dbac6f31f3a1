package policies

import (
	"huddle-backend/internal/domain"

	"github.com/google/uuid"
)

// FilterInvitees removes repeated emails (exact, case-sensitive match, first occurrence wins)
// and emails whose user is already an active member of the team. memberIDs holds the user ids
// on the team. Input order is preserved.
func FilterInvitees(invitees []string, users []domain.User, memberIDs map[uuid.UUID]struct{}) []string {
	byEmail := make(map[string]uuid.UUID, len(users))
	for _, u := range users {
		byEmail[u.Email] = u.UserID
	}

	seen := make(map[string]struct{}, len(invitees))
	out := make([]string, 0, len(invitees))
	for _, email := range invitees {
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		if id, known := byEmail[email]; known {
			if _, member := memberIDs[id]; member {
				continue
			}
		}
		out = append(out, email)
	}
	return out
}
