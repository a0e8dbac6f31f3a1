package middleware

import (
	"huddle-backend/internal/domain"
	"huddle-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequireTeamMember guards routes under /teams/:teamId so only active members of the team
// get through. Unknown teams and strangers both get 404 so team ids cannot be probed.
func RequireTeamMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		teamID, err := uuid.Parse(c.Params("teamId"))
		if err != nil {
			return response.Error(c, "Invalid team id", fiber.StatusBadRequest, nil)
		}
		var count int64
		err = db.WithContext(c.UserContext()).Model(&domain.TeamMember{}).
			Where("team_id = ? AND user_id = ? AND is_not_removed = ?", teamID, user.ID(), true).
			Count(&count).Error
		if err != nil {
			return response.Internal(c)
		}
		if count == 0 {
			return response.NotFound(c, "Team not found")
		}
		return c.Next()
	}
}
