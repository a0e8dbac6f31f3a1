package auth

import (
	"errors"

	authsvc "huddle-backend/internal/application/auth"
	"huddle-backend/internal/middleware"
	"huddle-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder authsvc.UserFinder
	Rdb        redis.UniversalClient
	Config     middleware.SessionConfig
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login: verify credentials, start a fresh session and track it under user_sessions:<userId>.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, authsvc.ErrEmailPasswordRequired):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, authsvc.ErrInvalidEmail), errors.Is(err, authsvc.ErrIncorrectPassword):
		return response.Unauthorized(c, err.Error())
	case err != nil:
		log.Error().Err(err).Msg("login lookup failed")
		return response.Internal(c)
	}

	sessionID := middleware.RegenerateSessionID(c)
	sessionUser := middleware.SessionUser{
		UserID:        user.UserID.String(),
		PreferredName: user.PreferredName,
		Email:         user.Email,
	}
	middleware.SetSessionUser(c, sessionUser)

	if err := h.Rdb.SAdd(c.UserContext(), authsvc.UserSessionsPrefix+sessionUser.UserID, sessionID).Err(); err != nil {
		log.Error().Err(err).Msg("track user session")
		return response.Internal(c)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = middleware.SessionCookieValue(h.Config, sessionID)
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{"user": sessionUser}, nil)
}

// Me GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		log.Debug().Bool("session_present", middleware.GetSessionID(c) != "").Msg("auth/me: not authenticated")
		return response.Unauthorized(c, authsvc.ErrNotAuthenticated.Error())
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout: drop the session from Redis and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sessionID := middleware.GetSessionID(c)
	if user := middleware.CurrentUser(c); user != nil && sessionID != "" {
		_ = h.Rdb.SRem(ctx, authsvc.UserSessionsPrefix+user.UserID, sessionID).Err()
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	if h.Config.IsProduction && !h.Config.AllowCrossSiteDev {
		cookie.Domain = h.Config.CookieDomain
	}
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// LogoutAll DELETE /api/v1/auth/sessions: end every session of the signed-in user, this one included.
func (h *Handlers) LogoutAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, authsvc.ErrNotAuthenticated.Error())
	}
	n, err := authsvc.DestroyUserSessions(c.UserContext(), h.Rdb, user.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.UserID).Msg("destroy user sessions")
		return response.Internal(c)
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "All sessions ended", fiber.Map{"sessions": n}, nil)
}
