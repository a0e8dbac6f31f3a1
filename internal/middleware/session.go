package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig for the Redis-backed session cookie.
type SessionConfig struct {
	Secret            string // signs the cookie; empty accepts unsigned cookies (development and tests)
	AllowCrossSiteDev bool
	IsProduction      bool
	CookieDomain      string // set on logout in production so the shared-domain cookie is cleared
}

const (
	SessionCookieName  = "huddle.sid"
	SessionRedisPrefix = "session:"
	sessionMaxAge      = 24 * time.Hour

	sessionDataLocal = "session_data"
	sessionIDLocal   = "session_id"
)

// SessionUser is the signed-in user stored under "user" in the session.
type SessionUser struct {
	UserID        string `json:"userId"`
	PreferredName string `json:"preferredName"`
	Email         string `json:"email"`
}

// ID parses UserID; a malformed id yields uuid.Nil.
func (u *SessionUser) ID() uuid.UUID {
	id, err := uuid.Parse(u.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

type sessionData struct {
	User *SessionUser `json:"user,omitempty"`
}

// signSessionID is the express-session cookie signature: unpadded base64 of HMAC-SHA256(secret, id).
func signSessionID(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}

// SessionCookieValue is the cookie value for sid: "s:<id>.<signature>", or "s:<id>" without a secret.
func SessionCookieValue(cfg SessionConfig, sid string) string {
	if cfg.Secret == "" {
		return "s:" + sid
	}
	return "s:" + sid + "." + signSessionID(sid, cfg.Secret)
}

// parseSessionCookie returns the session id of a cookie value, or "" when the signature
// does not match the secret.
func parseSessionCookie(value, secret string) string {
	value = strings.TrimPrefix(value, "s:")
	id, sig, signed := strings.Cut(value, ".")
	if secret == "" {
		return id
	}
	if !signed || !hmac.Equal([]byte(sig), []byte(signSessionID(id, secret))) {
		return ""
	}
	return id
}

// Session loads the session named by the cookie from Redis before the handler runs and
// saves it afterwards. Cookies whose signature does not match cfg.Secret start a blank session.
func Session(rdb redis.UniversalClient, cfg SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := ""
		if raw := c.Cookies(SessionCookieName); raw != "" {
			sessionID = parseSessionCookie(raw, cfg.Secret)
			if sessionID == "" {
				log.Debug().Msg("session cookie signature rejected")
			}
		}

		data := &sessionData{}
		if sessionID != "" {
			b, err := rdb.Get(c.UserContext(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, data)
			} else if err != redis.Nil {
				log.Warn().Err(err).Msg("session load failed")
			}
		}
		c.Locals(sessionDataLocal, data)
		c.Locals(sessionIDLocal, sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		sid := GetSessionID(c)
		if sid == "" {
			return nil
		}
		cur, _ := c.Locals(sessionDataLocal).(*sessionData)
		if cur == nil || cur.User == nil {
			return nil
		}
		b, _ := json.Marshal(cur)
		if err := rdb.Set(c.UserContext(), SessionRedisPrefix+sid, b, sessionMaxAge).Err(); err != nil {
			log.Warn().Err(err).Msg("session save failed")
		}
		return nil
	}
}

// GetSessionID returns the current session ID.
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}

// SetSessionUser stores user in the session; it is persisted when the request completes.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	c.Locals(sessionDataLocal, &sessionData{User: &user})
}

// RegenerateSessionID creates a new session ID. The caller sets the cookie to SessionCookieValue.
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals(sessionIDLocal, newID)
	return newID
}

// DestroySession clears the session in Locals; the caller deletes the Redis key and cookie.
func DestroySession(c *fiber.Ctx) {
	c.Locals(sessionDataLocal, &sessionData{})
}

// SessionCookieConfig returns the cookie options used for setting and clearing the session.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if cfg.AllowCrossSiteDev {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return fiber.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction || cfg.AllowCrossSiteDev,
		SameSite: sameSite,
	}
}
