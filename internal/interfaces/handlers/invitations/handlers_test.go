package invitations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"huddle-backend/internal/application/analytics"
	"huddle-backend/internal/application/emails"
	invsvc "huddle-backend/internal/application/invitations"
	"huddle-backend/internal/application/meetings"
	invitepolicies "huddle-backend/internal/application/policies/invitations"
	"huddle-backend/internal/domain"
	"huddle-backend/internal/infrastructure/pubsub"
	"huddle-backend/internal/middleware"
	"huddle-backend/internal/pkg/constants"
	"huddle-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	app    *fiber.App
	db     *gorm.DB
	fx     testutil.Fixture
	asUser *middleware.SessionUser
}

func setupInvitationsTest(t *testing.T) *env {
	t.Helper()
	db := testutil.OpenDB(t)
	rdb, _ := testutil.OpenRedis(t)
	e := &env{db: db, fx: testutil.SeedTeam(t, db)}
	svc := &invsvc.Service{
		DB:        db,
		Trust:     &invitepolicies.TrustScorer{DB: db},
		Approver:  &invitepolicies.OrgDomainApprover{DB: db},
		Tokens:    &invsvc.TokenIssuer{},
		Mailer:    emails.LogMailer{},
		Tracker:   &analytics.StoreTracker{DB: db},
		Publisher: &pubsub.RedisPublisher{Client: rdb},
		Meetings:  &meetings.Service{DB: db},
		AppOrigin: "https://app.huddle.team",
	}
	h := &Handlers{Service: svc}

	e.app = fiber.New()
	e.app.Use(func(c *fiber.Ctx) error {
		if e.asUser != nil {
			middleware.SetSessionUser(c, *e.asUser)
		}
		return c.Next()
	})
	e.app.Post("/teams/:teamId/invitations", h.InviteToTeam)
	e.app.Get("/teams/:teamId/invitations", h.ListTeamInvitations)
	e.app.Post("/public/check-token", h.CheckToken)
	e.app.Post("/accept", h.AcceptInvitation)
	return e
}

func (e *env) signIn(u *domain.User) {
	e.asUser = &middleware.SessionUser{UserID: u.UserID.String(), PreferredName: u.PreferredName, Email: u.Email}
}

func (e *env) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestInviteToTeam(t *testing.T) {
	e := setupInvitationsTest(t)
	e.signIn(e.fx.Member)
	path := "/teams/" + e.fx.Team.TeamID.String() + "/invitations"

	resp, body := e.do(t, "POST", path, InviteRequest{Invitees: []string{"a@x.com", "a@x.com", "lead@acme.io", " b@x.com "}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, e.fx.Team.TeamID.String(), data["teamId"])
	assert.Equal(t, []any{"a@x.com", "b@x.com"}, data["invitees"])

	var count int64
	require.NoError(t, e.db.Model(&domain.TeamInvitation{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
	require.NoError(t, e.db.Model(&domain.AnalyticsEvent{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	resp, body = e.do(t, "GET", path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 2)
}

func TestInviteToTeam_Validation(t *testing.T) {
	e := setupInvitationsTest(t)
	path := "/teams/" + e.fx.Team.TeamID.String() + "/invitations"

	resp, _ := e.do(t, "POST", path, InviteRequest{Invitees: []string{"a@x.com"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	e.signIn(e.fx.Member)
	resp, _ = e.do(t, "POST", path, InviteRequest{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	tooMany := make([]string, constants.MaxInviteesPerRequest+1)
	for i := range tooMany {
		tooMany[i] = uuid.NewString() + "@x.com"
	}
	resp, body := e.do(t, "POST", path, InviteRequest{Invitees: tooMany})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "At most 100 invitees per request", body["error"].(map[string]any)["message"])
	var count int64
	require.NoError(t, e.db.Model(&domain.TeamInvitation{}).Count(&count).Error)
	assert.Zero(t, count)
	resp, _ = e.do(t, "POST", path, InviteRequest{Invitees: []string{"not-an-email"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = e.do(t, "POST", path, InviteRequest{Invitees: []string{"a@x.com"}, MeetingID: "nope"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = e.do(t, "POST", "/teams/bad/invitations", InviteRequest{Invitees: []string{"a@x.com"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, body = e.do(t, "POST", "/teams/"+uuid.NewString()+"/invitations", InviteRequest{Invitees: []string{"a@x.com"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Team not found", body["error"].(map[string]any)["message"])
}

func TestInviteToTeam_TrustRejected(t *testing.T) {
	e := setupInvitationsTest(t)
	e.signIn(e.fx.Member)

	resp, body := e.do(t, "POST", "/teams/"+e.fx.Team.TeamID.String()+"/invitations", InviteRequest{Invitees: []string{"someone@qq.com"}})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "Cannot invite by email. Try using invite link", errBody["message"])
	assert.Equal(t, map[string]any{"invitees": []any{}}, errBody["details"])

	var count int64
	require.NoError(t, e.db.Model(&domain.TeamInvitation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListTeamInvitations_NotMember(t *testing.T) {
	e := setupInvitationsTest(t)
	e.signIn(testutil.CreateUser(t, e.db, "s@x.com", "S"))
	resp, _ := e.do(t, "GET", "/teams/"+e.fx.Team.TeamID.String()+"/invitations", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCheckTokenAndAccept(t *testing.T) {
	e := setupInvitationsTest(t)
	inv, err := domain.NewTeamInvitation(domain.NewTeamInvitationParams{
		Email:     "kim@x.com",
		InvitedBy: e.fx.Member.UserID,
		TeamID:    e.fx.Team.TeamID,
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, e.db.Create(inv).Error)

	resp, _ := e.do(t, "POST", "/public/check-token", TokenRequest{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = e.do(t, "POST", "/public/check-token", TokenRequest{Token: "missing"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := e.do(t, "POST", "/public/check-token", TokenRequest{Token: "tok-1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "kim@x.com", data["email"])
	assert.Equal(t, "Platform", data["teamName"])

	resp, _ = e.do(t, "POST", "/accept", TokenRequest{Token: "tok-1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	e.signIn(testutil.CreateUser(t, e.db, "other@x.com", "Other"))
	resp, _ = e.do(t, "POST", "/accept", TokenRequest{Token: "tok-1"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	e.signIn(testutil.CreateUser(t, e.db, "kim@x.com", "Kim"))
	resp, _ = e.do(t, "POST", "/accept", TokenRequest{Token: "tok-1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = e.do(t, "POST", "/accept", TokenRequest{Token: "tok-1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
