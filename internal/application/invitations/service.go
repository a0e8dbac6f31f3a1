package invitations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"huddle-backend/internal/application/analytics"
	"huddle-backend/internal/application/emails"
	"huddle-backend/internal/application/meetings"
	invitepolicies "huddle-backend/internal/application/policies/invitations"
	"huddle-backend/internal/application/suggestedactions"
	"huddle-backend/internal/domain"
	"huddle-backend/internal/infrastructure/pubsub"
	"huddle-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service runs the team invitation workflow and the token operations around it.
type Service struct {
	DB        *gorm.DB
	Trust     *invitepolicies.TrustScorer
	Approver  invitepolicies.EmailApprover
	Tokens    *TokenIssuer
	Mailer    emails.Mailer
	Tracker   analytics.Tracker
	Publisher pubsub.Publisher
	Meetings  *meetings.Service
	Actions   *suggestedactions.Service

	AppOrigin     string
	Lifespan      time.Duration // zero means constants.DefaultInvitationLifespan
	CreationGrace time.Duration // zero means constants.DefaultInviteCreationGrace
	Now           func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) lifespan() time.Duration {
	if s.Lifespan > 0 {
		return s.Lifespan
	}
	return constants.DefaultInvitationLifespan
}

func (s *Service) creationGrace() time.Duration {
	if s.CreationGrace > 0 {
		return s.CreationGrace
	}
	return constants.DefaultInviteCreationGrace
}

// InviteToTeamInput is one invite request made by ViewerID.
type InviteToTeamInput struct {
	Invitees    []string
	TeamID      uuid.UUID
	MeetingID   *uuid.UUID
	ViewerID    uuid.UUID
	MutatorID   string
	OperationID string
}

// InviteToTeamResult lists the invitees whose email was accepted by the mail transport.
type InviteToTeamResult struct {
	TeamID                   uuid.UUID  `json:"teamId"`
	Invitees                 []string   `json:"invitees"`
	RemovedSuggestedActionID *uuid.UUID `json:"removedSuggestedActionId,omitempty"`
}

// InviteToTeam invites emails to a team.
//
// A low trust score returns invitepolicies.ErrEmailInvitesDisabled before anything is written.
// A missing inviter or team returns ErrInviterNotFound or ErrTeamNotFound. Invitations are
// persisted before emails go out, so an invitee whose email fails keeps its invitation but
// is left out of the result.
func (s *Service) InviteToTeam(ctx context.Context, in InviteToTeamInput) (*InviteToTeamResult, error) {
	db := s.DB.WithContext(ctx)
	now := s.now()

	var inviter domain.User
	if err := db.Where("user_id = ?", in.ViewerID).First(&inviter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviterNotFound
		}
		return nil, err
	}

	score, err := s.Trust.Score(ctx, &inviter, in.TeamID, in.Invitees)
	if err != nil {
		return nil, fmt.Errorf("score inviter: %w", err)
	}
	if !invitepolicies.IsTrusted(score) {
		log.Warn().
			Str("viewer_id", in.ViewerID.String()).
			Str("team_id", in.TeamID.String()).
			Float64("trust_score", score).
			Int("invitees", len(in.Invitees)).
			Msg("email invitations rejected by trust score")
		return nil, invitepolicies.ErrEmailInvitesDisabled
	}

	var (
		users []domain.User
		team  domain.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(in.Invitees) == 0 {
			return nil
		}
		return s.DB.WithContext(gctx).Where("email IN ?", in.Invitees).Find(&users).Error
	})
	g.Go(func() error {
		err := s.DB.WithContext(gctx).Where("team_id = ?", in.TeamID).First(&team).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var org domain.Organization
	if err := db.Where("org_id = ?", team.OrgID).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}

	memberIDs, err := s.activeMemberIDs(ctx, team.TeamID, users)
	if err != nil {
		return nil, err
	}
	newInvitees := invitepolicies.FilterInvitees(in.Invitees, users, memberIDs)
	allowed, err := invitepolicies.ApproveInvitees(ctx, s.Approver, org.OrgID, newInvitees)
	if err != nil {
		return nil, fmt.Errorf("approve invitees: %w", err)
	}

	tokens, err := s.Tokens.IssueN(len(allowed))
	if err != nil {
		return nil, err
	}

	invitations, notifications, err := s.writeInvitations(ctx, writeParams{
		Invitees:  allowed,
		Tokens:    tokens,
		Users:     users,
		InviterID: inviter.UserID,
		TeamID:    team.TeamID,
		MeetingID: in.MeetingID,
		ExpiresAt: now.Add(s.lifespan()),
	})
	if err != nil {
		return nil, err
	}

	var removedActionID *uuid.UUID
	if team.IsOnboardTeam && s.Actions != nil {
		removedActionID, err = s.Actions.RemoveSuggestedAction(ctx, inviter.UserID, constants.SuggestedActionInviteYourTeam)
		if err != nil {
			return nil, fmt.Errorf("remove suggested action: %w", err)
		}
	}

	var bestMeeting *domain.Meeting
	if s.Meetings != nil {
		bestMeeting, err = s.Meetings.BestInvitationMeeting(ctx, team.TeamID, in.MeetingID)
		if err != nil {
			return nil, fmt.Errorf("best invitation meeting: %w", err)
		}
	}

	sent := s.sendInviteEmails(ctx, inviteEmailParams{
		Invitations: invitations,
		Users:       users,
		Inviter:     &inviter,
		Team:        &team,
		Org:         &org,
		Meeting:     bestMeeting,
	})

	inviteTo := constants.InviteToTeam
	if in.MeetingID != nil {
		inviteTo = constants.InviteToMeeting
	}
	s.trackInviteEmails(ctx, trackParams{
		Invitees:            allowed,
		Users:               users,
		Sent:                sent,
		ViewerID:            inviter.UserID,
		TeamID:              team.TeamID,
		InviteTo:            inviteTo,
		IsInvitedOnCreation: team.CreatedAt.After(now.Add(-s.creationGrace())),
		At:                  now,
	})

	successful := make([]string, 0, len(allowed))
	for i, email := range allowed {
		if sent[i] {
			successful = append(successful, email)
		}
	}
	result := &InviteToTeamResult{
		TeamID:                   team.TeamID,
		Invitees:                 successful,
		RemovedSuggestedActionID: removedActionID,
	}

	s.publishInvitations(ctx, result, notifications, in.MutatorID, in.OperationID)
	return result, nil
}

// activeMemberIDs returns which of users are current members of the team.
func (s *Service) activeMemberIDs(ctx context.Context, teamID uuid.UUID, users []domain.User) (map[uuid.UUID]struct{}, error) {
	ids := make(map[uuid.UUID]struct{})
	if len(users) == 0 {
		return ids, nil
	}
	userIDs := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.UserID)
	}
	var members []domain.TeamMember
	err := s.DB.WithContext(ctx).
		Where("team_id = ? AND user_id IN ? AND is_not_removed = ?", teamID, userIDs, true).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("load team members: %w", err)
	}
	for _, m := range members {
		ids[m.UserID] = struct{}{}
	}
	return ids, nil
}

func userByEmail(users []domain.User, email string) *domain.User {
	for i := range users {
		if users[i].Email == email {
			return &users[i]
		}
	}
	return nil
}
