package invitations

import (
	"context"
	"fmt"
	"time"

	"huddle-backend/internal/application/analytics"
	"huddle-backend/internal/application/emails"
	"huddle-backend/internal/domain"
	"huddle-backend/internal/infrastructure/pubsub"
	"huddle-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentSends = 8

type inviteEmailParams struct {
	Invitations []*domain.TeamInvitation
	Users       []domain.User
	Inviter     *domain.User
	Team        *domain.Team
	Org         *domain.Organization
	Meeting     *domain.Meeting
}

// InviteEmailTags labels invitation mail for the transport's reporting.
func InviteEmailTags(team *domain.Team, org *domain.Organization) []string {
	return []string{
		"type:teamInvitation",
		"tier:" + org.Tier,
		fmt.Sprintf("team:%s:%s:%s:%s", team.Name, org.Name, team.TeamID, org.OrgID),
	}
}

// sendInviteEmails mails every invitation concurrently. The returned slice is index-aligned
// with p.Invitations; true means the transport accepted the email.
func (s *Service) sendInviteEmails(ctx context.Context, p inviteEmailParams) []bool {
	sent := make([]bool, len(p.Invitations))
	if len(p.Invitations) == 0 {
		return sent
	}
	tags := InviteEmailTags(p.Team, p.Org)

	var g errgroup.Group
	g.SetLimit(maxConcurrentSends)
	for i, inv := range p.Invitations {
		g.Go(func() error {
			props := emails.TeamInviteProps{
				TeamName:     p.Team.Name,
				InviterName:  p.Inviter.PreferredName,
				InviterEmail: p.Inviter.Email,
				InviteeEmail: inv.Email,
				InviteLink:   InviteLink(s.AppOrigin, inv.Token),
			}
			if u := userByEmail(p.Users, inv.Email); u != nil {
				props.InviteeName = u.PreferredName
			}
			if p.Meeting != nil {
				props.MeetingName = p.Meeting.Name
				props.MeetingType = p.Meeting.MeetingType
			}
			rendered, err := emails.TeamInviteEmail(props)
			if err == nil {
				err = s.Mailer.SendEmail(ctx, emails.Message{
					To:      inv.Email,
					Subject: rendered.Subject,
					Body:    rendered.Body,
					HTML:    rendered.HTML,
					Tags:    tags,
				})
			}
			if err != nil {
				log.Warn().Err(err).
					Str("team_id", p.Team.TeamID.String()).
					Str("invitation_id", inv.InvitationID.String()).
					Msg("invitation email not sent")
				return nil
			}
			sent[i] = true
			return nil
		})
	}
	_ = g.Wait()
	return sent
}

type trackParams struct {
	Invitees            []string
	Users               []domain.User
	Sent                []bool
	ViewerID            uuid.UUID
	TeamID              uuid.UUID
	InviteTo            string
	IsInvitedOnCreation bool
	At                  time.Time
}

// trackInviteEmails records one event per attempted email. Failures are logged only.
func (s *Service) trackInviteEmails(ctx context.Context, p trackParams) {
	if s.Tracker == nil || len(p.Invitees) == 0 {
		return
	}
	events := make([]analytics.Event, 0, len(p.Invitees))
	for i, email := range p.Invitees {
		events = append(events, analytics.InviteEmailSent{
			ViewerID:            p.ViewerID,
			TeamID:              p.TeamID,
			InviteeEmail:        email,
			IsExistingUser:      userByEmail(p.Users, email) != nil,
			InviteTo:            p.InviteTo,
			Success:             p.Sent[i],
			IsInvitedOnCreation: p.IsInvitedOnCreation,
		}.Event(p.At))
	}
	if err := s.Tracker.Track(ctx, events); err != nil {
		log.Error().Err(err).Str("team_id", p.TeamID.String()).Msg("invite analytics not recorded")
	}
}

// InviteToTeamPayload is pushed to every invitee who already has an account.
type InviteToTeamPayload struct {
	TeamID                       uuid.UUID  `json:"teamId"`
	Invitees                     []string   `json:"invitees"`
	RemovedSuggestedActionID     *uuid.UUID `json:"removedSuggestedActionId,omitempty"`
	TeamInvitationNotificationID uuid.UUID  `json:"teamInvitationNotificationId"`
}

func (s *Service) publishInvitations(ctx context.Context, result *InviteToTeamResult, notifications []*domain.Notification, mutatorID, operationID string) {
	if s.Publisher == nil {
		return
	}
	for _, n := range notifications {
		err := s.Publisher.Publish(ctx, constants.ChannelNotification, n.UserID.String(), pubsub.Envelope{
			Type: "InviteToTeamPayload",
			Data: InviteToTeamPayload{
				TeamID:                       result.TeamID,
				Invitees:                     result.Invitees,
				RemovedSuggestedActionID:     result.RemovedSuggestedActionID,
				TeamInvitationNotificationID: n.NotificationID,
			},
			MutatorID:   mutatorID,
			OperationID: operationID,
		})
		if err != nil {
			log.Warn().Err(err).Str("user_id", n.UserID.String()).Msg("invitation notification not published")
		}
	}
}
