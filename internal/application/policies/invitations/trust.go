package policies

import (
	"context"

	"huddle-backend/internal/domain"
	"huddle-backend/internal/pkg/constants"
	"huddle-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TrustScorer rates how safe it is to let an inviter send email invitations for a team.
type TrustScorer struct {
	DB *gorm.DB
	// UntrustedDomains are lower-case email domains; nil means constants.DefaultUntrustedDomains.
	UntrustedDomains []string
}

// Score returns a value in [0,1]. Senders or recipients on an untrusted domain score
// InviteTrustLow. Otherwise the team's invitation history decides: a team that has sent at most
// InviteTrustGraceCount invitations scores InviteTrustGrace, a team with none accepted scores
// InviteTrustLow, and anything else scores its acceptance ratio.
func (s *TrustScorer) Score(ctx context.Context, inviter *domain.User, teamID uuid.UUID, inviteeEmails []string) (float64, error) {
	untrusted := s.untrusted()
	if _, bad := untrusted[validation.NormalizedDomain(inviter.Email)]; bad {
		return constants.InviteTrustLow, nil
	}
	for _, email := range inviteeEmails {
		if _, bad := untrusted[validation.NormalizedDomain(email)]; bad {
			return constants.InviteTrustLow, nil
		}
	}

	var total, pending int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&domain.TeamInvitation{}).
			Where("team_id = ?", teamID).Count(&total).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&domain.TeamInvitation{}).
			Where("team_id = ? AND accepted_at IS NULL", teamID).Count(&pending).Error
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if total <= constants.InviteTrustGraceCount {
		return constants.InviteTrustGrace, nil
	}
	accepted := total - pending
	if accepted <= 0 {
		return constants.InviteTrustLow, nil
	}
	return float64(accepted) / float64(total), nil
}

func (s *TrustScorer) untrusted() map[string]struct{} {
	domains := s.UntrustedDomains
	if domains == nil {
		domains = constants.DefaultUntrustedDomains
	}
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[d] = struct{}{}
	}
	return set
}

// IsTrusted reports whether score permits email invitations.
func IsTrusted(score float64) bool {
	return score >= constants.InviteTrustThreshold
}
