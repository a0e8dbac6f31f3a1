package policies

import (
	"context"
	"errors"

	"huddle-backend/internal/domain"
	"huddle-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const maxConcurrentApprovals = 8

// EmailApprover decides whether an organization lets an email address be invited.
// A nil error approves; ErrEmailDomainNotApproved rejects; any other error is a lookup failure.
type EmailApprover interface {
	IsEmailApproved(ctx context.Context, email string, orgID uuid.UUID) error
}

// OrgScopedApprover is an EmailApprover that can load an org's rules once and answer
// every later check from memory.
type OrgScopedApprover interface {
	ForOrg(ctx context.Context, orgID uuid.UUID) (EmailApprover, error)
}

// OrgDomainApprover approves emails against the organization's approved domain list.
type OrgDomainApprover struct {
	DB *gorm.DB
}

func (a *OrgDomainApprover) IsEmailApproved(ctx context.Context, email string, orgID uuid.UUID) error {
	set, err := a.ForOrg(ctx, orgID)
	if err != nil {
		return err
	}
	return set.IsEmailApproved(ctx, email, orgID)
}

// ForOrg loads the org's live approved domains with a single query.
func (a *OrgDomainApprover) ForOrg(ctx context.Context, orgID uuid.UUID) (EmailApprover, error) {
	var domains []domain.OrganizationApprovedDomain
	if err := a.DB.WithContext(ctx).
		Where("org_id = ? AND removed_at IS NULL", orgID).
		Find(&domains).Error; err != nil {
		return nil, err
	}
	set := make(approvedDomains, len(domains))
	for _, d := range domains {
		set[validation.NormalizedDomain("@"+d.Domain)] = struct{}{}
	}
	return set, nil
}

// approvedDomains is an in-memory domain allowlist; empty approves everything.
type approvedDomains map[string]struct{}

func (s approvedDomains) IsEmailApproved(_ context.Context, email string, _ uuid.UUID) error {
	if len(s) == 0 {
		return nil
	}
	if _, ok := s[validation.NormalizedDomain(email)]; ok {
		return nil
	}
	return ErrEmailDomainNotApproved
}

// ApproveInvitees checks every email concurrently and returns the approved ones in input order.
func ApproveInvitees(ctx context.Context, approver EmailApprover, orgID uuid.UUID, emails []string) ([]string, error) {
	if approver == nil || len(emails) == 0 {
		return emails, nil
	}
	if scoped, ok := approver.(OrgScopedApprover); ok {
		loaded, err := scoped.ForOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
		approver = loaded
	}

	approved := make([]bool, len(emails))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentApprovals)
	for i, email := range emails {
		g.Go(func() error {
			err := approver.IsEmailApproved(gctx, email, orgID)
			switch {
			case err == nil:
				approved[i] = true
			case errors.Is(err, ErrEmailDomainNotApproved):
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(emails))
	for i, email := range emails {
		if approved[i] {
			out = append(out, email)
		}
	}
	return out, nil
}
