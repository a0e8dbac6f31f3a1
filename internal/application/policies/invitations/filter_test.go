package policies

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"huddle-backend/internal/domain"
	"huddle-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFilterInvitees_DedupesAndKeepsOrder(t *testing.T) {
	out := FilterInvitees([]string{"b@x.com", "a@x.com", "b@x.com", "c@x.com", "a@x.com"}, nil, nil)
	assert.Equal(t, []string{"b@x.com", "a@x.com", "c@x.com"}, out)
}

func TestFilterInvitees_DedupeIsCaseSensitive(t *testing.T) {
	out := FilterInvitees([]string{"a@x.com", "A@x.com"}, nil, nil)
	assert.Equal(t, []string{"a@x.com", "A@x.com"}, out)
}

func TestFilterInvitees_ExcludesTeamMembers(t *testing.T) {
	member := domain.User{UserID: uuid.New(), Email: "existing@team.com"}
	outsider := domain.User{UserID: uuid.New(), Email: "known@else.com"}
	memberIDs := map[uuid.UUID]struct{}{member.UserID: {}}

	out := FilterInvitees(
		[]string{"a@x.com", "a@x.com", "existing@team.com", "known@else.com"},
		[]domain.User{member, outsider},
		memberIDs,
	)
	assert.Equal(t, []string{"a@x.com", "known@else.com"}, out)
}

func TestOrgDomainApprover_NoDomainsApprovesAll(t *testing.T) {
	db := testutil.OpenDB(t)
	a := &OrgDomainApprover{DB: db}
	assert.NoError(t, a.IsEmailApproved(context.Background(), "anyone@anywhere.com", uuid.New()))
}

func TestOrgDomainApprover_RestrictsToApprovedDomains(t *testing.T) {
	db := testutil.OpenDB(t)
	orgID := uuid.New()
	require.NoError(t, db.Create(&domain.OrganizationApprovedDomain{OrgID: orgID, Domain: "Acme.io"}).Error)
	a := &OrgDomainApprover{DB: db}

	assert.NoError(t, a.IsEmailApproved(context.Background(), "dev@acme.io", orgID))
	err := a.IsEmailApproved(context.Background(), "dev@other.io", orgID)
	assert.ErrorIs(t, err, ErrEmailDomainNotApproved)
}

type stubApprover struct {
	mu       sync.Mutex
	calls    []string
	rejected map[string]bool
	fail     error
}

func (s *stubApprover) IsEmailApproved(_ context.Context, email string, _ uuid.UUID) error {
	s.mu.Lock()
	s.calls = append(s.calls, email)
	s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if s.rejected[email] {
		return ErrEmailDomainNotApproved
	}
	return nil
}

func TestApproveInvitees_PreservesOrder(t *testing.T) {
	stub := &stubApprover{rejected: map[string]bool{"b@x.com": true}}
	out, err := ApproveInvitees(context.Background(), stub, uuid.New(), []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "c@x.com", "d@x.com"}, out)
	assert.Len(t, stub.calls, 4)
}

func TestApproveInvitees_LookupFailure(t *testing.T) {
	boom := errors.New("db down")
	_, err := ApproveInvitees(context.Background(), &stubApprover{fail: boom}, uuid.New(), []string{"a@x.com"})
	assert.ErrorIs(t, err, boom)
}

type slowApprover struct {
	inFlight, peak atomic.Int32
}

func (s *slowApprover) IsEmailApproved(context.Context, string, uuid.UUID) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

func TestApproveInvitees_BoundsConcurrency(t *testing.T) {
	emails := make([]string, 200)
	for i := range emails {
		emails[i] = uuid.NewString() + "@x.com"
	}
	a := &slowApprover{}
	out, err := ApproveInvitees(context.Background(), a, uuid.New(), emails)
	require.NoError(t, err)
	assert.Len(t, out, 200)
	assert.LessOrEqual(t, a.peak.Load(), int32(maxConcurrentApprovals))
}

func TestApproveInvitees_LoadsOrgDomainsOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	orgID := uuid.New()
	require.NoError(t, db.Create(&domain.OrganizationApprovedDomain{OrgID: orgID, Domain: "acme.io"}).Error)

	var queries atomic.Int32
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("count_queries", func(*gorm.DB) {
		queries.Add(1)
	}))

	emails := make([]string, 0, 50)
	for i := 0; i < 25; i++ {
		emails = append(emails, uuid.NewString()+"@acme.io", uuid.NewString()+"@other.io")
	}
	out, err := ApproveInvitees(context.Background(), &OrgDomainApprover{DB: db}, orgID, emails)
	require.NoError(t, err)
	assert.Len(t, out, 25)
	for _, email := range out {
		assert.Contains(t, email, "@acme.io")
	}
	assert.Equal(t, int32(1), queries.Load())
}
