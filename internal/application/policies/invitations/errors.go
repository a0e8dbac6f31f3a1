package policies

import "errors"

var (
	ErrEmailInvitesDisabled   = errors.New("Cannot invite by email. Try using invite link")
	ErrEmailDomainNotApproved = errors.New("Email domain is not approved by the organization")
)
