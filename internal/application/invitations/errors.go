package invitations

import "errors"

var (
	ErrInviterNotFound    = errors.New("User not found")
	ErrTeamNotFound       = errors.New("Team not found")
	ErrOrgNotFound        = errors.New("Organization not found")
	ErrTokenRequired      = errors.New("Invitation token is required")
	ErrInvalidToken       = errors.New("Invalid invitation token")
	ErrInvitationExpired  = errors.New("Invitation has expired")
	ErrInvitationAccepted = errors.New("Invitation has already been accepted")
	ErrEmailMismatch      = errors.New("Invitation email does not match logged-in user")
	ErrUserNotFound       = errors.New("User not found")
	ErrNotTeamMember      = errors.New("You are not a member of this team")
)
