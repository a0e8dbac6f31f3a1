package constants

import "time"

// Trust scoring thresholds for email invitations.
const (
	// InviteTrustThreshold is the minimum score that still allows email invitations.
	InviteTrustThreshold = 0.15
	// InviteTrustLow is returned for untrusted senders.
	InviteTrustLow = 0.05
	// InviteTrustGrace is returned while a team has sent few invitations.
	InviteTrustGrace = 0.95
	// InviteTrustGraceCount is how many invitations a team may send before acceptance counts.
	InviteTrustGraceCount = 10
)

// MaxInviteesPerRequest caps how many emails one invite request may carry.
const MaxInviteesPerRequest = 100

// InviteTokenBytes is the number of random bytes behind each invitation token.
const InviteTokenBytes = 48

// DefaultInvitationLifespan is how long an invitation link stays valid.
const DefaultInvitationLifespan = 30 * 24 * time.Hour

// DefaultInviteCreationGrace is the window after team creation in which invitations count as
// sent during onboarding.
const DefaultInviteCreationGrace = 10 * time.Second

// DefaultUntrustedDomains are email domains whose senders and recipients never get email invitations.
var DefaultUntrustedDomains = []string{"tempmail.cn", "qq.com"}

// Suggested action types.
const (
	SuggestedActionInviteYourTeam = "inviteYourTeam"
)

// Real-time subscription channels.
const (
	ChannelNotification = "notification"
)

// Analytics event names.
const (
	EventInviteEmailSent = "Invite Email Sent"
)

// Invite targets reported to analytics.
const (
	InviteToMeeting = "meeting"
	InviteToTeam    = "team"
)
