package invitations

import (
	"net/url"
	"strings"
)

// InviteLink builds the accept URL mailed to an invitee.
func InviteLink(appOrigin, token string) string {
	q := url.Values{}
	q.Set("utm_source", "invite email")
	q.Set("utm_medium", "email")
	q.Set("utm_campaign", "invitations")
	return strings.TrimRight(appOrigin, "/") + "/team-invitation/" + url.PathEscape(token) + "?" + q.Encode()
}
