package emails

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

// TeamInviteProps carries everything the invitation email shows.
type TeamInviteProps struct {
	TeamName     string
	InviterName  string
	InviterEmail string
	InviteeName  string // empty when the invitee has no account yet
	InviteeEmail string
	InviteLink   string
	MeetingName  string // empty when no active meeting is linked
	MeetingType  string
}

// Rendered is a ready-to-send subject and body pair.
type Rendered struct {
	Subject string
	Body    string
	HTML    string
}

var teamInviteHTML = template.Must(template.New("teamInvite").Parse(`<h1>Join {{.TeamName}} on Huddle</h1>
<p>Hi {{if .InviteeName}}{{.InviteeName}}{{else}}{{.InviteeEmail}}{{end}},</p>
<p><b>{{.InviterName}}</b> (<a href="mailto:{{.InviterEmail}}">{{.InviterEmail}}</a>) has invited you to join the team <b>{{.TeamName}}</b>.</p>
{{- if .MeetingName}}
<p>The team is meeting right now: <b>{{.MeetingName}}</b>. Accept to jump straight in.</p>
{{- end}}
<p><a class="huddle-button" href="{{.InviteLink}}">Join team</a></p>
<p class="footer-text">Or copy this link into your browser: {{.InviteLink}}</p>`))

var teamInviteText = texttemplate.Must(texttemplate.New("teamInviteText").Parse(`Hi {{if .InviteeName}}{{.InviteeName}}{{else}}{{.InviteeEmail}}{{end}},

{{.InviterName}} ({{.InviterEmail}}) has invited you to join the team {{.TeamName}} on Huddle.
{{- if .MeetingName}}
The team is meeting right now: {{.MeetingName}}.
{{- end}}

Join the team: {{.InviteLink}}
`))

// TeamInviteSubject builds the subject line; a linked meeting changes the wording.
func TeamInviteSubject(p TeamInviteProps) string {
	if p.MeetingName != "" {
		return fmt.Sprintf("%s has invited you to join a meeting in %s", p.InviterName, p.TeamName)
	}
	return fmt.Sprintf("%s has invited you to join %s on Huddle", p.InviterName, p.TeamName)
}

// TeamInviteEmail renders the subject, the plain-text body and the HTML body.
func TeamInviteEmail(p TeamInviteProps) (Rendered, error) {
	var content bytes.Buffer
	if err := teamInviteHTML.Execute(&content, p); err != nil {
		return Rendered{}, fmt.Errorf("render team invite html: %w", err)
	}
	var text bytes.Buffer
	if err := teamInviteText.Execute(&text, p); err != nil {
		return Rendered{}, fmt.Errorf("render team invite text: %w", err)
	}
	subject := TeamInviteSubject(p)
	html, err := EmailLayout(subject, template.HTML(content.String()))
	if err != nil {
		return Rendered{}, fmt.Errorf("render layout: %w", err)
	}
	return Rendered{Subject: subject, Body: text.String(), HTML: html}, nil
}
