package emails

import (
	"bytes"
	"html/template"
	"time"
)

// Brand palette for transactional mail.
const (
	themePrimary   = "#2D6AE3"
	themeTextMain  = "#1F2937"
	themeTextMuted = "#6B7280"
	themeBgBody    = "#F3F4F6"
	themeWhite     = "#FFFFFF"
	supportAddress = "support@huddle.team"
)

type layoutData struct {
	Title     string
	Content   template.HTML
	Year      int
	Primary   string
	TextMain  string
	TextMuted string
	BgBody    string
	White     string
	Support   string
}

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; width: 100% !important; background-color: {{.BgBody}}; -webkit-font-smoothing: antialiased; }
    table { border-collapse: collapse; }
    body, td, p, a, li { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; color: {{.TextMain}}; }
    .content-body p { margin: 0 0 24px 0; font-size: 16px; line-height: 1.6; color: #374151; }
    .content-body h1 { color: #111827; font-size: 24px; margin-top: 0; margin-bottom: 20px; font-weight: 700; }
    .content-body a { color: {{.Primary}}; font-weight: 600; text-decoration: none; }
    .huddle-button { display: inline-block; background-color: {{.Primary}}; color: #ffffff !important; padding: 12px 32px; border-radius: 6px; font-weight: 600; font-size: 15px; }
    .footer-text { color: {{.TextMuted}}; font-size: 13px; line-height: 1.5; }
    @media only screen and (max-width: 600px) { .main-container { width: 100% !important; } }
  </style>
</head>
<body style="margin: 0; padding: 0; background-color: {{.BgBody}};">
  <table role="presentation" width="100%" border="0" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 40px 0;">
        <table class="main-container" role="presentation" width="600" border="0" cellspacing="0" cellpadding="0" style="width: 600px; background-color: {{.White}}; border-radius: 8px;">
          <tr><td class="content-body" style="padding: 48px 48px 30px 48px;">{{.Content}}</td></tr>
          <tr>
            <td style="padding: 0 48px 30px 48px;">
              <p style="margin: 0; font-size: 14px; color: #4B5563;">Questions? Write to <a href="mailto:{{.Support}}">{{.Support}}</a></p>
            </td>
          </tr>
          <tr>
            <td align="center" style="padding: 24px 48px 40px 48px;">
              <p class="footer-text" style="margin: 0;">© {{.Year}} Huddle. All rights reserved.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

// EmailLayout wraps already-escaped content HTML in the product layout.
func EmailLayout(title string, content template.HTML) (string, error) {
	var buf bytes.Buffer
	err := layoutTmpl.Execute(&buf, layoutData{
		Title:     title,
		Content:   content,
		Year:      time.Now().Year(),
		Primary:   themePrimary,
		TextMain:  themeTextMain,
		TextMuted: themeTextMuted,
		BgBody:    themeBgBody,
		White:     themeWhite,
		Support:   supportAddress,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
