package mail

import (
	"bytes"
	htmltpl "html/template"
	texttpl "text/template"
)

// Subject is the fixed subject line for verification emails.
const Subject = "Verify Your CampusTrade Account"

const htmlBody = `<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: -apple-system, 'Segoe UI', sans-serif; line-height: 1.6; color: #000; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .title { font-size: 28px; font-weight: bold; color: #0ABAB5; text-align: center; margin: 40px 0 0; }
    .otp-box { background: #F2F2F7; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0; }
    .otp-code { font-size: 36px; font-weight: bold; letter-spacing: 8px; color: #0ABAB5; margin: 20px 0; }
    .info { color: #8E8E93; font-size: 14px; text-align: center; margin-top: 30px; }
  </style>
</head>
<body>
  <div class="container">
    <h1 class="title">CampusTrade</h1>
    <p>Hello,</p>
    <p>You're one step away from joining <strong>{{.UniversityName}}</strong> on CampusTrade!</p>
    <div class="otp-box">
      <p style="margin: 0; color: #8E8E93;">Your verification code is:</p>
      <div class="otp-code">{{.Code}}</div>
      <p style="margin: 0; color: #8E8E93; font-size: 14px;">This code expires in 5 minutes</p>
    </div>
    <p>If you didn't request this code, please ignore this email.</p>
    <p class="info">CampusTrade is a campus-exclusive marketplace for verified students.</p>
  </div>
</body>
</html>`

const textBody = `Your CampusTrade verification code is: {{.Code}}

This code expires in 5 minutes.

If you didn't request this code, please ignore this email.

- CampusTrade Team
`

var (
	htmlTemplate = htmltpl.Must(htmltpl.New("otp_html").Parse(htmlBody))
	textTemplate = texttpl.Must(texttpl.New("otp_text").Parse(textBody))
)

type templateData struct {
	Code           string
	UniversityName string
}

// RenderOtpEmail renders the verification email bodies for the given code
// and university. Pure function of its inputs.
func RenderOtpEmail(code, universityName string) (html, text string, err error) {
	data := templateData{Code: code, UniversityName: universityName}

	var hb bytes.Buffer
	if err := htmlTemplate.Execute(&hb, data); err != nil {
		return "", "", err
	}
	var tb bytes.Buffer
	if err := textTemplate.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}
