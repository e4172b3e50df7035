package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

// Mailer delivers account emails. Callers fire sends from background
// goroutines and never propagate delivery errors to the HTTP response.
type Mailer interface {
	SendActivationEmail(ctx context.Context, email, username, activateURL string) error
	SendResetPasswordEmail(ctx context.Context, email, username, resetURL string) error
}

// DevConsoleMailer logs instead of sending. Used in local development and
// tests.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) SendActivationEmail(_ context.Context, email, username, activateURL string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] activation email=%s username=%s url=%s", email, username, activateURL)
	}
	return nil
}

func (m *DevConsoleMailer) SendResetPasswordEmail(_ context.Context, email, username, resetURL string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] reset-password email=%s username=%s url=%s", email, username, resetURL)
	}
	return nil
}

var activateTmpl = template.Must(template.New("activate").Parse(`
<html>
<body>
<p>Hi {{.Username}},</p>
<p>Welcome to DressUp! Please activate your account by clicking the link below:</p>
<p><a href="{{.URL}}">Activate your account</a></p>
<p>The link expires shortly, so don't wait too long.</p>
</body>
</html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<html>
<body>
<p>Hi {{.Username}},</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="{{.URL}}">Reset your password</a></p>
<p>If you didn't request this, you can safely ignore this email.</p>
</body>
</html>`))

// SMTPMailer sends over a STARTTLS SMTP session.
type SMTPMailer struct {
	host     string
	port     string
	sender   string
	password string
}

func NewSMTPMailer(host, port, sender, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
	}
}

func (m *SMTPMailer) SendActivationEmail(_ context.Context, email, username, activateURL string) error {
	return m.send(email, "Activate Your Account!", activateTmpl, map[string]string{
		"Username": username,
		"URL":      activateURL,
	})
}

func (m *SMTPMailer) SendResetPasswordEmail(_ context.Context, email, username, resetURL string) error {
	return m.send(email, "Reset your password!", resetTmpl, map[string]string{
		"Username": username,
		"URL":      resetURL,
	})
}

func (m *SMTPMailer) send(to, subject string, tmpl *template.Template, data map[string]string) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render email template: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.sender)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	auth := smtp.PlainAuth("", m.sender, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.sender, []string{to}, msg.Bytes())
}
