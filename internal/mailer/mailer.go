package mailer

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("smtp is not configured")

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	BodyText string
	BodyHTML string
}

// Sender dispatches a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPSender delivers mail through a plain-auth SMTP relay. STARTTLS is
// negotiated by net/smtp when the server offers it.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender builds the SMTP sender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers msg, failing fast when the relay is not configured.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Host == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return ErrNotConfigured
	}
	if msg.To == "" {
		return errors.New("recipient address is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	raw := BuildMIME(s.cfg.FromName, s.cfg.FromEmail, msg)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

const mimeBoundary = "=_lead-mailer-boundary"

// BuildMIME renders the wire form of a message. Plain-text only messages get
// a simple body; messages with HTML become multipart/alternative.
func BuildMIME(fromName, fromEmail string, msg Message) []byte {
	var b strings.Builder

	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), fromEmail)
	}
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.BodyHTML == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(msg.BodyText)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mimeBoundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", mimeBoundary, msg.BodyText)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", mimeBoundary, msg.BodyHTML)
	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String())
}

const unsubscribeMarker = "{unsubscribe_link}"

// UnsubscribeLink builds the public opt-out URL for a lead token.
func UnsubscribeLink(baseURL, token string) string {
	return fmt.Sprintf("%s/api/v1/unsubscribe/%s", strings.TrimRight(baseURL, "/"), token)
}

// ApplyUnsubscribe injects the opt-out link: an explicit placeholder is
// substituted in place, otherwise a footer is appended.
func ApplyUnsubscribe(body, link string) string {
	if strings.Contains(body, unsubscribeMarker) {
		return strings.ReplaceAll(body, unsubscribeMarker, link)
	}
	return body + fmt.Sprintf("\n\n---\nTo unsubscribe, click here: %s", link)
}
