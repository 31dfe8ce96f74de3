// Package notify delivers outgoing user messages such as verification
// emails. Backends: the application log, SMTP, and an S3 mail-drop bucket
// that an external mailer drains.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/config"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier sends a message or reports why it could not.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}

// VerificationLink builds the link a new user follows to verify the address.
func VerificationLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/verify-email?token=" + url.QueryEscape(token)
}

// VerificationMessage is the email sent after registration.
func VerificationMessage(baseURL, to, name, token string) Message {
	link := VerificationLink(baseURL, token)
	return Message{
		To:      to,
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hi %s,\n\nPlease confirm your email address by opening the link below.\n"+
			"The link is valid for 24 hours.\n\n%s\n", name, link),
	}
}

// RFC822 renders m with the given sender as a minimal RFC 5322 message.
func (m Message) RFC822(from string, date time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return b.Bytes()
}

// New returns the backend selected by cfg.Notifier.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierLog, "":
		return NewLogNotifier(logger), nil
	case config.NotifierSMTP:
		return NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom), nil
	case config.NotifierS3:
		return NewS3MailDrop(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}
}
