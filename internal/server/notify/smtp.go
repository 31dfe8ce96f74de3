package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

// smtpSendMail is a seam for tests.
var smtpSendMail = smtp.SendMail

// SMTPNotifier relays messages through an SMTP server using PLAIN auth
// when a user is configured.
type SMTPNotifier struct {
	addr string
	host string
	user string
	pass string
	from string
}

func NewSMTPNotifier(host string, port int, user, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		host: host,
		user: user,
		pass: password,
		from: from,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if n.user != "" {
		auth = smtp.PlainAuth("", n.user, n.pass, n.host)
	}

	if err := smtpSendMail(n.addr, auth, n.from, []string{m.To}, m.RFC822(n.from, time.Now())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
