package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"
)

// SMTPMailer sends login emails over SMTP. The Sender field is exposed
// for testing.
type SMTPMailer struct {
	FromAddress string
	Sender      func(*email.Email) error
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTP builds a mailer against host:port with PLAIN auth when a
// username is configured.
func NewSMTP(host, port, username, password, from string) *SMTPMailer {
	if port == "" {
		port = "587"
	}
	addr := net.JoinHostPort(host, port)

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPMailer{
		FromAddress: from,
		Sender: func(e *email.Email) error {
			// A stable entity ref keeps providers from threading every
			// login mail into one conversation.
			headers := make(textproto.MIMEHeader)
			headers.Add("X-Entity-Ref-ID", uuid.New().String())
			e.Headers = headers

			return e.Send(addr, auth)
		},
	}
}

func (m *SMTPMailer) LoginEmail(to, loginURL string) error {
	e := email.NewEmail()
	e.From = m.FromAddress
	e.To = []string{to}
	e.Subject = "Sign in to Homebase"
	e.Text = []byte(fmt.Sprintf(
		"Follow this link to sign in:\n\n%s\n\nThe link is valid once and expires shortly. "+
			"If you did not request it you can ignore this email.\n", loginURL))

	return m.Sender(e)
}
