// Package mailer sends transactional e-mail.
//
// SMTP delivers through a relay with net/smtp; Log only records what would
// have been sent and backs local runs where no relay is configured.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

var ErrNoRecipients = errors.New("mailer: message has no recipients")

// Message is an outgoing e-mail
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Result lists the recipients the transport accepted
type Result struct {
	Accepted []string
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, msg Message) (*Result, error)
}

// SMTPConfig holds relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP sends mail through an SMTP relay
type SMTP struct {
	cfg  SMTPConfig
	addr string
	auth smtp.Auth
	send sendFunc
}

// NewSMTP creates an SMTP sender. Auth is skipped when no username is set.
func NewSMTP(cfg SMTPConfig) *SMTP {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTP{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		send: smtp.SendMail,
	}
}

// Send delivers msg. net/smtp has no context support, so ctx is only
// checked before dialing.
func (s *SMTP) Send(ctx context.Context, msg Message) (*Result, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.send(s.addr, s.auth, s.cfg.From, msg.To, buildMessage(s.cfg.From, msg)); err != nil {
		return nil, fmt.Errorf("sending mail: %w", err)
	}
	return &Result{Accepted: append([]string(nil), msg.To...)}, nil
}

func buildMessage(from string, msg Message) []byte {
	contentType := "text/plain; charset=UTF-8"
	body := msg.Text
	if msg.HTML != "" {
		contentType = "text/html; charset=UTF-8"
		body = msg.HTML
	}

	// Fixed header order keeps the output stable
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.Bytes()
}

// Log writes messages to the structured log instead of sending them
type Log struct{}

// Send logs msg and accepts every recipient
func (Log) Send(_ context.Context, msg Message) (*Result, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	slog.Info("mail not sent, no relay configured",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return &Result{Accepted: append([]string(nil), msg.To...)}, nil
}

const welcomeTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h1>Welcome, {{.Name}}!</h1>
    <p>Your job board account for <strong>{{.Email}}</strong> is ready.</p>
    <p>You can now post jobs and attach files to them.</p>
</body>
</html>
`

var welcome = template.Must(template.New("welcome").Parse(welcomeTemplate))

// WelcomeMessage renders the registration greeting for a new user
func WelcomeMessage(name, email string) (Message, error) {
	var body bytes.Buffer
	if err := welcome.Execute(&body, struct{ Name, Email string }{name, email}); err != nil {
		return Message{}, fmt.Errorf("executing template: %w", err)
	}
	return Message{
		To:      []string{email},
		Subject: "Welcome to the job board",
		Text:    fmt.Sprintf("Welcome, %s! Your account for %s is ready.", name, email),
		HTML:    body.String(),
	}, nil
}
