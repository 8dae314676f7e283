package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// ErrDispatch wraps any failure handing a message to the mail channel.
// Callers treat it as non-fatal to whatever entity the message was about.
var ErrDispatch = errors.New("dispatching email")

// Attachment is a file carried by a Message, passed through untouched.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Message is the outbound email boundary: recipient, subject, plain-text
// body and optional attachments.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer sends messages over SMTP. Retries, delivery confirmation and
// credential rotation are the mail provider's concern, not ours.
type Mailer struct {
	client *gomail.Client
	from   string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewMailer(cfg Config) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	c, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &Mailer{client: c, from: cfg.From}, nil
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	gm := gomail.NewMsg()

	if err := gm.From(m.from); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	if err := gm.To(msg.To); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	gm.Subject(msg.Subject)
	gm.SetBodyString(gomail.TypeTextPlain, msg.Body)

	for _, a := range msg.Attachments {
		if err := gm.AttachReader(a.Filename, bytes.NewReader(a.Content),
			gomail.WithFileContentType(gomail.ContentType(a.ContentType)),
		); err != nil {
			return fmt.Errorf("%w: attaching %s: %w", ErrDispatch, a.Filename, err)
		}
	}

	if err := m.client.DialAndSendWithContext(ctx, gm); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	return nil
}
