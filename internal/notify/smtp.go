package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail"

	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"github.com/Zee-2005/safara-sub000/internal/util"
)

// SMTPSender implements Notifier over SMTP.
type SMTPSender struct {
	Host               string
	Port               int
	From               string
	User               string
	Pass               string
	TLSMode            string // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
}

func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	return &SMTPSender{
		Host:    host,
		Port:    port,
		From:    from,
		User:    user,
		Pass:    pass,
		TLSMode: "auto",
	}
}

func (s *SMTPSender) StatusChanged(ctx context.Context, email, fullName, status string) error {
	subject := "Your identity verification status has changed"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour application is now in status: %s.\n\n— Team Safara",
		fullName, status,
	)
	return s.send(ctx, email, subject, body)
}

func (s *SMTPSender) Finalized(ctx context.Context, email, fullName, publicID string) error {
	subject := "Your tourist ID is ready"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour identity was verified and your tourist ID is %s.\nKeep it handy during your trip.\n\n— Team Safara",
		fullName, publicID,
	)
	return s.send(ctx, email, subject, body)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, body string) error {
	log := logger.From(ctx).With(
		logger.Component("SMTPSender"),
		logger.String("to", util.MaskEmail(to)),
	)

	m := mail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: s.InsecureSkipVerify, // dev only
	}
	switch s.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = &tls.Config{InsecureSkipVerify: s.InsecureSkipVerify}
	default:
		// "auto"/"starttls": go-mail negotiates STARTTLS when offered.
	}

	if err := d.DialAndSend(m); err != nil {
		log.Error("smtp send failed", logger.Err(err))
		return fmt.Errorf("smtp send: %w", err)
	}
	log.Info("notification sent")
	return nil
}
