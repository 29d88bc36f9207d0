package mail

import (
	"context"
	"log/slog"

	mail "github.com/wneessen/go-mail"
	"github.com/campustrade/verify-api/internal/config"
)

// Mailer delivers messages best-effort. Send reports whether delivery is
// confirmed; misconfiguration is not an error, only non-delivery.
type Mailer interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) (delivered bool, err error)
}

type mailer struct {
	client *mail.Client
	from   string
}

// noopMailer stands in when no SMTP host is configured. It never delivers
// and never errors, so the issuer can fall back to its debug path.
type noopMailer struct{}

func (noopMailer) Send(context.Context, string, string, string, string) (bool, error) {
	return false, nil
}

// NewMailer builds an SMTP mailer from config. Returns a non-delivering
// mailer when SMTP_HOST is unset or the client cannot be constructed.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		slog.Warn("SMTP_HOST not set, mail delivery disabled")
		return noopMailer{}
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
	}
	switch cfg.SMTPEncryption {
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}
	if cfg.SMTPUsername != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, clientOpts...)
	if err != nil {
		slog.Warn("could not create mail client, mail delivery disabled", "err", err)
		return noopMailer{}
	}
	return &mailer{client: client, from: cfg.SMTPFrom}
}

func (m *mailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) (bool, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return false, err
	}
	if err := msg.To(to); err != nil {
		return false, err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}
