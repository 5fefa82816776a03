// mail отвечает за исходящие письма contacts-api: сейчас это единственное
// письмо подтверждения e-mail со ссылкой, содержащей одноразовый токен.
// Транспорт — SMTP через github.com/wneessen/go-mail.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/pribylovaa/go-contacts-api/internal/config"
)

// Mailer — контракт отправки писем верификации.
type Mailer interface {
	// SendVerificationEmail отправляет письмо со ссылкой подтверждения.
	SendVerificationEmail(ctx context.Context, to, verificationToken string) error
}

// SMTPMailer — реализация Mailer поверх SMTP.
type SMTPMailer struct {
	client  *gomail.Client
	from    string
	baseURL string // внешний адрес сервиса, например https://api.example.com
}

// New создаёт SMTP-клиент по конфигурации.
func New(cfg config.SMTPConfig) (*SMTPMailer, error) {
	const op = "mail.New"

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Password),
	}

	if cfg.SSL {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &SMTPMailer{
		client:  client,
		from:    from,
		baseURL: cfg.AppBaseURL,
	}, nil
}

// SendVerificationEmail отправляет письмо со ссылкой
// GET {base}/api/auth/verify/{token}.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, verificationToken string) error {
	const op = "mail.SendVerificationEmail"

	link := fmt.Sprintf("%s/api/auth/verify/%s", m.baseURL, verificationToken)

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg.Subject("Verify your email")
	msg.SetBodyString(gomail.TypeTextHTML,
		fmt.Sprintf(`<p>Click <a href=%q>here</a> to verify your email address.</p>`, link))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Проверка выполнения контракта.
var _ Mailer = (*SMTPMailer)(nil)
