package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Dialer - часть gomail.Dialer, которая нам нужна (в тестах подменяется)
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// GomailProvider реализует Provider поверх gomail
type GomailProvider struct {
	config *SMTPConfig
	dialer Dialer
}

// NewGomailProvider создает провайдер с настоящим SMTP dialer
func NewGomailProvider(config *SMTPConfig) *GomailProvider {
	return NewGomailProviderWithDialer(config, gomail.NewDialer(
		config.Host,
		config.Port,
		config.Username,
		config.Password,
	))
}

func NewGomailProviderWithDialer(config *SMTPConfig, dialer Dialer) *GomailProvider {
	return &GomailProvider{
		config: config,
		dialer: dialer,
	}
}

// Send отправляет email сообщение
func (p *GomailProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return errors.New("email has no recipients")
	}

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Validate проверяет конфигурацию провайдера
func (p *GomailProvider) Validate() error {
	if !p.config.Enabled() {
		return errors.New("smtp host is not configured")
	}
	if p.config.FromEmail == "" {
		return errors.New("from email is not configured")
	}
	return nil
}
