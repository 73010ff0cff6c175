package app

import (
	"debatecamp/internal/email"
	"debatecamp/internal/logger"
)

// LogEmailProvider используется для локальной разработки: письмо не отправляется, а пишется в лог.
type LogEmailProvider struct{}

func (m *LogEmailProvider) Send(msg *email.Email) error {
	logger.Info("Email (not sent)",
		"to", msg.To,
		"subject", msg.Subject,
		"html_bytes", len(msg.HTMLBody),
	)
	return nil
}

func (m *LogEmailProvider) Validate() error { return nil }
