package email

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
}

// Enabled - задан ли SMTP сервер вообще
func (c *SMTPConfig) Enabled() bool {
	return c != nil && c.Host != ""
}
