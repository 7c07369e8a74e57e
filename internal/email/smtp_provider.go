package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider sends mail through gomail over SMTP.
type SMTPProvider struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) Send(to []string, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.config.FromEmail, p.config.FromName))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) Close() error { return nil }
