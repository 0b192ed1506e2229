// Package mailer SMTP üzerinden HTML e-posta gönderir.
package mailer

import (
	"fmt"
	"strings"

	"formly.link/configs"

	gomail "gopkg.in/gomail.v2"
)

// Sender e-posta gönderen herhangi bir şey.
type Sender interface {
	Send(to, subject, html string) error
}

type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPSenderFromEnv SMTP_* ortam değişkenlerinden gönderici oluşturur.
func NewSMTPSenderFromEnv() (*SMTPSender, error) {
	s := &SMTPSender{
		Host: configs.GetEnv("SMTP_HOST", ""),
		Port: configs.GetEnvInt("SMTP_PORT", 0),
		User: configs.GetEnv("SMTP_USER", ""),
		Pass: configs.GetEnv("SMTP_PASS", ""),
		From: configs.GetEnv("SMTP_FROM", ""),
	}

	var missing []string
	if s.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if s.Port == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if s.From == "" {
		missing = append(missing, "SMTP_FROM")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("eksik SMTP ayarı: %s", strings.Join(missing, ", "))
	}
	return s, nil
}

func (s *SMTPSender) message(to, subject, html string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", splitRecipients(to)...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return m
}

func (s *SMTPSender) Send(to, subject, html string) error {
	if len(splitRecipients(to)) == 0 {
		return fmt.Errorf("alıcı adresi boş")
	}
	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return d.DialAndSend(s.message(to, subject, html))
}

// splitRecipients virgülle ayrılmış alıcı listesini ayırır.
func splitRecipients(to string) []string {
	var out []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
