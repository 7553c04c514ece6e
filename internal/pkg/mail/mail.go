package mail

import (
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	gomail "gopkg.in/gomail.v2"
)

// Message is a plain-text email
type Message struct {
	To      string
	Name    string
	Subject string
	Body    string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender delivers mail over SMTP
type Sender struct {
	dialer dialer
	from   string
}

// NewSender builds an SMTP sender. An empty host disables delivery: mail is
// logged and dropped, which keeps local runs free of an SMTP dependency.
func NewSender(cfg models.SMTPConfig) *Sender {
	if cfg.Host == "" {
		return &Sender{from: cfg.From}
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &Sender{dialer: d, from: cfg.From}
}

// NewSenderWithDialer is used by tests to capture outgoing mail
func NewSenderWithDialer(d dialer, from string) *Sender {
	return &Sender{dialer: d, from: from}
}

// Send delivers msg
func (s *Sender) Send(msg Message) error {
	if msg.To == "" {
		return errors.New("recipient address is required")
	}
	if s.dialer == nil {
		logger.Info("SMTP disabled, skipping email",
			logger.String("subject", msg.Subject))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", msg.To, msg.Name)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
