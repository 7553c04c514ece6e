package gateway

import (
	"context"

	"github.com/piresc/toolshare/internal/pkg/mail"
)

type mailSender interface {
	Send(msg mail.Message) error
}

// MailGW delivers rendered notification emails over SMTP
type MailGW struct {
	sender mailSender
}

func NewMailGW(sender mailSender) *MailGW {
	return &MailGW{sender: sender}
}

func (g *MailGW) SendEmail(_ context.Context, to, name, subject, body string) error {
	return g.sender.Send(mail.Message{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
	})
}
