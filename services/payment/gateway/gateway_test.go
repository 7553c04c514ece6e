package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/mail"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	topic string
	msg   interface{}
	err   error
}

func (q *recordingQueue) Publish(topic string, message interface{}) error {
	q.topic = topic
	q.msg = message
	return q.err
}

type recordingSender struct {
	sent []mail.Message
}

func (s *recordingSender) Send(msg mail.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

func TestNewProviderGW(t *testing.T) {
	cfg := &models.Config{}

	cfg.Payment.Provider = "fake"
	p, err := NewProviderGW(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentProviderFake, p.Name())

	cfg.Payment.Provider = "paypal"
	_, err = NewProviderGW(cfg, nil)
	assert.Error(t, err)

	cfg.PayPal.ClientID, cfg.PayPal.ClientSecret = "id", "secret"
	p, err = NewProviderGW(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentProviderPayPal, p.Name())

	cfg.Payment.Provider = "stripe"
	_, err = NewProviderGW(cfg, nil)
	assert.Error(t, err)
}

func TestNotificationGW_QueuesOnMailTopic(t *testing.T) {
	queue := &recordingQueue{}
	gw := NewNotificationGW(queue)
	n := models.NewNotification(models.NotificationPayoutSent, uuid.New(), uuid.New(), decimal.NewFromInt(90), "USD")

	gw.Notify(context.Background(), n)

	assert.Equal(t, constants.TopicNotificationEmail, queue.topic)
	assert.Equal(t, n, queue.msg)
}

func TestNotificationGW_SwallowsQueueErrors(t *testing.T) {
	gw := NewNotificationGW(&recordingQueue{err: errors.New("nsqd down")})

	assert.NotPanics(t, func() {
		gw.Notify(context.Background(), models.Notification{Type: models.NotificationPaymentFailed})
	})
}

func TestMailGW_SendEmail(t *testing.T) {
	sender := &recordingSender{}
	gw := NewMailGW(sender)

	err := gw.SendEmail(context.Background(), "owner@example.com", "Dana", "Your payout is on its way", "body")

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, mail.Message{To: "owner@example.com", Name: "Dana", Subject: "Your payout is on its way", Body: "body"}, sender.sent[0])
}
