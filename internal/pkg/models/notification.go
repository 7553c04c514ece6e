package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationType selects the email a settlement step produces
type NotificationType string

const (
	NotificationPaymentConfirmed   NotificationType = "payment_confirmed"
	NotificationPaymentReceived    NotificationType = "payment_received"
	NotificationPaymentUnderReview NotificationType = "payment_under_review"
	NotificationPaymentFailed      NotificationType = "payment_failed"
	NotificationRefundIssued       NotificationType = "refund_issued"
	NotificationDepositRefunded    NotificationType = "deposit_refunded"
	NotificationPayoutSent         NotificationType = "payout_sent"
	NotificationPayoutFailed       NotificationType = "payout_failed"
)

var notificationSubjects = map[NotificationType]string{
	NotificationPaymentConfirmed:   "Your rental payment is confirmed",
	NotificationPaymentReceived:    "You received a rental payment",
	NotificationPaymentUnderReview: "Your payment is under review",
	NotificationPaymentFailed:      "Your payment could not be completed",
	NotificationRefundIssued:       "A refund has been issued",
	NotificationDepositRefunded:    "Your security deposit has been refunded",
	NotificationPayoutSent:         "Your payout is on its way",
	NotificationPayoutFailed:       "Your payout could not be sent",
}

// Notification is an email queued after a settlement step commits
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	Type        NotificationType `json:"type"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	RentalID    uuid.UUID        `json:"rental_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	Detail      string           `json:"detail,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewNotification builds a notification for recipient about a rental
func NewNotification(t NotificationType, recipientID, rentalID uuid.UUID, amount decimal.Decimal, currency string) Notification {
	return Notification{
		ID:          uuid.New(),
		Type:        t,
		RecipientID: recipientID,
		RentalID:    rentalID,
		Amount:      amount,
		Currency:    currency,
		CreatedAt:   Now(),
	}
}

// Subject is the email subject line
func (n Notification) Subject() string {
	if s, ok := notificationSubjects[n.Type]; ok {
		return s
	}
	return "Update on your rental"
}

// Body is the plain-text email body
func (n Notification) Body(name string) string {
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf("Hi %s,\n\n%s.\n\nRental: %s\nAmount: %s %s\n",
		name, n.Subject(), n.RentalID, FormatAmount(n.Amount), n.Currency)
	if n.Detail != "" {
		body += "\n" + n.Detail + "\n"
	}
	return body
}
