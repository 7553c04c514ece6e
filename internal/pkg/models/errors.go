package models

import "errors"

var (
	// ErrNotFound is returned by repositories when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateTransaction is returned when a rental already has an active transaction
	ErrDuplicateTransaction = errors.New("active transaction already exists for rental")
	// ErrInvalidTransition is returned when a status change is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden is returned when the caller is not a party to the rental
	ErrForbidden = errors.New("caller is not allowed to access this rental")
	// ErrInvalidWebhook is returned when a provider callback fails verification
	ErrInvalidWebhook = errors.New("webhook failed verification")
)
