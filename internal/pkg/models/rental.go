package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentalStatus is owned by the rental domain; settlement only moves a
// pending rental to approved once payment is captured.
type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "Pending"
	RentalStatusApproved  RentalStatus = "Approved"
	RentalStatusActive    RentalStatus = "Active"
	RentalStatusReturned  RentalStatus = "Returned"
	RentalStatusCompleted RentalStatus = "Completed"
	RentalStatusCancelled RentalStatus = "Cancelled"
)

// Rental is the slice of a rental record settlement reads
type Rental struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	ToolID          uuid.UUID       `json:"tool_id" db:"tool_id"`
	OwnerID         uuid.UUID       `json:"owner_id" db:"owner_id"`
	RenterID        uuid.UUID       `json:"renter_id" db:"renter_id"`
	TotalCost       decimal.Decimal `json:"total_cost" db:"total_cost"`
	SecurityDeposit decimal.Decimal `json:"security_deposit" db:"security_deposit"`
	Currency        string          `json:"currency" db:"currency"`
	Status          RentalStatus    `json:"status" db:"status"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// IsParticipant reports whether userID is the renter or the owner
func (r *Rental) IsParticipant(userID uuid.UUID) bool {
	return r.RenterID == userID || r.OwnerID == userID
}

// User is the contact record used to address notifications
type User struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Email    string    `json:"email" db:"email"`
	FullName string    `json:"full_name" db:"full_name"`
}
