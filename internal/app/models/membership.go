package models

import "time"

// Membership represents a user's membership row. Nothing prevents a user
// from accumulating several rows; the newest one is the current membership.
type Membership struct {
	ID           string           `json:"id" db:"id"`
	UserID       string           `json:"userId" db:"user_id"`
	Type         MembershipType   `json:"type" db:"type"`
	Status       MembershipStatus `json:"status" db:"status"`
	PaymentProof *string          `json:"paymentProof,omitempty" db:"payment_proof"`
	CreatedAt    *time.Time       `json:"createdAt" db:"created_at"`
}
