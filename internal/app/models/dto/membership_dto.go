package dto

// CreateMembershipRequest represents a new membership purchase. The payment
// proof is uploaded separately and referenced by URL.
type CreateMembershipRequest struct {
	UserID       string `json:"userId" binding:"required"`
	Type         string `json:"type" binding:"required,oneof=BASIC STANDARD PREMIUM"`
	Status       string `json:"status,omitempty" binding:"omitempty,oneof=pending active rejected"`
	PaymentProof string `json:"paymentProof,omitempty"`
}

// UpdateMembershipStatusRequest changes the review status of a membership
type UpdateMembershipStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active rejected"`
}
