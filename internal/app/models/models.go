package models

// Role defines the profile role type
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

// MembershipType defines the membership tier
type MembershipType string

const (
	MembershipBasic    MembershipType = "BASIC"
	MembershipStandard MembershipType = "STANDARD"
	MembershipPremium  MembershipType = "PREMIUM"
)

// MembershipStatus defines the membership workflow state
type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipActive   MembershipStatus = "active"
	MembershipRejected MembershipStatus = "rejected"
)

// MaterialType defines the kind of tutoring material
type MaterialType string

const (
	MaterialDocument MaterialType = "document"
	MaterialVideo    MaterialType = "video"
	MaterialLink     MaterialType = "link"
	MaterialImage    MaterialType = "image"
	MaterialCode     MaterialType = "code"
)
