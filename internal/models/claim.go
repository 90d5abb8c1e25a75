package models

import (
	"time"
)

// ClaimStatus represents the review state of an ownership claim
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// ClaimDecision is the admin's verdict on a pending claim
type ClaimDecision string

const (
	ClaimDecisionApprove ClaimDecision = "approve"
	ClaimDecisionReject  ClaimDecision = "reject"
)

// OwnershipClaim is a user's assertion of ownership over a business.
// A claim transitions pending -> approved or pending -> rejected exactly
// once; both outcomes are terminal. At most one claim per
// (business_id, user_id) may be pending or approved at a time, enforced by
// a partial unique index.
type OwnershipClaim struct {
	ID           string      `json:"id" db:"id"`
	BusinessID   string      `json:"business_id" db:"business_id"`
	UserID       string      `json:"user_id" db:"user_id"`
	Status       ClaimStatus `json:"status" db:"status"`
	Message      string      `json:"message" db:"message"`
	AdminMessage string      `json:"admin_message,omitempty" db:"admin_message"`
	ReviewedBy   string      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt   *time.Time  `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// Ownership is the resolved ownership state of a business. OwnerID is only
// meaningful when Claimed is true.
type Ownership struct {
	Claimed bool   `json:"claimed"`
	OwnerID string `json:"owner_id,omitempty"`
}

// ClaimInput carries the fields of a new claim submission
type ClaimInput struct {
	BusinessID string `json:"business_id"`
	UserID     string `json:"user_id"`
	Message    string `json:"message"`
}

// ClaimReviewInput carries an admin's review of a pending claim
type ClaimReviewInput struct {
	Decision     ClaimDecision `json:"decision"`
	ReviewerID   string        `json:"reviewer_id"`
	AdminMessage string        `json:"admin_message"`
}
