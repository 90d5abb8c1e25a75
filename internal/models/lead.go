package models

import (
	"time"
)

// LeadStatus represents the handling state of a lead
type LeadStatus string

const (
	LeadStatusNew      LeadStatus = "new"
	LeadStatusRead     LeadStatus = "read"
	LeadStatusArchived LeadStatus = "archived"
)

// ValidLeadStatuses defines allowed lead statuses
var ValidLeadStatuses = map[LeadStatus]bool{
	LeadStatusNew:      true,
	LeadStatusRead:     true,
	LeadStatusArchived: true,
}

// Lead is an inbound contact-form submission addressed to a business.
// Immutable once created except for Status. Visibility is never stored on
// the row; it is computed from the claims table on every read.
type Lead struct {
	ID          string     `json:"id" db:"id"`
	BusinessID  string     `json:"business_id" db:"business_id"`
	SenderName  string     `json:"sender_name" db:"sender_name"`
	SenderEmail string     `json:"sender_email" db:"sender_email"`
	SenderPhone string     `json:"sender_phone,omitempty" db:"sender_phone"`
	Message     string     `json:"message" db:"message"`
	Status      LeadStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// LeadInput carries the fields of a new contact-form submission
type LeadInput struct {
	BusinessID  string `json:"business_id"`
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	SenderPhone string `json:"sender_phone"`
	Message     string `json:"message"`
}

// Actor identifies who is asking for leads: the platform admin or the
// resolved owner of one or more claimed businesses.
type Actor struct {
	Admin  bool
	UserID string
}

// AdminActor returns the platform-administrator actor
func AdminActor() Actor {
	return Actor{Admin: true}
}

// OwnerActor returns the actor for a specific business owner
func OwnerActor(userID string) Actor {
	return Actor{UserID: userID}
}
