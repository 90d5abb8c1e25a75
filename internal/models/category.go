package models

import (
	"time"
)

// Category is a canonical taxonomy entry. Businesses reference categories
// only by free-text label, never by foreign key; the match is re-derived on
// every read.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryInput carries operator-supplied fields for create/update
type CategoryInput struct {
	Name string `json:"name"`
}
