package models

import (
	"time"
)

// Business represents a directory listing
type Business struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	CategoryLabel  string    `json:"category_label" db:"category_label"`
	Address        string    `json:"address" db:"address"`
	City           string    `json:"city" db:"city"`
	Phone          string    `json:"phone" db:"phone"`
	Email          string    `json:"email" db:"email"`
	Website        string    `json:"website" db:"website"`
	Slug           string    `json:"slug" db:"slug"`
	SeoTitle       string    `json:"seo_title" db:"seo_title"`
	SeoDescription string    `json:"seo_description" db:"seo_description"`
	// Sticky flags: set once an operator supplies a custom value, after
	// which automatic regeneration never touches the field again.
	SeoTitleCustom       bool      `json:"-" db:"seo_title_custom"`
	SeoDescriptionCustom bool      `json:"-" db:"seo_description_custom"`
	Featured             bool      `json:"featured" db:"featured"`
	Closed               bool      `json:"closed" db:"closed"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// BusinessWithCategory pairs a business with its category resolved at read
// time. Category is nil when the label matched nothing; Uncategorized marks
// the case where the business carries no label at all, as opposed to a label
// whose canonical category no longer exists.
type BusinessWithCategory struct {
	Business
	Category      *Category `json:"category,omitempty"`
	Uncategorized bool      `json:"uncategorized"`
}

// BusinessFilter describes a listing query. All set fields are AND-combined.
type BusinessFilter struct {
	CategoryID    string `json:"category_id" form:"category_id"`
	SearchTerm    string `json:"q" form:"q"`
	City          string `json:"city" form:"city"`
	Featured      *bool  `json:"featured" form:"featured"`
	IncludeClosed bool   `json:"include_closed" form:"include_closed"`
	Limit         int    `json:"limit" form:"limit"`
	Offset        int    `json:"offset" form:"offset"`
}

// BusinessPage is a single page of listing results
type BusinessPage struct {
	Rows  []*BusinessWithCategory `json:"rows"`
	Total int                     `json:"total"`
}

// BusinessInput carries operator-supplied fields for create/update.
// SeoTitle and SeoDescription, when non-empty, become sticky overrides.
type BusinessInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	CategoryLabel  string `json:"category_label"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Website        string `json:"website"`
	SeoTitle       string `json:"seo_title"`
	SeoDescription string `json:"seo_description"`
	Featured       bool   `json:"featured"`
	Closed         bool   `json:"closed"`
}
