package models

import (
	"time"
)

// Page is a static content page. Pages get the same slug and SEO treatment
// as businesses, minus the city and category segments.
type Page struct {
	ID                   string    `json:"id" db:"id"`
	Title                string    `json:"title" db:"title"`
	Body                 string    `json:"body" db:"body"`
	Slug                 string    `json:"slug" db:"slug"`
	SeoTitle             string    `json:"seo_title" db:"seo_title"`
	SeoDescription       string    `json:"seo_description" db:"seo_description"`
	SeoTitleCustom       bool      `json:"-" db:"seo_title_custom"`
	SeoDescriptionCustom bool      `json:"-" db:"seo_description_custom"`
	Published            bool      `json:"published" db:"published"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// PageInput carries operator-supplied fields for create/update
type PageInput struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	SeoTitle       string `json:"seo_title"`
	SeoDescription string `json:"seo_description"`
	Published      bool   `json:"published"`
}
