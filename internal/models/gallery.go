package models

import "time"

// Gallery is one image in the website gallery.
type Gallery struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Image       string    `db:"image" json:"image"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description,omitempty"`
	SortOrder   int       `db:"sort_order" json:"order"`
	Published   bool      `db:"published" json:"published"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateGalleryRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Image       string `json:"image" form:"image"`
	Category    string `json:"category" form:"category" validate:"required"`
	Description string `json:"description" form:"description"`
	SortOrder   int    `json:"order" form:"order"`
	Published   *bool  `json:"published" form:"published"`
}

type UpdateGalleryRequest struct {
	Title       *string `json:"title" form:"title"`
	Image       *string `json:"image" form:"image"`
	Category    *string `json:"category" form:"category"`
	Description *string `json:"description" form:"description"`
	SortOrder   *int    `json:"order" form:"order"`
	Published   *bool   `json:"published" form:"published"`
}

// GalleryFilter narrows gallery listings.
type GalleryFilter struct {
	Category  string
	Published *bool
	ListQuery
}
