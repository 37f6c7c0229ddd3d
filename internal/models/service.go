package models

import (
	"time"

	"github.com/lib/pq"
)

// Service is one offering presented on the services page.
type Service struct {
	ID              string         `db:"id" json:"id"`
	Title           string         `db:"title" json:"title"`
	Description     string         `db:"description" json:"description"`
	Icon            string         `db:"icon" json:"icon"`
	Image           string         `db:"image" json:"image"`
	LongDescription string         `db:"long_description" json:"longDescription,omitempty"`
	Features        pq.StringArray `db:"features" json:"features"`
	SortOrder       int            `db:"sort_order" json:"order"`
	Published       bool           `db:"published" json:"published"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

type CreateServiceRequest struct {
	Title           string   `json:"title" form:"title" validate:"required"`
	Description     string   `json:"description" form:"description" validate:"required"`
	Icon            string   `json:"icon" form:"icon" validate:"required"`
	Image           string   `json:"image" form:"image"`
	LongDescription string   `json:"longDescription" form:"longDescription"`
	Features        []string `json:"features" form:"features"`
	SortOrder       int      `json:"order" form:"order"`
	Published       *bool    `json:"published" form:"published"`
}

type UpdateServiceRequest struct {
	Title           *string  `json:"title" form:"title"`
	Description     *string  `json:"description" form:"description"`
	Icon            *string  `json:"icon" form:"icon"`
	Image           *string  `json:"image" form:"image"`
	LongDescription *string  `json:"longDescription" form:"longDescription"`
	Features        []string `json:"features" form:"features"`
	SortOrder       *int     `json:"order" form:"order"`
	Published       *bool    `json:"published" form:"published"`
}
