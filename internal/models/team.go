package models

import (
	"time"

	"github.com/lib/pq"
)

// TeamMember is one person on the team page.
type TeamMember struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Role        string         `db:"role" json:"role"`
	Image       string         `db:"image" json:"image"`
	Bio         string         `db:"bio" json:"bio,omitempty"`
	SocialLinks pq.StringArray `db:"social_links" json:"socialLinks"`
	SortOrder   int            `db:"sort_order" json:"order"`
	Published   bool           `db:"published" json:"published"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

type CreateTeamMemberRequest struct {
	Name        string   `json:"name" form:"name" validate:"required"`
	Role        string   `json:"role" form:"role" validate:"required"`
	Image       string   `json:"image" form:"image"`
	Bio         string   `json:"bio" form:"bio"`
	SocialLinks []string `json:"socialLinks" form:"socialLinks"`
	SortOrder   int      `json:"order" form:"order"`
	Published   *bool    `json:"published" form:"published"`
}

type UpdateTeamMemberRequest struct {
	Name        *string  `json:"name" form:"name"`
	Role        *string  `json:"role" form:"role"`
	Image       *string  `json:"image" form:"image"`
	Bio         *string  `json:"bio" form:"bio"`
	SocialLinks []string `json:"socialLinks" form:"socialLinks"`
	SortOrder   *int     `json:"order" form:"order"`
	Published   *bool    `json:"published" form:"published"`
}
