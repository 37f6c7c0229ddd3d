package models

import "time"

// HeroDisplayType positions a hero image in the landing layout.
type HeroDisplayType string

const (
	HeroMobile             HeroDisplayType = "mobile"
	HeroDesktopTopLeft     HeroDisplayType = "desktop-top-left"
	HeroDesktopTopRight    HeroDisplayType = "desktop-top-right"
	HeroDesktopBottomLeft  HeroDisplayType = "desktop-bottom-left"
	HeroDesktopBottomRight HeroDisplayType = "desktop-bottom-right"
)

// Hero is a landing-page hero image.
type Hero struct {
	ID          string          `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Subtitle    string          `db:"subtitle" json:"subtitle,omitempty"`
	Image       string          `db:"image" json:"image"`
	DisplayType HeroDisplayType `db:"display_type" json:"displayType"`
	Alt         string          `db:"alt" json:"alt,omitempty"`
	SortOrder   int             `db:"sort_order" json:"order"`
	Active      bool            `db:"active" json:"active"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

type CreateHeroRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Subtitle    string `json:"subtitle" form:"subtitle"`
	Image       string `json:"image" form:"image"`
	DisplayType string `json:"displayType" form:"displayType" validate:"omitempty,oneof=mobile desktop-top-left desktop-top-right desktop-bottom-left desktop-bottom-right"`
	Alt         string `json:"alt" form:"alt"`
	SortOrder   int    `json:"order" form:"order"`
	Active      *bool  `json:"active" form:"active"`
}

type UpdateHeroRequest struct {
	Title       *string `json:"title" form:"title"`
	Subtitle    *string `json:"subtitle" form:"subtitle"`
	Image       *string `json:"image" form:"image"`
	DisplayType *string `json:"displayType" form:"displayType" validate:"omitempty,oneof=mobile desktop-top-left desktop-top-right desktop-bottom-left desktop-bottom-right"`
	Alt         *string `json:"alt" form:"alt"`
	SortOrder   *int    `json:"order" form:"order"`
	Active      *bool   `json:"active" form:"active"`
}
