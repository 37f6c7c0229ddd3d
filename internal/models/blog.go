package models

import (
	"time"

	"github.com/lib/pq"
)

// Blog is a published article on the website.
type Blog struct {
	ID        string         `db:"id" json:"id"`
	Slug      string         `db:"slug" json:"slug"`
	Title     string         `db:"title" json:"title"`
	Excerpt   string         `db:"excerpt" json:"excerpt"`
	Content   string         `db:"content" json:"content"`
	Author    string         `db:"author" json:"author"`
	Date      time.Time      `db:"date" json:"date"`
	Category  string         `db:"category" json:"category"`
	Image     string         `db:"image" json:"image"`
	ReadTime  string         `db:"read_time" json:"readTime"`
	Published bool           `db:"published" json:"published"`
	Tags      pq.StringArray `db:"tags" json:"tags"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

// CreateBlogRequest is the admin payload for a new post. Image may instead
// arrive as a multipart file.
type CreateBlogRequest struct {
	Slug      string   `json:"slug" form:"slug" validate:"required,min=3"`
	Title     string   `json:"title" form:"title" validate:"required"`
	Excerpt   string   `json:"excerpt" form:"excerpt" validate:"required"`
	Content   string   `json:"content" form:"content" validate:"required"`
	Author    string   `json:"author" form:"author" validate:"required"`
	Date      string   `json:"date" form:"date"`
	Category  string   `json:"category" form:"category" validate:"required"`
	Image     string   `json:"image" form:"image"`
	ReadTime  string   `json:"readTime" form:"readTime"`
	Published *bool    `json:"published" form:"published"`
	Tags      []string `json:"tags" form:"tags"`
}

// UpdateBlogRequest carries partial updates; nil means unchanged.
type UpdateBlogRequest struct {
	Slug      *string  `json:"slug" form:"slug"`
	Title     *string  `json:"title" form:"title"`
	Excerpt   *string  `json:"excerpt" form:"excerpt"`
	Content   *string  `json:"content" form:"content"`
	Author    *string  `json:"author" form:"author"`
	Date      *string  `json:"date" form:"date"`
	Category  *string  `json:"category" form:"category"`
	Image     *string  `json:"image" form:"image"`
	ReadTime  *string  `json:"readTime" form:"readTime"`
	Published *bool    `json:"published" form:"published"`
	Tags      []string `json:"tags" form:"tags"`
}

// BlogFilter narrows blog listings.
type BlogFilter struct {
	Category  string
	Published *bool
	ListQuery
}
