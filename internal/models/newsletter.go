package models

import "time"

// Subscriber is one newsletter signup. Unsubscribing deactivates instead of
// deleting so a later resubscribe reactivates the same row.
type Subscriber struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	Active         bool       `db:"active" json:"isActive"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at" json:"unsubscribedAt,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscriberFilter narrows subscriber listings.
type SubscriberFilter struct {
	Active *bool
	ListQuery
}
