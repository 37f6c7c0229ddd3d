package models

import "time"

// ContactStatus tracks triage of a contact submission.
type ContactStatus string

const (
	ContactUnread  ContactStatus = "unread"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

// Contact is a message captured from the public contact form.
type Contact struct {
	ID        string        `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Email     string        `db:"email" json:"email"`
	Phone     string        `db:"phone" json:"phone,omitempty"`
	Subject   string        `db:"subject" json:"subject,omitempty"`
	Message   string        `db:"message" json:"message"`
	Status    ContactStatus `db:"status" json:"status"`
	Notes     string        `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `db:"updated_at" json:"updatedAt"`
}

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,min=5"`
}

// UpdateContactRequest is the admin triage payload.
type UpdateContactRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=unread read replied"`
	Notes  *string `json:"notes"`
}

// ContactFilter narrows contact listings.
type ContactFilter struct {
	Status string
	ListQuery
}
