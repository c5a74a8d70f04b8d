package models

import (
	"time"

	"github.com/google/uuid"
)

// ShareResponse is the success body for POST /abstracts/:id/share.
type ShareResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	SharedID uuid.UUID `json:"shared_id"`
	SharedAt time.Time `json:"shared_at"`
}

// MySharedEntry is one row of a user's own share history.
type MySharedEntry struct {
	ID                    uuid.UUID `json:"id"`
	AbstractID            uuid.UUID `json:"abstract_id"`
	AbstractTitle         string    `json:"abstract_title"`
	RecipientEmail        string    `json:"recipient_email"`
	Message               string    `json:"message"`
	SharedAt              time.Time `json:"shared_at"`
	EmailSentSuccessfully bool      `json:"email_sent_successfully"`
}

// MySharedResponse is the body for GET /abstracts/my_shared.
type MySharedResponse struct {
	SharedAbstracts []MySharedEntry `json:"shared_abstracts"`
	Total           int             `json:"total"`
}

// MostSharedResponse is the body for GET /abstracts/most_shared.
type MostSharedResponse struct {
	MostShared []ShareCount `json:"most_shared"`
	Note       string       `json:"note"`
}
