package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxShareMessageLength is the maximum length of the optional personal
// message included in a share email.
const MaxShareMessageLength = 1000

// SharedAbstract is one share attempt: who sent which abstract to whom, and
// whether the email went out. Rows are append-only; the history doubles as an
// audit log, so failed sends are recorded too.
type SharedAbstract struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	AbstractID            uuid.UUID `json:"abstract_id"`
	RecipientEmail        string    `json:"recipient_email"`
	Message               string    `json:"message"`
	EmailSentSuccessfully bool      `json:"email_sent_successfully"`
	SharedAt              time.Time `json:"shared_at"`
}

// SharedAbstractWithTitle joins in the abstract title for history listings.
type SharedAbstractWithTitle struct {
	SharedAbstract
	AbstractTitle string `json:"abstract_title"`
}

// ShareOutcomeCount is a per-abstract share tally split by delivery outcome,
// used by the metrics collector.
type ShareOutcomeCount struct {
	DOI        string
	AbstractID uuid.UUID
	Delivered  bool
	Count      int
}

// ShareCount is one row of the most-shared ranking. It deliberately carries
// no sharer or recipient identity, only the abstract and a count.
type ShareCount struct {
	AbstractID      uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Authors         string    `json:"authors"`
	PublicationYear *int      `json:"year"`
	SharesCount     int       `json:"shares_count"`
}
