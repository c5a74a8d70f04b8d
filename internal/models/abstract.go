package models

import (
	"time"

	"github.com/google/uuid"
)

// Publication type constants (Web of Science PT field).
const (
	PubTypeJournal    = "J"
	PubTypeConference = "C"
	PubTypeBook       = "B"
	PubTypeSeries     = "S"
)

// ExcerptLength is how much of the abstract text appears in share emails.
const ExcerptLength = 500

// Abstract represents a scientific paper abstract in the catalog.
type Abstract struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Authors         string    `json:"authors"`
	AbstractText    string    `json:"abstract_text"`
	Keywords        string    `json:"keywords"`
	DOI             string    `json:"doi"`
	Journal         string    `json:"journal"`
	PublicationYear *int      `json:"publication_year"`
	PublicationType string    `json:"publication_type"`
	TimesCited      int       `json:"times_cited"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// Excerpt returns the first ExcerptLength characters of the abstract text.
// Cuts on runes so multi-byte text is never split mid-character.
func (a *Abstract) Excerpt() string {
	runes := []rune(a.AbstractText)
	if len(runes) <= ExcerptLength {
		return a.AbstractText
	}
	return string(runes[:ExcerptLength]) + "..."
}

// AbstractStats holds aggregate catalog statistics.
type AbstractStats struct {
	TotalAbstracts  int `json:"total_abstracts"`
	TotalShares     int `json:"total_shares"`
	SharedAbstracts int `json:"shared_abstracts"`
}
