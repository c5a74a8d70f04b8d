package db

import (
	"context"

	"github.com/google/uuid"

	"scishare/internal/models"
)

// CreateSharedAbstract appends one share attempt to the history. The table is
// append-only: there is deliberately no update or delete counterpart.
func (d *DB) CreateSharedAbstract(ctx context.Context, share *models.SharedAbstract) error {
	query := `
		INSERT INTO shared_abstracts (user_id, abstract_id, recipient_email, message, email_sent_successfully)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, shared_at
	`

	return d.Pool.QueryRow(ctx, query,
		share.UserID,
		share.AbstractID,
		share.RecipientEmail,
		share.Message,
		share.EmailSentSuccessfully,
	).Scan(&share.ID, &share.SharedAt)
}

// GetSharesByUser returns one user's share history, newest first, with the
// abstract title joined in. Filtering happens here, never in the handler, so
// a caller can only ever see their own rows.
func (d *DB) GetSharesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.SharedAbstractWithTitle, error) {
	query := `
		SELECT sa.id, sa.user_id, sa.abstract_id, sa.recipient_email, sa.message,
		       sa.email_sent_successfully, sa.shared_at, a.title
		FROM shared_abstracts sa
		JOIN abstracts a ON a.id = sa.abstract_id
		WHERE sa.user_id = $1
		ORDER BY sa.shared_at DESC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.SharedAbstractWithTitle
	for rows.Next() {
		var s models.SharedAbstractWithTitle
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.AbstractID, &s.RecipientEmail, &s.Message,
			&s.EmailSentSuccessfully, &s.SharedAt, &s.AbstractTitle,
		); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}

	return shares, rows.Err()
}

// GetMostShared returns active abstracts ranked by total share attempts,
// delivered or not. Ties break on abstract ID ascending so the ordering is
// deterministic. Abstracts with zero shares are omitted.
func (d *DB) GetMostShared(ctx context.Context, limit int) ([]models.ShareCount, error) {
	query := `
		SELECT a.id, a.title, a.authors, a.publication_year, COUNT(sa.id) AS shares_count
		FROM abstracts a
		JOIN shared_abstracts sa ON sa.abstract_id = a.id
		WHERE a.is_active
		GROUP BY a.id, a.title, a.authors, a.publication_year
		ORDER BY shares_count DESC, a.id ASC
		LIMIT $1
	`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.ShareCount
	for rows.Next() {
		var c models.ShareCount
		if err := rows.Scan(&c.AbstractID, &c.Title, &c.Authors, &c.PublicationYear, &c.SharesCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// GetShareCountsByOutcome returns per-abstract share counts split by delivery
// outcome. Read by the Prometheus collector on each scrape.
func (d *DB) GetShareCountsByOutcome(ctx context.Context) ([]models.ShareOutcomeCount, error) {
	query := `
		SELECT a.doi, a.id, sa.email_sent_successfully, COUNT(*)
		FROM shared_abstracts sa
		JOIN abstracts a ON a.id = sa.abstract_id
		GROUP BY a.doi, a.id, sa.email_sent_successfully
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.ShareOutcomeCount
	for rows.Next() {
		var c models.ShareOutcomeCount
		if err := rows.Scan(&c.DOI, &c.AbstractID, &c.Delivered, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
