package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"scishare/internal/models"
)

const abstractColumns = `id, title, authors, abstract_text, keywords, doi, journal,
	publication_year, publication_type, times_cited, is_active, created_at`

// GetAbstractByID retrieves a single active abstract. Inactive abstracts are
// invisible to the application, so they report as not found.
func (d *DB) GetAbstractByID(ctx context.Context, id uuid.UUID) (*models.Abstract, error) {
	query := `SELECT ` + abstractColumns + ` FROM abstracts WHERE id = $1 AND is_active`

	var a models.Abstract
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Authors, &a.AbstractText, &a.Keywords, &a.DOI, &a.Journal,
		&a.PublicationYear, &a.PublicationType, &a.TimesCited, &a.IsActive, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAbstractNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// SearchAbstracts returns active abstracts, newest first, optionally filtered
// by a case-insensitive match on title, authors, or keywords.
func (d *DB) SearchAbstracts(ctx context.Context, search string, limit int) ([]models.Abstract, error) {
	query := `
		SELECT ` + abstractColumns + `
		FROM abstracts
		WHERE is_active
		  AND ($1 = '' OR title ILIKE '%' || $1 || '%' OR authors ILIKE '%' || $1 || '%' OR keywords ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, search, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var abstracts []models.Abstract
	for rows.Next() {
		var a models.Abstract
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Authors, &a.AbstractText, &a.Keywords, &a.DOI, &a.Journal,
			&a.PublicationYear, &a.PublicationType, &a.TimesCited, &a.IsActive, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		abstracts = append(abstracts, a)
	}

	return abstracts, rows.Err()
}

// CreateAbstract inserts a new abstract into the catalog.
func (d *DB) CreateAbstract(ctx context.Context, a *models.Abstract) error {
	if a.PublicationType == "" {
		a.PublicationType = models.PubTypeJournal
	}

	query := `
		INSERT INTO abstracts (title, authors, abstract_text, keywords, doi, journal, publication_year, publication_type, times_cited)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_active, created_at
	`

	return d.Pool.QueryRow(ctx, query,
		a.Title, a.Authors, a.AbstractText, a.Keywords, a.DOI, a.Journal,
		a.PublicationYear, a.PublicationType, a.TimesCited,
	).Scan(&a.ID, &a.IsActive, &a.CreatedAt)
}

// AbstractExistsByDOI reports whether an abstract with the given DOI exists.
// Used by the importer to skip duplicates.
func (d *DB) AbstractExistsByDOI(ctx context.Context, doi string) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM abstracts WHERE doi = $1 AND doi <> '')`, doi,
	).Scan(&exists)
	return exists, err
}

// GetAbstractStats returns aggregate catalog statistics.
func (d *DB) GetAbstractStats(ctx context.Context) (*models.AbstractStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM abstracts WHERE is_active),
			(SELECT COUNT(*) FROM shared_abstracts),
			(SELECT COUNT(DISTINCT abstract_id) FROM shared_abstracts)
	`

	var stats models.AbstractStats
	err := d.Pool.QueryRow(ctx, query).Scan(
		&stats.TotalAbstracts,
		&stats.TotalShares,
		&stats.SharedAbstracts,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
