package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"scishare/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// SeedDevAbstracts inserts sample abstracts for development. Skips abstracts
// that already exist (matched by DOI).
func (d *DB) SeedDevAbstracts(ctx context.Context) error {
	abstracts := []struct {
		title   string
		authors string
		text    string
		doi     string
		journal string
		year    int
	}{
		{
			"Citizen science as a tool for biodiversity monitoring",
			"Garcia, M.; Thompson, R.",
			"Volunteer-collected observations now rival professional surveys in coverage. We evaluate data quality across 12 national programs and find observer training is the dominant accuracy factor.",
			"10.1000/dev.0001", "Ecology Letters", 2021,
		},
		{
			"Machine-assisted screening of clinical trial literature",
			"Okafor, C.; Lindqvist, E.; Patel, S.",
			"Screening burden in systematic reviews grows faster than reviewer capacity. We benchmark active-learning pipelines on 40 published reviews and report workload reductions of 55-70% at 95% recall.",
			"10.1000/dev.0002", "Journal of Clinical Epidemiology", 2022,
		},
		{
			"Open peer commentary and the reproducibility of survey research",
			"Novak, J.",
			"Post-publication commentary platforms surface analytic errors earlier than formal corrections. A census of 3,100 commented articles shows a median detection lead of 14 months.",
			"10.1000/dev.0003", "PLOS ONE", 2020,
		},
	}

	query := `
		INSERT INTO abstracts (title, authors, abstract_text, doi, journal, publication_year)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (SELECT 1 FROM abstracts WHERE doi = $4)
	`

	for _, a := range abstracts {
		if _, err := d.Pool.Exec(ctx, query, a.title, a.authors, a.text, a.doi, a.journal, a.year); err != nil {
			return fmt.Errorf("failed to seed abstract %s: %w", a.doi, err)
		}
	}

	return nil
}
