// Command import loads abstracts into the catalog from a Web of Science
// TSV export.
//
// Usage:
//
//	import -file abstracts.txt
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"scishare/internal/config"
	"scishare/internal/db"
	"scishare/internal/models"
)

func main() {
	filePath := flag.String("file", "abstracts.txt", "path to the TSV export")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	created, skipped, failed, err := importFile(ctx, database, *filePath)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete: %d created, %d skipped, %d failed", created, skipped, failed)
}

// importFile reads the TSV export and inserts each usable row. Rows without
// a title or abstract text are skipped, as are DOIs already in the catalog.
func importFile(ctx context.Context, database *db.DB, path string) (created, skipped, failed int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("line %d: %v", line, err)
			failed++
			continue
		}

		title := field(row, "TI")
		text := field(row, "AB")
		if title == "" || text == "" {
			skipped++
			continue
		}

		doi := field(row, "DI")
		if doi != "" {
			exists, err := database.AbstractExistsByDOI(ctx, doi)
			if err != nil {
				return created, skipped, failed, err
			}
			if exists {
				skipped++
				continue
			}
		}

		abstract := &models.Abstract{
			Title:           title,
			Authors:         field(row, "AU"),
			AbstractText:    text,
			Keywords:        field(row, "DE"),
			DOI:             doi,
			Journal:         field(row, "SO"),
			PublicationType: pubType(field(row, "PT")),
		}

		if year, err := strconv.Atoi(field(row, "PY")); err == nil {
			abstract.PublicationYear = &year
		}
		if cited, err := strconv.Atoi(field(row, "TC")); err == nil {
			abstract.TimesCited = cited
		}

		if err := database.CreateAbstract(ctx, abstract); err != nil {
			log.Printf("line %d: insert failed: %v", line, err)
			failed++
			continue
		}
		created++
	}

	return created, skipped, failed, nil
}

// pubType maps the Web of Science PT field onto the catalog's type codes.
func pubType(pt string) string {
	if pt == "" {
		return models.PubTypeJournal
	}
	switch pt[:1] {
	case models.PubTypeJournal, models.PubTypeConference, models.PubTypeBook, models.PubTypeSeries:
		return pt[:1]
	default:
		return models.PubTypeJournal
	}
}
