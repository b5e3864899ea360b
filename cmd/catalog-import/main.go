// Imports journal catalogs from CSV exports, the offline counterpart of the
// HTML import endpoints.
//
//	catalog-import -file scopus.csv -kind journals -index scopus
//	catalog-import -file hdgs.csv -kind domestic -council cntt
//
// journals rows: name,issn,quartile,publisher
// domestic rows: name,issn,points
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/catalog"
	"github.com/research-hours/backend/internal/config"
	"github.com/research-hours/backend/internal/db"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
)

func main() {
	var (
		file    = flag.String("file", "", "CSV file to import")
		kind    = flag.String("kind", "journals", "journals or domestic")
		index   = flag.String("index", "scopus", "index name for -kind journals (wos/scopus)")
		council = flag.String("council", "", "council code for -kind domestic")
		header  = flag.Bool("header", true, "skip the first row")
	)
	flag.Parse()

	log, _ := zap.NewProduction()
	defer log.Sync()

	if *file == "" {
		log.Fatal("-file is required")
	}
	if *kind != "journals" && *kind != "domestic" {
		log.Fatal("-kind must be journals or domestic", zap.String("kind", *kind))
	}
	if *kind == "domestic" && *council == "" {
		log.Fatal("-council is required for -kind domestic")
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("connect to postgres", zap.Error(err))
	}
	defer pool.Close()
	repo := repositories.NewJournalRepo(pool)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("open csv", zap.Error(err))
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var upserted, failed int
	for line := 0; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatal("read csv", zap.Int("line", line+1), zap.Error(err))
		}
		if line == 0 && *header {
			continue
		}
		name := strings.TrimSpace(field(rec, 0))
		if name == "" {
			continue
		}

		switch *kind {
		case "journals":
			err = repo.Upsert(ctx, &models.JournalEntry{
				Name:      name,
				ISSN:      catalog.NormalizeISSN(field(rec, 1)),
				Index:     *index,
				Quartile:  catalog.NormalizeQuartile(field(rec, 2)),
				Publisher: strings.TrimSpace(field(rec, 3)),
			})
		case "domestic":
			err = repo.UpsertDomestic(ctx, &models.DomesticJournal{
				Name:    name,
				ISSN:    catalog.NormalizeISSN(field(rec, 1)),
				Points:  catalog.ParsePoints(field(rec, 2)),
				Council: *council,
			})
		}
		if err != nil {
			failed++
			log.Warn("upsert failed", zap.Int("line", line+1), zap.String("name", name), zap.Error(err))
			continue
		}
		upserted++
	}

	log.Info("catalog import finished",
		zap.String("kind", *kind),
		zap.Int("upserted", upserted),
		zap.Int("failed", failed))
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}
