package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/catalog"
	"github.com/research-hours/backend/internal/models"
	"github.com/research-hours/backend/internal/repositories"
)

// CatalogService keeps the journal lookup tables current and serves the
// autocomplete searches on the publication form.
type CatalogService struct {
	journalRepo *repositories.JournalRepo
	parser      *catalog.Parser
	log         *zap.Logger
}

func NewCatalogService(journalRepo *repositories.JournalRepo, parser *catalog.Parser, log *zap.Logger) *CatalogService {
	return &CatalogService{journalRepo: journalRepo, parser: parser, log: log}
}

// ImportResult reports one import run.
type ImportResult struct {
	Parsed   int `json:"parsed"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

// ImportJournals fetches an indexed-journal table from url and upserts every
// row under indexName. Rows that fail to store are skipped and counted, the
// rest of the run continues.
func (s *CatalogService) ImportJournals(ctx context.Context, url, indexName string) (*ImportResult, error) {
	entries, err := s.parser.FetchJournals(ctx, url, indexName)
	if err != nil {
		return nil, fmt.Errorf("fetch journal table: %w", err)
	}
	res := &ImportResult{Parsed: len(entries)}
	for i := range entries {
		if err := s.journalRepo.Upsert(ctx, &entries[i]); err != nil {
			res.Failed++
			s.log.Warn("journal upsert failed",
				zap.String("name", entries[i].Name),
				zap.Error(err))
			continue
		}
		res.Upserted++
	}
	s.log.Info("journal catalog import finished",
		zap.String("index", indexName),
		zap.Int("parsed", res.Parsed),
		zap.Int("upserted", res.Upserted),
		zap.Int("failed", res.Failed))
	return res, nil
}

// ImportDomestic fetches a council points table from url and upserts every row.
func (s *CatalogService) ImportDomestic(ctx context.Context, url, council string) (*ImportResult, error) {
	entries, err := s.parser.FetchDomestic(ctx, url, council)
	if err != nil {
		return nil, fmt.Errorf("fetch domestic table: %w", err)
	}
	res := &ImportResult{Parsed: len(entries)}
	for i := range entries {
		if err := s.journalRepo.UpsertDomestic(ctx, &entries[i]); err != nil {
			res.Failed++
			s.log.Warn("domestic journal upsert failed",
				zap.String("name", entries[i].Name),
				zap.Error(err))
			continue
		}
		res.Upserted++
	}
	s.log.Info("domestic journal import finished",
		zap.String("council", council),
		zap.Int("parsed", res.Parsed),
		zap.Int("upserted", res.Upserted),
		zap.Int("failed", res.Failed))
	return res, nil
}

// SearchJournals serves the indexed-journal autocomplete.
func (s *CatalogService) SearchJournals(ctx context.Context, q string, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.journalRepo.Search(ctx, q, limit)
}

// SearchDomestic serves the domestic-journal autocomplete.
func (s *CatalogService) SearchDomestic(ctx context.Context, q string, limit int) ([]models.DomesticJournal, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.journalRepo.SearchDomestic(ctx, q, limit)
}
