package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

// JournalRepo stores the indexed-journal catalog used to suggest publication
// classifications.
type JournalRepo struct {
	pool *pgxpool.Pool
}

func NewJournalRepo(pool *pgxpool.Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

// Upsert inserts or refreshes one catalog entry, keyed by name and index.
func (r *JournalRepo) Upsert(ctx context.Context, e *models.JournalEntry) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO journal_catalog (name, issn, index_name, quartile, publisher, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (name, index_name) DO UPDATE
		SET issn = EXCLUDED.issn, quartile = EXCLUDED.quartile,
			publisher = EXCLUDED.publisher, updated_at = now()
		RETURNING id, updated_at
	`, e.Name, e.ISSN, e.Index, e.Quartile, e.Publisher).Scan(&e.ID, &e.UpdatedAt)
}

// Search matches catalog entries by name or ISSN, best name matches first.
func (r *JournalRepo) Search(ctx context.Context, q string, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, issn, index_name, quartile, publisher, updated_at
		FROM journal_catalog
		WHERE name ILIKE '%' || $1 || '%' OR issn = $1
		ORDER BY (lower(name) = lower($1)) DESC, name ASC
		LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.ISSN, &e.Index, &e.Quartile, &e.Publisher, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *JournalRepo) UpsertDomestic(ctx context.Context, j *models.DomesticJournal) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO domestic_journals (name, issn, points, council)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET issn = EXCLUDED.issn, points = EXCLUDED.points, council = EXCLUDED.council
		RETURNING id
	`, j.Name, j.ISSN, j.Points, j.Council).Scan(&j.ID)
}

func (r *JournalRepo) SearchDomestic(ctx context.Context, q string, limit int) ([]models.DomesticJournal, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, issn, points, council
		FROM domestic_journals
		WHERE name ILIKE '%' || $1 || '%' OR issn = $1
		ORDER BY (lower(name) = lower($1)) DESC, name ASC
		LIMIT $2
	`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []models.DomesticJournal
	for rows.Next() {
		var j models.DomesticJournal
		if err := rows.Scan(&j.ID, &j.Name, &j.ISSN, &j.Points, &j.Council); err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}
