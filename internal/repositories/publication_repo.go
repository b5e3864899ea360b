package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

type PublicationRepo struct {
	pool *pgxpool.Pool
}

func NewPublicationRepo(pool *pgxpool.Pool) *PublicationRepo {
	return &PublicationRepo{pool: pool}
}

const publicationCols = `t.id, t.user_id, t.year, t.title, t.type, t.quartile, t.domestic_points,
	t.patent_stage, t.is_republished, t.total_authors, t.author_role, t.contribution_percentage,
	t.journal, t.doi, t.approval_status, t.is_approved, t.approved_by, t.approved_at, t.rejection_reason,
	t.returned_by, t.returned_level, t.returned_at, t.created_at, t.updated_at`

func scanPublication(row pgx.Row) (*models.Publication, error) {
	var p models.Publication
	err := row.Scan(&p.ID, &p.UserID, &p.Year, &p.Title, &p.Type, &p.Quartile, &p.DomesticPoints,
		&p.PatentStage, &p.Republished, &p.TotalAuthors, &p.AuthorRole, &p.ContributionPct,
		&p.Journal, &p.DOI, &p.ApprovalStatus, &p.IsApproved, &p.ApprovedBy, &p.ApprovedAt, &p.RejectionReason,
		&p.ReturnedBy, &p.ReturnedLevel, &p.ReturnedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PublicationRepo) Create(ctx context.Context, p *models.Publication) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO publications (user_id, year, title, type, quartile, domestic_points, patent_stage,
			is_republished, total_authors, author_role, contribution_percentage, journal, doi, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Year, p.Title, p.Type, p.Quartile, p.DomesticPoints, p.PatentStage,
		p.Republished, p.TotalAuthors, p.AuthorRole, p.ContributionPct, p.Journal, p.DOI, p.ApprovalStatus,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PublicationRepo) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	return scanPublication(r.pool.QueryRow(ctx,
		`SELECT `+publicationCols+` FROM publications t WHERE t.id = $1`, id))
}

// Update rewrites the owner-editable fields. Status fields are the approval
// executor's business and are not touched here.
func (r *PublicationRepo) Update(ctx context.Context, p *models.Publication) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE publications SET year = $2, title = $3, type = $4, quartile = $5, domestic_points = $6,
			patent_stage = $7, is_republished = $8, total_authors = $9, author_role = $10,
			contribution_percentage = $11, journal = $12, doi = $13, updated_at = now()
		WHERE id = $1
	`, p.ID, p.Year, p.Title, p.Type, p.Quartile, p.DomesticPoints,
		p.PatentStage, p.Republished, p.TotalAuthors, p.AuthorRole,
		p.ContributionPct, p.Journal, p.DOI)
	return err
}

func (r *PublicationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM publications WHERE id = $1`, id)
	return err
}

func (r *PublicationRepo) List(ctx context.Context, f ItemFilter) ([]models.Publication, error) {
	query := `SELECT ` + publicationCols + ` FROM publications t`
	args := []any{}
	where := []string{}
	appendItemFilter(f, &where, &args)
	query += joinWhere(where) + ` ORDER BY t.year DESC, t.created_at DESC` + limitClause(f, &args)
	return r.queryPublications(ctx, query, args)
}

// ListScoped lists publications whose owners fall inside the actor's scope,
// hiding rows still waiting on a lower desk.
func (r *PublicationRepo) ListScoped(ctx context.Context, s Scope, f ItemFilter) ([]models.Publication, error) {
	query := `SELECT ` + publicationCols + `
		FROM publications t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN organization_units ou ON ou.id = u.organization_unit_id`
	f = expandStatusFilter(f, s.Level)
	args := []any{}
	where := []string{scopeCondition(s, &args), hideLowerPendingCondition(s.Level)}
	appendItemFilter(f, &where, &args)
	query += joinWhere(where) + ` ORDER BY t.year DESC, t.created_at DESC` + limitClause(f, &args)
	return r.queryPublications(ctx, query, args)
}

// ListPendingForActor returns publications that currently need the actor's
// approve action, oldest first so batch approval works through a stable queue.
func (r *PublicationRepo) ListPendingForActor(ctx context.Context, s Scope) ([]models.Publication, error) {
	args := []any{}
	query := `SELECT ` + publicationCols + `
		FROM publications t
		JOIN users u ON u.id = t.user_id
		JOIN organization_units ou ON ou.id = u.organization_unit_id
		WHERE ` + pendingForMeCondition(s, &args) + ` ORDER BY t.created_at ASC`
	return r.queryPublications(ctx, query, args)
}

// TransitionStatus writes the approval fields guarded by the expected current
// status. It reports false without error when another writer got there first.
func (r *PublicationRepo) TransitionStatus(ctx context.Context, tx pgx.Tx, id int64, fromStatus string, u StatusUpdate) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE publications SET approval_status = $3, approved_by = $4, approved_at = $5,
			rejection_reason = $6, returned_by = $7, returned_level = $8, returned_at = $9, updated_at = now()
		WHERE id = $1 AND approval_status = $2
	`, id, fromStatus, u.Status, u.ApprovedBy, u.ApprovedAt, u.RejectionReason, u.ReturnedBy, u.ReturnedLevel, u.ReturnedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PublicationRepo) queryPublications(ctx context.Context, query string, args []any) ([]models.Publication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pubs []models.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, *p)
	}
	return pubs, rows.Err()
}
