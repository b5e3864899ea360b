package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

const projectCols = `t.id, t.user_id, t.title, t.project_level, t.role, t.status,
	t.start_year, t.end_year, t.funding_amount, t.duration_years, t.total_members, t.code,
	t.approval_status, t.is_approved, t.approved_by, t.approved_at, t.rejection_reason,
	t.returned_by, t.returned_level, t.returned_at, t.created_at, t.updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Level, &p.Role, &p.Status,
		&p.StartYear, &p.EndYear, &p.FundingAmount, &p.DurationYears, &p.TotalMembers, &p.Code,
		&p.ApprovalStatus, &p.IsApproved, &p.ApprovedBy, &p.ApprovedAt, &p.RejectionReason,
		&p.ReturnedBy, &p.ReturnedLevel, &p.ReturnedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO projects (user_id, title, project_level, role, status, start_year, end_year,
			funding_amount, duration_years, total_members, code, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Title, p.Level, p.Role, p.Status, p.StartYear, p.EndYear,
		p.FundingAmount, p.DurationYears, p.TotalMembers, p.Code, p.ApprovalStatus,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	return scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectCols+` FROM projects t WHERE t.id = $1`, id))
}

func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE projects SET title = $2, project_level = $3, role = $4, status = $5,
			start_year = $6, end_year = $7, funding_amount = $8, duration_years = $9,
			total_members = $10, code = $11, updated_at = now()
		WHERE id = $1
	`, p.ID, p.Title, p.Level, p.Role, p.Status,
		p.StartYear, p.EndYear, p.FundingAmount, p.DurationYears,
		p.TotalMembers, p.Code)
	return err
}

func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (r *ProjectRepo) List(ctx context.Context, f ItemFilter) ([]models.Project, error) {
	query := `SELECT ` + projectCols + ` FROM projects t`
	args := []any{}
	where := []string{}
	appendProjectFilter(f, &where, &args)
	query += joinWhere(where) + ` ORDER BY t.start_year DESC, t.created_at DESC` + limitClause(f, &args)
	return r.queryProjects(ctx, query, args)
}

func (r *ProjectRepo) ListScoped(ctx context.Context, s Scope, f ItemFilter) ([]models.Project, error) {
	query := `SELECT ` + projectCols + `
		FROM projects t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN organization_units ou ON ou.id = u.organization_unit_id`
	f = expandStatusFilter(f, s.Level)
	args := []any{}
	where := []string{scopeCondition(s, &args), hideLowerPendingCondition(s.Level)}
	appendProjectFilter(f, &where, &args)
	query += joinWhere(where) + ` ORDER BY t.start_year DESC, t.created_at DESC` + limitClause(f, &args)
	return r.queryProjects(ctx, query, args)
}

func (r *ProjectRepo) ListPendingForActor(ctx context.Context, s Scope) ([]models.Project, error) {
	args := []any{}
	query := `SELECT ` + projectCols + `
		FROM projects t
		JOIN users u ON u.id = t.user_id
		JOIN organization_units ou ON ou.id = u.organization_unit_id
		WHERE ` + pendingForMeCondition(s, &args) + ` ORDER BY t.created_at ASC`
	return r.queryProjects(ctx, query, args)
}

func (r *ProjectRepo) TransitionStatus(ctx context.Context, tx pgx.Tx, id int64, fromStatus string, u StatusUpdate) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE projects SET approval_status = $3, approved_by = $4, approved_at = $5,
			rejection_reason = $6, returned_by = $7, returned_level = $8, returned_at = $9, updated_at = now()
		WHERE id = $1 AND approval_status = $2
	`, id, fromStatus, u.Status, u.ApprovedBy, u.ApprovedAt, u.RejectionReason, u.ReturnedBy, u.ReturnedLevel, u.ReturnedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// appendProjectFilter maps the shared filter onto the project columns: a Year
// filter means the project span covers that year.
func appendProjectFilter(f ItemFilter, where *[]string, args *[]any) {
	if f.Year != nil {
		*args = append(*args, *f.Year)
		*where = append(*where, fmt.Sprintf("t.start_year <= $%d AND t.end_year >= $%d", len(*args), len(*args)))
	}
	noYear := f
	noYear.Year = nil
	appendItemFilter(noYear, where, args)
}

func (r *ProjectRepo) queryProjects(ctx context.Context, query string, args []any) ([]models.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}
