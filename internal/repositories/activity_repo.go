package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

const activityCols = `t.id, t.user_id, t.year, t.activity_type, t.description, t.quantity, t.venue,
	t.approval_status, t.is_approved, t.approved_by, t.approved_at, t.rejection_reason,
	t.returned_by, t.returned_level, t.returned_at, t.created_at, t.updated_at`

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.ID, &a.UserID, &a.Year, &a.Type, &a.Description, &a.Quantity, &a.Venue,
		&a.ApprovalStatus, &a.IsApproved, &a.ApprovedBy, &a.ApprovedAt, &a.RejectionReason,
		&a.ReturnedBy, &a.ReturnedLevel, &a.ReturnedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepo) Create(ctx context.Context, a *models.Activity) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO other_activities (user_id, year, activity_type, description, quantity, venue, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, a.UserID, a.Year, a.Type, a.Description, a.Quantity, a.Venue, a.ApprovalStatus,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ActivityRepo) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	return scanActivity(r.pool.QueryRow(ctx,
		`SELECT `+activityCols+` FROM other_activities t WHERE t.id = $1`, id))
}

func (r *ActivityRepo) Update(ctx context.Context, a *models.Activity) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE other_activities SET year = $2, activity_type = $3, description = $4,
			quantity = $5, venue = $6, updated_at = now()
		WHERE id = $1
	`, a.ID, a.Year, a.Type, a.Description, a.Quantity, a.Venue)
	return err
}

func (r *ActivityRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM other_activities WHERE id = $1`, id)
	return err
}

func (r *ActivityRepo) List(ctx context.Context, f ItemFilter) ([]models.Activity, error) {
	query := `SELECT ` + activityCols + ` FROM other_activities t`
	args := []any{}
	where := []string{}
	appendItemFilter(f, &where, &args)
	query += joinWhere(where) + ` ORDER BY t.year DESC, t.created_at DESC` + limitClause(f, &args)
	return r.queryActivities(ctx, query, args)
}

func (r *ActivityRepo) ListScoped(ctx context.Context, s Scope, f ItemFilter) ([]models.Activity, error) {
	query := `SELECT ` + activityCols + `
		FROM other_activities t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN organization_units ou ON ou.id = u.organization_unit_id`
	f = expandStatusFilter(f, s.Level)
	args := []any{}
	where := []string{scopeCondition(s, &args), hideLowerPendingCondition(s.Level)}
	appendItemFilter(f, &where, &args)
	query += joinWhere(where) + ` ORDER BY t.year DESC, t.created_at DESC` + limitClause(f, &args)
	return r.queryActivities(ctx, query, args)
}

func (r *ActivityRepo) ListPendingForActor(ctx context.Context, s Scope) ([]models.Activity, error) {
	args := []any{}
	query := `SELECT ` + activityCols + `
		FROM other_activities t
		JOIN users u ON u.id = t.user_id
		JOIN organization_units ou ON ou.id = u.organization_unit_id
		WHERE ` + pendingForMeCondition(s, &args) + ` ORDER BY t.created_at ASC`
	return r.queryActivities(ctx, query, args)
}

func (r *ActivityRepo) TransitionStatus(ctx context.Context, tx pgx.Tx, id int64, fromStatus string, u StatusUpdate) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE other_activities SET approval_status = $3, approved_by = $4, approved_at = $5,
			rejection_reason = $6, returned_by = $7, returned_level = $8, returned_at = $9, updated_at = now()
		WHERE id = $1 AND approval_status = $2
	`, id, fromStatus, u.Status, u.ApprovedBy, u.ApprovedAt, u.RejectionReason, u.ReturnedBy, u.ReturnedLevel, u.ReturnedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ActivityRepo) queryActivities(ctx context.Context, query string, args []any) ([]models.Activity, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}
