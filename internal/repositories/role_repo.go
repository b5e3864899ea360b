package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

const roleCols = `ar.id, ar.user_id, ar.role_level, ar.organization_unit_id, ar.division_id,
	ar.assigned_by, ar.assigned_at, ar.is_active, ar.notes`

func scanRole(row pgx.Row) (*models.AdminRole, error) {
	var role models.AdminRole
	err := row.Scan(&role.ID, &role.UserID, &role.RoleLevel, &role.OrganizationUnitID, &role.DivisionID,
		&role.AssignedBy, &role.AssignedAt, &role.IsActive, &role.Notes)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) Create(ctx context.Context, role *models.AdminRole) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO admin_roles (user_id, role_level, organization_unit_id, division_id, assigned_by, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, assigned_at
	`, role.UserID, role.RoleLevel, role.OrganizationUnitID, role.DivisionID,
		role.AssignedBy, role.IsActive, role.Notes,
	).Scan(&role.ID, &role.AssignedAt)
}

func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*models.AdminRole, error) {
	return scanRole(r.pool.QueryRow(ctx,
		`SELECT `+roleCols+` FROM admin_roles ar WHERE ar.id = $1`, id))
}

// ListActiveByUser returns the user's active grants, highest level first.
func (r *RoleRepo) ListActiveByUser(ctx context.Context, userID int64) ([]models.AdminRole, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+roleCols+` FROM admin_roles ar
		WHERE ar.user_id = $1 AND ar.is_active
		ORDER BY CASE ar.role_level
			WHEN 'university' THEN 3 WHEN 'faculty' THEN 2 WHEN 'department' THEN 1 ELSE 0
		END DESC, ar.id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectRoles(rows)
}

// RoleFilter narrows admin role lists for the management screens.
type RoleFilter struct {
	Level      *string
	UnitID     *int64
	DivisionID *int64
	ActiveOnly bool
}

func (r *RoleRepo) List(ctx context.Context, f RoleFilter) ([]models.AdminRole, error) {
	query := `SELECT ` + roleCols + ` FROM admin_roles ar`
	args := []any{}
	where := []string{}

	if f.Level != nil {
		args = append(args, *f.Level)
		where = append(where, fmt.Sprintf("ar.role_level = $%d", len(args)))
	}
	if f.UnitID != nil {
		args = append(args, *f.UnitID)
		where = append(where, fmt.Sprintf("ar.organization_unit_id = $%d", len(args)))
	}
	if f.DivisionID != nil {
		args = append(args, *f.DivisionID)
		where = append(where, fmt.Sprintf("ar.division_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "ar.is_active")
	}

	query += joinWhere(where) + ` ORDER BY ar.assigned_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectRoles(rows)
}

func (r *RoleRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admin_roles SET is_active = $2 WHERE id = $1`, id, active)
	return err
}

func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM admin_roles WHERE id = $1`, id)
	return err
}

// CountEffectiveAdmins counts active grants of active users at a level and
// scope. The exclusions let the last-admin guard ask "how many would remain
// without this grant/user".
func (r *RoleRepo) CountEffectiveAdmins(ctx context.Context, level string, unitID, divisionID *int64, excludeRoleID, excludeUserID *int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM admin_roles ar
		JOIN users u ON u.id = ar.user_id
		WHERE ar.role_level = $1 AND ar.is_active AND u.is_active`
	args := []any{level}

	if level == models.LevelFaculty && unitID != nil {
		args = append(args, *unitID)
		query += fmt.Sprintf(" AND ar.organization_unit_id = $%d", len(args))
	}
	if level == models.LevelDepartment && divisionID != nil {
		args = append(args, *divisionID)
		query += fmt.Sprintf(" AND ar.division_id = $%d", len(args))
	}
	if excludeRoleID != nil {
		args = append(args, *excludeRoleID)
		query += fmt.Sprintf(" AND ar.id <> $%d", len(args))
	}
	if excludeUserID != nil {
		args = append(args, *excludeUserID)
		query += fmt.Sprintf(" AND ar.user_id <> $%d", len(args))
	}

	var n int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

// FindExisting looks for a duplicate grant of the same level and scope for
// one user, active or not.
func (r *RoleRepo) FindExisting(ctx context.Context, userID int64, level string, unitID, divisionID *int64) (*models.AdminRole, error) {
	query := `SELECT ` + roleCols + ` FROM admin_roles ar WHERE ar.user_id = $1 AND ar.role_level = $2`
	args := []any{userID, level}

	if unitID != nil {
		args = append(args, *unitID)
		query += fmt.Sprintf(" AND ar.organization_unit_id = $%d", len(args))
	} else {
		query += " AND ar.organization_unit_id IS NULL"
	}
	if divisionID != nil {
		args = append(args, *divisionID)
		query += fmt.Sprintf(" AND ar.division_id = $%d", len(args))
	} else {
		query += " AND ar.division_id IS NULL"
	}

	role, err := scanRole(r.pool.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return role, err
}

func collectRoles(rows pgx.Rows) ([]models.AdminRole, error) {
	defer rows.Close()
	var roles []models.AdminRole
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}
