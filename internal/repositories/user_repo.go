package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userCols = `u.id, u.email, u.password_hash, u.full_name, u.employee_id,
	u.organization_unit_id, u.division_id, u.active_role_id, u.plain_user_mode,
	u.is_active, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.EmployeeID,
		&u.OrganizationUnitID, &u.DivisionID, &u.ActiveRoleID, &u.PlainUserMode,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, employee_id, organization_unit_id, division_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash, u.FullName, u.EmployeeID, u.OrganizationUnitID, u.DivisionID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users u WHERE u.id = $1`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users u WHERE lower(u.email) = lower($1)`, email))
}

// GetWithUnit loads a user together with their placement names, the shape
// list screens and approval decisions need.
func (r *UserRepo) GetWithUnit(ctx context.Context, id int64) (*models.UserWithUnit, error) {
	var u models.UserWithUnit
	err := r.pool.QueryRow(ctx, `
		SELECT `+userCols+`, ou.name, ou.unit_type, d.name
		FROM users u
		LEFT JOIN organization_units ou ON ou.id = u.organization_unit_id
		LEFT JOIN divisions d ON d.id = u.division_id
		WHERE u.id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.EmployeeID,
		&u.OrganizationUnitID, &u.DivisionID, &u.ActiveRoleID, &u.PlainUserMode,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		&u.UnitName, &u.UnitType, &u.DivisionName)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetActAs persists the act-as override. A nil roleID clears the explicit
// selection; userMode switches the session to plain-user mode.
func (r *UserRepo) SetActAs(ctx context.Context, userID int64, roleID *int64, userMode bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET active_role_id = $2, plain_user_mode = $3, updated_at = now()
		WHERE id = $1
	`, userID, roleID, userMode)
	return err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET full_name = $2, employee_id = $3, organization_unit_id = $4,
			division_id = $5, updated_at = now()
		WHERE id = $1
	`, u.ID, u.FullName, u.EmployeeID, u.OrganizationUnitID, u.DivisionID)
	return err
}

func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	return err
}

func (r *UserRepo) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	return err
}

// UserFilter narrows admin user lists.
type UserFilter struct {
	UnitID     *int64
	DivisionID *int64
	ActiveOnly bool
	Search     *string
	Limit      int
	Offset     int
}

func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]models.UserWithUnit, error) {
	query := `
		SELECT ` + userCols + `, ou.name, ou.unit_type, d.name
		FROM users u
		LEFT JOIN organization_units ou ON ou.id = u.organization_unit_id
		LEFT JOIN divisions d ON d.id = u.division_id`
	args := []any{}
	where := []string{}

	if f.UnitID != nil {
		args = append(args, *f.UnitID)
		where = append(where, fmt.Sprintf("u.organization_unit_id = $%d", len(args)))
	}
	if f.DivisionID != nil {
		args = append(args, *f.DivisionID)
		where = append(where, fmt.Sprintf("u.division_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "u.is_active")
	}
	if f.Search != nil && *f.Search != "" {
		args = append(args, "%"+*f.Search+"%")
		where = append(where, fmt.Sprintf("(u.full_name ILIKE $%d OR u.email ILIKE $%d)", len(args), len(args)))
	}

	query += joinWhere(where)

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY u.full_name ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserWithUnit
	for rows.Next() {
		var u models.UserWithUnit
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.EmployeeID,
			&u.OrganizationUnitID, &u.DivisionID, &u.ActiveRoleID, &u.PlainUserMode,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
			&u.UnitName, &u.UnitType, &u.DivisionName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
