package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

type OrgRepo struct {
	pool *pgxpool.Pool
}

func NewOrgRepo(pool *pgxpool.Pool) *OrgRepo {
	return &OrgRepo{pool: pool}
}

func (r *OrgRepo) CreateUnit(ctx context.Context, u *models.OrganizationUnit) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO organization_units (name, code, unit_type, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Code, u.UnitType, u.Description, u.IsActive).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *OrgRepo) GetUnit(ctx context.Context, id int64) (*models.OrganizationUnit, error) {
	var u models.OrganizationUnit
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, code, unit_type, description, is_active, created_at, updated_at
		FROM organization_units WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Code, &u.UnitType, &u.Description, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *OrgRepo) ListUnits(ctx context.Context, activeOnly bool) ([]models.OrganizationUnit, error) {
	query := `
		SELECT id, name, code, unit_type, description, is_active, created_at, updated_at
		FROM organization_units`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []models.OrganizationUnit
	for rows.Next() {
		var u models.OrganizationUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.Code, &u.UnitType, &u.Description, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *OrgRepo) UpdateUnit(ctx context.Context, u *models.OrganizationUnit) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE organization_units SET name = $2, code = $3, unit_type = $4,
			description = $5, is_active = $6, updated_at = now()
		WHERE id = $1
	`, u.ID, u.Name, u.Code, u.UnitType, u.Description, u.IsActive)
	return err
}

func (r *OrgRepo) CreateDivision(ctx context.Context, d *models.Division) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO divisions (organization_unit_id, name, code, description, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, d.OrganizationUnitID, d.Name, d.Code, d.Description, d.IsActive).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *OrgRepo) GetDivision(ctx context.Context, id int64) (*models.Division, error) {
	var d models.Division
	err := r.pool.QueryRow(ctx, `
		SELECT id, organization_unit_id, name, code, description, is_active, created_at, updated_at
		FROM divisions WHERE id = $1
	`, id).Scan(&d.ID, &d.OrganizationUnitID, &d.Name, &d.Code, &d.Description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *OrgRepo) ListDivisions(ctx context.Context, unitID *int64) ([]models.Division, error) {
	query := `
		SELECT id, organization_unit_id, name, code, description, is_active, created_at, updated_at
		FROM divisions`
	args := []any{}
	if unitID != nil {
		query += ` WHERE organization_unit_id = $1`
		args = append(args, *unitID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var divisions []models.Division
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.ID, &d.OrganizationUnitID, &d.Name, &d.Code, &d.Description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		divisions = append(divisions, d)
	}
	return divisions, rows.Err()
}

func (r *OrgRepo) UpdateDivision(ctx context.Context, d *models.Division) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE divisions SET name = $2, code = $3, description = $4, is_active = $5, updated_at = now()
		WHERE id = $1
	`, d.ID, d.Name, d.Code, d.Description, d.IsActive)
	return err
}
