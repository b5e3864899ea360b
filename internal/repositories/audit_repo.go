package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/research-hours/backend/internal/models"
)

// AuditRepo persists the append-only approval and permission logs.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// LogApproval inserts one approval log row inside the caller's transaction,
// so the status write and its log land or roll back together.
func (r *AuditRepo) LogApproval(ctx context.Context, tx pgx.Tx, entry models.ApprovalLog) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO approval_logs (item_kind, item_id, actor_id, action, from_status, to_status, level, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ItemKind, entry.ItemID, entry.ActorID, entry.Action,
		entry.FromStatus, entry.ToStatus, entry.Level, entry.Reason)
	return err
}

func (r *AuditRepo) ListApprovalsByItem(ctx context.Context, itemKind string, itemID int64, limit, offset int) ([]models.ApprovalLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_kind, item_id, actor_id, action, from_status, to_status, level, reason, created_at
		FROM approval_logs WHERE item_kind = $1 AND item_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4
	`, itemKind, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ApprovalLog
	for rows.Next() {
		var l models.ApprovalLog
		if err := rows.Scan(&l.ID, &l.ItemKind, &l.ItemID, &l.ActorID, &l.Action,
			&l.FromStatus, &l.ToStatus, &l.Level, &l.Reason, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *AuditRepo) LogPermission(ctx context.Context, entry models.AdminPermissionLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_permission_logs (role_id, target_user_id, actor_id, action, detail)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.RoleID, entry.TargetID, entry.ActorID, entry.Action, entry.Detail)
	return err
}

func (r *AuditRepo) ListPermissionLogs(ctx context.Context, limit, offset int) ([]models.AdminPermissionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, role_id, target_user_id, actor_id, action, detail, created_at
		FROM admin_permission_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AdminPermissionLog
	for rows.Next() {
		var l models.AdminPermissionLog
		if err := rows.Scan(&l.ID, &l.RoleID, &l.TargetID, &l.ActorID, &l.Action, &l.Detail, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
