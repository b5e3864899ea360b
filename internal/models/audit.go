package models

import "time"

// Approval actions recorded in the log. Approves are named by the level that
// performed them.
const (
	ActionSubmit            = "submit"
	ActionDepartmentApprove = "department_approve"
	ActionFacultyApprove    = "faculty_approve"
	ActionUniversityApprove = "university_approve"
	ActionReturn            = "return"
	ActionReject            = "reject"
)

// ApprovalLog is one append-only record of a status change on an item.
type ApprovalLog struct {
	ID         int64     `json:"id"`
	ItemKind   string    `json:"item_kind"`
	ItemID     int64     `json:"item_id"`
	ActorID    int64     `json:"actor_id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Level      string    `json:"level,omitempty"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Admin permission actions.
const (
	PermGrant  = "grant"
	PermRevoke = "revoke"
	PermToggle = "toggle"
)

// AdminPermissionLog records every grant, revoke and toggle of an admin role.
type AdminPermissionLog struct {
	ID        int64     `json:"id"`
	RoleID    int64     `json:"role_id"`
	TargetID  int64     `json:"target_user_id"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    *string   `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
