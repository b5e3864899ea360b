package repositories

import (
	"fmt"
	"time"

	"github.com/research-hours/backend/internal/models"
)

// ItemFilter narrows list queries over any of the three item tables.
type ItemFilter struct {
	OwnerID  *int64
	Year     *int
	Status   *string
	Statuses []string
	Limit    int
	Offset   int
}

// Scope describes the actor's working range for admin list queries, resolved
// once by the scope package and passed down here as plain data.
type Scope struct {
	Level       string
	UnitIDs     []int64
	DivisionIDs []int64
}

// StatusUpdate is the set of approval fields written by one executor action.
// Pointers are written as given, including nils, so a single struct expresses
// both setting and clearing.
type StatusUpdate struct {
	Status          string
	ApprovedBy      *int64
	ApprovedAt      *time.Time
	RejectionReason *string
	ReturnedBy      *int64
	ReturnedLevel   *string
	ReturnedAt      *time.Time
}

// The admin_roles vacancy probes used by the visibility filters. A level is
// vacant for an owner when no active admin of an active user covers the
// owner's division/unit.
const (
	noDepartmentAdminSQL = `NOT EXISTS (
		SELECT 1 FROM admin_roles ar
		JOIN users au ON au.id = ar.user_id
		WHERE ar.role_level = 'department' AND ar.is_active AND au.is_active
		  AND ar.division_id = u.division_id
	)`
	noFacultyAdminSQL = `NOT EXISTS (
		SELECT 1 FROM admin_roles ar
		JOIN users au ON au.id = ar.user_id
		WHERE ar.role_level = 'faculty' AND ar.is_active AND au.is_active
		  AND ar.organization_unit_id = u.organization_unit_id
	)`
)

// scopeCondition restricts rows to owners inside the actor's scope. Queries
// using it must alias the item table t and join users u.
func scopeCondition(s Scope, args *[]any) string {
	switch s.Level {
	case models.LevelUniversity:
		return "TRUE"
	case models.LevelFaculty:
		if len(s.UnitIDs) == 0 {
			return "FALSE"
		}
		*args = append(*args, s.UnitIDs)
		return fmt.Sprintf("u.organization_unit_id = ANY($%d)", len(*args))
	case models.LevelDepartment:
		if len(s.DivisionIDs) == 0 {
			return "FALSE"
		}
		*args = append(*args, s.DivisionIDs)
		return fmt.Sprintf("u.division_id = ANY($%d)", len(*args))
	}
	return "FALSE"
}

// pendingForMeCondition selects the rows that currently need the actor's own
// approve action, including items bubbling up past vacant lower levels.
// Queries using it must alias the item table t, join users u and their unit
// ou.
func pendingForMeCondition(s Scope, args *[]any) string {
	switch s.Level {
	case models.LevelDepartment:
		if len(s.DivisionIDs) == 0 {
			return "FALSE"
		}
		*args = append(*args, s.DivisionIDs)
		return fmt.Sprintf(
			"t.approval_status = 'pending' AND u.division_id = ANY($%d) AND ou.unit_type <> 'office'",
			len(*args))
	case models.LevelFaculty:
		if len(s.UnitIDs) == 0 {
			return "FALSE"
		}
		*args = append(*args, s.UnitIDs)
		return fmt.Sprintf(`u.organization_unit_id = ANY($%d) AND ou.unit_type <> 'office'
			AND (t.approval_status = 'department_approved'
			  OR (t.approval_status = 'pending' AND (u.division_id IS NULL OR %s)))`,
			len(*args), noDepartmentAdminSQL)
	case models.LevelUniversity:
		// Office items come straight to the university desk; everything else
		// arrives as faculty_approved, or earlier when the chain below is
		// vacant.
		return fmt.Sprintf(`(
			(t.approval_status = 'faculty_approved' AND ou.unit_type <> 'office')
			OR (t.approval_status = 'pending' AND ou.unit_type = 'office')
			OR (t.approval_status = 'department_approved' AND ou.unit_type <> 'office' AND %[1]s)
			OR (t.approval_status = 'pending' AND ou.unit_type <> 'office' AND %[1]s
				AND (u.division_id IS NULL OR %[2]s))
		)`, noFacultyAdminSQL, noDepartmentAdminSQL)
	}
	return "FALSE"
}

// hideLowerPendingCondition hides items still waiting on a lower desk from
// generic admin lists, so a faculty admin never sees raw pending and the
// university desk never sees the intermediate states.
func hideLowerPendingCondition(level string) string {
	switch level {
	case models.LevelFaculty:
		return "t.approval_status <> 'pending'"
	case models.LevelUniversity:
		return "t.approval_status <> 'department_approved' AND (t.approval_status <> 'pending' OR ou.unit_type = 'office')"
	}
	return "TRUE"
}

// expandStatusFilter widens an "approved" status filter on admin lists to
// every status the actor's level treats as already past its own desk: a
// department admin filtering for approved items also means department_approved
// and faculty_approved ones.
func expandStatusFilter(f ItemFilter, level string) ItemFilter {
	if f.Status == nil || *f.Status != models.StatusApproved {
		return f
	}
	if statuses, ok := models.ApprovedStatusesByLevel[level]; ok {
		f.Status = nil
		f.Statuses = statuses
	}
	return f
}

func appendItemFilter(f ItemFilter, where *[]string, args *[]any) {
	if f.OwnerID != nil {
		*args = append(*args, *f.OwnerID)
		*where = append(*where, fmt.Sprintf("t.user_id = $%d", len(*args)))
	}
	if f.Year != nil {
		*args = append(*args, *f.Year)
		*where = append(*where, fmt.Sprintf("t.year = $%d", len(*args)))
	}
	if f.Status != nil {
		*args = append(*args, *f.Status)
		*where = append(*where, fmt.Sprintf("t.approval_status = $%d", len(*args)))
	}
	if len(f.Statuses) > 0 {
		*args = append(*args, f.Statuses)
		*where = append(*where, fmt.Sprintf("t.approval_status = ANY($%d)", len(*args)))
	}
}

func limitClause(f ItemFilter, args *[]any) string {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	*args = append(*args, limit, f.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(*args)-1, len(*args))
}

func joinWhere(where []string) string {
	if len(where) == 0 {
		return ""
	}
	out := " WHERE "
	for i, w := range where {
		if i > 0 {
			out += " AND "
		}
		out += w
	}
	return out
}
