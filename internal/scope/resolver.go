// Package scope resolves what an actor is allowed to see and act on. The
// actor's persisted act-as state and role grants are loaded once per request
// and folded into an Actor value; everything after that is pure.
package scope

import (
	"sort"

	"github.com/research-hours/backend/internal/models"
)

// Actor is the resolved working context of the current user: their record,
// their active role grants, and the act-as override if one applies.
type Actor struct {
	User  *models.User
	Roles []models.AdminRole

	// ActAs locks the whole context to a single grant. Nil means the actor
	// works with the union of all their grants.
	ActAs *models.AdminRole

	// PlainUserMode drops all admin capabilities for the session.
	PlainUserMode bool
}

// SortRoles orders grants highest level first, then by id, so the default
// pick and list screens are stable.
func SortRoles(roles []models.AdminRole) {
	sort.SliceStable(roles, func(i, j int) bool {
		ri, rj := models.LevelRank[roles[i].RoleLevel], models.LevelRank[roles[j].RoleLevel]
		if ri != rj {
			return ri > rj
		}
		return roles[i].ID < roles[j].ID
	})
}

// Resolve builds the Actor from the user's persisted act-as state. An
// ActiveRoleID that no longer matches an active grant is ignored; a user
// holding several grants with no explicit choice gets the default pick.
func Resolve(user *models.User, roles []models.AdminRole) Actor {
	active := make([]models.AdminRole, 0, len(roles))
	for _, r := range roles {
		if r.IsActive {
			active = append(active, r)
		}
	}
	SortRoles(active)

	a := Actor{User: user, Roles: active, PlainUserMode: user.PlainUserMode}
	if a.PlainUserMode {
		return a
	}

	if user.ActiveRoleID != nil {
		for i := range active {
			if active[i].ID == *user.ActiveRoleID {
				a.ActAs = &active[i]
				return a
			}
		}
	}
	if len(active) > 1 {
		a.ActAs = DefaultActAs(active)
	}
	return a
}

// DefaultActAs picks the grant a multi-role admin starts out working as:
// faculty first, then department, then university. Most multi-role holders
// are faculty admins with an extra university grant and expect the faculty
// desk by default.
func DefaultActAs(roles []models.AdminRole) *models.AdminRole {
	for _, level := range []string{models.LevelFaculty, models.LevelDepartment, models.LevelUniversity} {
		for i := range roles {
			if roles[i].RoleLevel == level {
				return &roles[i]
			}
		}
	}
	return nil
}

// EffectiveLevel is the admin level the actor currently works at.
func (a Actor) EffectiveLevel() string {
	if a.PlainUserMode {
		return models.LevelNone
	}
	if a.ActAs != nil {
		return a.ActAs.RoleLevel
	}
	return models.HighestLevel(a.Roles)
}

// HasUniversityAccess reports university-level capability under the current
// working context.
func (a Actor) HasUniversityAccess() bool {
	return a.EffectiveLevel() == models.LevelUniversity
}

// ScopeIDs returns the ids the actor's grants cover at the given level: unit
// ids for faculty, division ids for department. Under act-as only the chosen
// grant counts.
func (a Actor) ScopeIDs(level string) []int64 {
	if a.PlainUserMode {
		return nil
	}

	if a.ActAs != nil {
		if a.ActAs.RoleLevel != level {
			return nil
		}
		switch level {
		case models.LevelFaculty:
			if a.ActAs.OrganizationUnitID != nil {
				return []int64{*a.ActAs.OrganizationUnitID}
			}
		case models.LevelDepartment:
			if a.ActAs.DivisionID != nil {
				return []int64{*a.ActAs.DivisionID}
			}
		}
		return nil
	}

	seen := map[int64]bool{}
	var ids []int64
	for _, r := range a.Roles {
		if r.RoleLevel != level {
			continue
		}
		var id *int64
		switch level {
		case models.LevelFaculty:
			id = r.OrganizationUnitID
		case models.LevelDepartment:
			id = r.DivisionID
		}
		if id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Permissions resolves the actor's per-level rights over one item owner:
// (university, faculty, department). Act-as locks the answer to the chosen
// grant; acting as university implies the lower levels for chain decisions.
func (a Actor) Permissions(owner *models.User) (canUniversity, canFaculty, canDepartment bool) {
	if a.PlainUserMode || owner == nil {
		return false, false, false
	}

	if a.ActAs != nil {
		switch a.ActAs.RoleLevel {
		case models.LevelUniversity:
			return true, true, true
		case models.LevelFaculty:
			ok := a.ActAs.OrganizationUnitID != nil &&
				owner.OrganizationUnitID != nil &&
				*owner.OrganizationUnitID == *a.ActAs.OrganizationUnitID
			return false, ok, false
		case models.LevelDepartment:
			ok := a.ActAs.DivisionID != nil &&
				owner.DivisionID != nil &&
				*owner.DivisionID == *a.ActAs.DivisionID
			return false, false, ok
		}
		return false, false, false
	}

	canUniversity = a.HasUniversityAccess()

	if owner.OrganizationUnitID != nil {
		if ids := a.ScopeIDs(models.LevelFaculty); len(ids) > 0 {
			canFaculty = containsID(ids, *owner.OrganizationUnitID)
		} else if a.EffectiveLevel() == models.LevelFaculty {
			// Grants without an explicit scope fall back to the actor's own
			// placement (legacy grants predating per-unit scoping).
			canFaculty = a.User.OrganizationUnitID != nil &&
				*a.User.OrganizationUnitID == *owner.OrganizationUnitID
		}
	}

	if owner.DivisionID != nil {
		if ids := a.ScopeIDs(models.LevelDepartment); len(ids) > 0 {
			canDepartment = containsID(ids, *owner.DivisionID)
		} else if a.EffectiveLevel() == models.LevelDepartment {
			canDepartment = a.User.DivisionID != nil &&
				*a.User.DivisionID == *owner.DivisionID
		}
	}

	return canUniversity, canFaculty, canDepartment
}

// CanModerate reports whether the actor holds any level of authority over the
// owner, at any rung of the chain.
func (a Actor) CanModerate(owner *models.User) bool {
	u, f, d := a.Permissions(owner)
	return u || f || d
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
