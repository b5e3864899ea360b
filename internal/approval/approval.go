// Package approval implements the hierarchical approval chain as pure
// decision functions. Nothing here touches storage; callers resolve the
// actor's scope permissions and the vacancy of the owner's chain first, then
// ask this package what is allowed and what the next status is.
package approval

import "github.com/research-hours/backend/internal/models"

// Context carries every input a decision needs: the item's current status,
// whether the owner sits in an office (single-step chain), the actor's
// per-level scope permissions against that owner, and whether the owner's
// intermediate chain levels are currently unstaffed.
type Context struct {
	CurrentStatus string

	OfficeOwner bool

	CanUniversity bool
	CanFaculty    bool
	CanDepartment bool

	MissingDepartmentAdmin bool
	MissingFacultyAdmin    bool
}

func (c Context) status() string {
	if c.CurrentStatus == "" {
		return models.StatusPending
	}
	return c.CurrentStatus
}

// CanApprove reports whether the actor may approve the item now. The reason
// is non-empty only on refusal. A higher level may act early only when every
// staffed level below it has been exhausted: skipping is for vacant levels,
// never a bypass.
func CanApprove(ctx Context) (bool, string) {
	s := ctx.status()

	if ctx.OfficeOwner {
		if s != models.StatusPending {
			return false, "item is not awaiting approval"
		}
		if !ctx.CanUniversity {
			return false, "office items can only be approved by a university admin"
		}
		return true, ""
	}

	switch s {
	case models.StatusPending:
		if ctx.CanDepartment {
			return true, ""
		}
		if ctx.CanFaculty && ctx.MissingDepartmentAdmin {
			return true, ""
		}
		if ctx.CanUniversity && ctx.MissingDepartmentAdmin && ctx.MissingFacultyAdmin {
			return true, ""
		}
		return false, "department admin access for the owner's division is required"
	case models.StatusDepartmentApproved:
		if ctx.CanFaculty {
			return true, ""
		}
		if ctx.CanUniversity && ctx.MissingFacultyAdmin {
			return true, ""
		}
		return false, "faculty admin access for the owner's unit is required"
	case models.StatusFacultyApproved:
		if ctx.CanUniversity {
			return true, ""
		}
		return false, "university admin access is required for the final step"
	}

	return false, "item is not awaiting approval"
}

// NextStatus returns the status after an approve action, or the current
// status unchanged when the action is not allowed.
func NextStatus(ctx Context) string {
	s := ctx.status()

	if ctx.OfficeOwner {
		if s == models.StatusPending && ctx.CanUniversity {
			return models.StatusApproved
		}
		return s
	}

	switch s {
	case models.StatusPending:
		if ctx.CanDepartment {
			return models.StatusDepartmentApproved
		}
		if ctx.CanFaculty && ctx.MissingDepartmentAdmin {
			return models.StatusFacultyApproved
		}
		if ctx.CanUniversity && ctx.MissingDepartmentAdmin && ctx.MissingFacultyAdmin {
			return models.StatusApproved
		}
	case models.StatusDepartmentApproved:
		if ctx.CanFaculty {
			return models.StatusFacultyApproved
		}
		if ctx.CanUniversity && ctx.MissingFacultyAdmin {
			return models.StatusApproved
		}
	case models.StatusFacultyApproved:
		if ctx.CanUniversity {
			return models.StatusApproved
		}
	}

	return s
}

// ActionLevel names the admin level that performs the approve at the current
// state, or empty when no approve is possible.
func ActionLevel(ctx Context) string {
	s := ctx.status()

	if ctx.OfficeOwner {
		if s == models.StatusPending && ctx.CanUniversity {
			return models.LevelUniversity
		}
		return ""
	}

	switch s {
	case models.StatusPending:
		if ctx.CanDepartment {
			return models.LevelDepartment
		}
		if ctx.CanFaculty && ctx.MissingDepartmentAdmin {
			return models.LevelFaculty
		}
		if ctx.CanUniversity && ctx.MissingDepartmentAdmin && ctx.MissingFacultyAdmin {
			return models.LevelUniversity
		}
	case models.StatusDepartmentApproved:
		if ctx.CanFaculty {
			return models.LevelFaculty
		}
		if ctx.CanUniversity && ctx.MissingFacultyAdmin {
			return models.LevelUniversity
		}
	case models.StatusFacultyApproved:
		if ctx.CanUniversity {
			return models.LevelUniversity
		}
	}

	return ""
}

// CanReturn reports whether the actor may send the item back for correction.
// Status preconditions (not from approved, not from draft, reason required)
// are the executor's concern; this checks scope only. Office items can only
// be returned by a university admin.
func CanReturn(ctx Context) bool {
	if ctx.OfficeOwner {
		return ctx.CanUniversity
	}
	return ctx.CanUniversity || ctx.CanFaculty || ctx.CanDepartment
}

// CanReject reports whether the actor may undo a final approval. Only a
// university admin may, and only from approved.
func CanReject(ctx Context) bool {
	return ctx.status() == models.StatusApproved && ctx.CanUniversity
}

// SubmitStatus is the owner-side transition into the chain: draft and
// returned items go to pending, anything else stays put.
func SubmitStatus(current string) string {
	if current == models.StatusDraft || current == models.StatusReturned || current == "" {
		return models.StatusPending
	}
	return current
}

// SaveDraftStatus is the owner-side save-without-submitting transition. A
// returned item stays returned so the rejection reason remains visible until
// the owner explicitly resubmits.
func SaveDraftStatus(current string) string {
	if current == models.StatusReturned {
		return models.StatusReturned
	}
	return models.StatusDraft
}
