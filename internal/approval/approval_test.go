package approval

import (
	"testing"

	"github.com/research-hours/backend/internal/models"
)

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name    string
		ctx     Context
		allowed bool
	}{
		{
			"department admin approves pending",
			Context{CurrentStatus: models.StatusPending, CanDepartment: true},
			true,
		},
		{
			"faculty admin cannot jump staffed department step",
			Context{CurrentStatus: models.StatusPending, CanFaculty: true},
			false,
		},
		{
			"faculty admin fills vacant department step",
			Context{CurrentStatus: models.StatusPending, CanFaculty: true, MissingDepartmentAdmin: true},
			true,
		},
		{
			"university cannot skip while faculty staffed",
			Context{CurrentStatus: models.StatusPending, CanUniversity: true, MissingDepartmentAdmin: true},
			false,
		},
		{
			"university fills fully vacant chain",
			Context{CurrentStatus: models.StatusPending, CanUniversity: true, MissingDepartmentAdmin: true, MissingFacultyAdmin: true},
			true,
		},
		{
			"faculty admin approves department_approved",
			Context{CurrentStatus: models.StatusDepartmentApproved, CanFaculty: true},
			true,
		},
		{
			"university fills vacant faculty step",
			Context{CurrentStatus: models.StatusDepartmentApproved, CanUniversity: true, MissingFacultyAdmin: true},
			true,
		},
		{
			"university cannot bypass staffed faculty step",
			Context{CurrentStatus: models.StatusDepartmentApproved, CanUniversity: true},
			false,
		},
		{
			"university approves faculty_approved",
			Context{CurrentStatus: models.StatusFacultyApproved, CanUniversity: true},
			true,
		},
		{
			"faculty cannot take final step",
			Context{CurrentStatus: models.StatusFacultyApproved, CanFaculty: true},
			false,
		},
		{
			"approved item refuses second approve",
			Context{CurrentStatus: models.StatusApproved, CanUniversity: true},
			false,
		},
		{
			"draft not approvable",
			Context{CurrentStatus: models.StatusDraft, CanDepartment: true, CanFaculty: true, CanUniversity: true},
			false,
		},
		{
			"returned not approvable",
			Context{CurrentStatus: models.StatusReturned, CanUniversity: true},
			false,
		},
		{
			"empty status treated as pending",
			Context{CanDepartment: true},
			true,
		},
		{
			"office pending needs university",
			Context{CurrentStatus: models.StatusPending, OfficeOwner: true, CanFaculty: true, CanDepartment: true},
			false,
		},
		{
			"office pending with university",
			Context{CurrentStatus: models.StatusPending, OfficeOwner: true, CanUniversity: true},
			true,
		},
		{
			"office non-pending refused",
			Context{CurrentStatus: models.StatusFacultyApproved, OfficeOwner: true, CanUniversity: true},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, reason := CanApprove(tt.ctx)
			if allowed != tt.allowed {
				t.Errorf("CanApprove = %v (%q), want %v", allowed, reason, tt.allowed)
			}
			if allowed && reason != "" {
				t.Errorf("allowed approve carries reason %q", reason)
			}
			if !allowed && reason == "" {
				t.Error("refusal carries no reason")
			}
		})
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected string
	}{
		{
			"department advances one step",
			Context{CurrentStatus: models.StatusPending, CanDepartment: true},
			models.StatusDepartmentApproved,
		},
		{
			// No department admin exists for the owner, so the faculty admin
			// acts directly on pending.
			"faculty skips vacant department",
			Context{CurrentStatus: models.StatusPending, CanFaculty: true, MissingDepartmentAdmin: true},
			models.StatusFacultyApproved,
		},
		{
			"university skips fully vacant chain",
			Context{CurrentStatus: models.StatusPending, CanUniversity: true, MissingDepartmentAdmin: true, MissingFacultyAdmin: true},
			models.StatusApproved,
		},
		{
			"faculty advances department_approved",
			Context{CurrentStatus: models.StatusDepartmentApproved, CanFaculty: true},
			models.StatusFacultyApproved,
		},
		{
			"university finishes from department_approved when faculty vacant",
			Context{CurrentStatus: models.StatusDepartmentApproved, CanUniversity: true, MissingFacultyAdmin: true},
			models.StatusApproved,
		},
		{
			"university finishes final step",
			Context{CurrentStatus: models.StatusFacultyApproved, CanUniversity: true},
			models.StatusApproved,
		},
		{
			"office single step",
			Context{CurrentStatus: models.StatusPending, OfficeOwner: true, CanUniversity: true},
			models.StatusApproved,
		},
		{
			"no permission leaves status unchanged",
			Context{CurrentStatus: models.StatusPending},
			models.StatusPending,
		},
		{
			"approved stays approved",
			Context{CurrentStatus: models.StatusApproved, CanUniversity: true},
			models.StatusApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStatus(tt.ctx); got != tt.expected {
				t.Errorf("NextStatus = %q, want %q", got, tt.expected)
			}
		})
	}
}

// A fully staffed chain advances exactly one step per approve, for actors
// holding every permission at once.
func TestFullyStaffedChainAdvancesOneStep(t *testing.T) {
	want := []string{
		models.StatusPending,
		models.StatusDepartmentApproved,
		models.StatusFacultyApproved,
		models.StatusApproved,
	}

	status := models.StatusPending
	for i := 1; i < len(want); i++ {
		ctx := Context{
			CurrentStatus: status,
			CanUniversity: true,
			CanFaculty:    true,
			CanDepartment: true,
		}
		allowed, reason := CanApprove(ctx)
		if !allowed {
			t.Fatalf("step %d refused: %s", i, reason)
		}
		status = NextStatus(ctx)
		if status != want[i] {
			t.Fatalf("step %d advanced to %q, want %q", i, status, want[i])
		}
	}

	// Terminal state refuses further approves.
	allowed, _ := CanApprove(Context{CurrentStatus: status, CanUniversity: true, CanFaculty: true, CanDepartment: true})
	if allowed {
		t.Error("approved item still approvable")
	}
}

// The number of levels skipped never exceeds the number of vacant
// intermediate levels for the owner's scope.
func TestSkipsBoundedByVacancies(t *testing.T) {
	rank := map[string]int{
		models.StatusPending:            0,
		models.StatusDepartmentApproved: 1,
		models.StatusFacultyApproved:    2,
		models.StatusApproved:           3,
	}
	statuses := []string{models.StatusPending, models.StatusDepartmentApproved, models.StatusFacultyApproved}

	for _, s := range statuses {
		for _, missingDept := range []bool{false, true} {
			for _, missingFac := range []bool{false, true} {
				for perm := 0; perm < 8; perm++ {
					ctx := Context{
						CurrentStatus:          s,
						CanUniversity:          perm&1 != 0,
						CanFaculty:             perm&2 != 0,
						CanDepartment:          perm&4 != 0,
						MissingDepartmentAdmin: missingDept,
						MissingFacultyAdmin:    missingFac,
					}
					next := NextStatus(ctx)
					steps := rank[next] - rank[s]
					if steps < 0 {
						t.Fatalf("approve moved backwards from %q to %q", s, next)
					}
					vacancies := 0
					if missingDept && rank[s] < 1 {
						vacancies++
					}
					if missingFac && rank[s] < 2 {
						vacancies++
					}
					if skipped := steps - 1; steps > 0 && skipped > vacancies {
						t.Errorf("ctx %+v skipped %d levels with only %d vacant", ctx, skipped, vacancies)
					}
				}
			}
		}
	}
}

func TestActionLevel(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected string
	}{
		{"department at pending", Context{CurrentStatus: models.StatusPending, CanDepartment: true}, models.LevelDepartment},
		{"faculty on vacant department", Context{CurrentStatus: models.StatusPending, CanFaculty: true, MissingDepartmentAdmin: true}, models.LevelFaculty},
		{"university on vacant chain", Context{CurrentStatus: models.StatusPending, CanUniversity: true, MissingDepartmentAdmin: true, MissingFacultyAdmin: true}, models.LevelUniversity},
		{"faculty at department_approved", Context{CurrentStatus: models.StatusDepartmentApproved, CanFaculty: true}, models.LevelFaculty},
		{"university at final step", Context{CurrentStatus: models.StatusFacultyApproved, CanUniversity: true}, models.LevelUniversity},
		{"office university", Context{CurrentStatus: models.StatusPending, OfficeOwner: true, CanUniversity: true}, models.LevelUniversity},
		{"no access no level", Context{CurrentStatus: models.StatusPending}, ""},
		{"approved no level", Context{CurrentStatus: models.StatusApproved, CanUniversity: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActionLevel(tt.ctx); got != tt.expected {
				t.Errorf("ActionLevel = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCanReturn(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		expected bool
	}{
		{"department scope suffices", Context{CanDepartment: true}, true},
		{"faculty scope suffices", Context{CanFaculty: true}, true},
		{"university scope suffices", Context{CanUniversity: true}, true},
		{"no scope", Context{}, false},
		{"office needs university", Context{OfficeOwner: true, CanFaculty: true, CanDepartment: true}, false},
		{"office with university", Context{OfficeOwner: true, CanUniversity: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReturn(tt.ctx); got != tt.expected {
				t.Errorf("CanReturn = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanReject(t *testing.T) {
	if !CanReject(Context{CurrentStatus: models.StatusApproved, CanUniversity: true}) {
		t.Error("university admin should reject an approved item")
	}
	if CanReject(Context{CurrentStatus: models.StatusApproved, CanFaculty: true}) {
		t.Error("faculty admin must not reject")
	}
	if CanReject(Context{CurrentStatus: models.StatusFacultyApproved, CanUniversity: true}) {
		t.Error("reject is only legal from approved")
	}
}

func TestOwnerTransitions(t *testing.T) {
	if got := SubmitStatus(models.StatusDraft); got != models.StatusPending {
		t.Errorf("submit draft = %q, want pending", got)
	}
	if got := SubmitStatus(models.StatusReturned); got != models.StatusPending {
		t.Errorf("submit returned = %q, want pending", got)
	}
	if got := SubmitStatus(models.StatusApproved); got != models.StatusApproved {
		t.Errorf("submit approved = %q, want unchanged", got)
	}
	if got := SaveDraftStatus(models.StatusDraft); got != models.StatusDraft {
		t.Errorf("save draft = %q, want draft", got)
	}
	// A returned item stays returned on save so the reason stays visible.
	if got := SaveDraftStatus(models.StatusReturned); got != models.StatusReturned {
		t.Errorf("save returned = %q, want returned", got)
	}
}
