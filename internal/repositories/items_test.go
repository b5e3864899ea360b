package repositories

import (
	"strings"
	"testing"

	"github.com/research-hours/backend/internal/models"
)

// destCountRow records how many scan targets a scan function passes, so the
// column constants and the scan calls cannot drift apart.
type destCountRow struct {
	dests int
}

func (r *destCountRow) Scan(dest ...any) error {
	r.dests = len(dest)
	return nil
}

func colCount(cols string) int {
	return len(strings.Split(cols, ","))
}

func TestScanColumnAlignment(t *testing.T) {
	cases := []struct {
		name string
		cols string
		scan func(row *destCountRow) error
	}{
		{"publications", publicationCols, func(row *destCountRow) error {
			_, err := scanPublication(row)
			return err
		}},
		{"projects", projectCols, func(row *destCountRow) error {
			_, err := scanProject(row)
			return err
		}},
		{"activities", activityCols, func(row *destCountRow) error {
			_, err := scanActivity(row)
			return err
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var row destCountRow
			if err := c.scan(&row); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if want := colCount(c.cols); row.dests != want {
				t.Errorf("scan passes %d targets for %d selected columns", row.dests, want)
			}
		})
	}
}

func TestItemColsCarryApprovalColumns(t *testing.T) {
	for name, cols := range map[string]string{
		"publications": publicationCols,
		"projects":     projectCols,
		"activities":   activityCols,
	} {
		for _, col := range []string{"t.approval_status", "t.is_approved", "t.approved_by", "t.returned_level"} {
			if !strings.Contains(cols, col) {
				t.Errorf("%s column list is missing %s", name, col)
			}
		}
	}
}

func TestExpandStatusFilter(t *testing.T) {
	approved := models.StatusApproved
	pending := models.StatusPending

	t.Run("department widens approved", func(t *testing.T) {
		f := expandStatusFilter(ItemFilter{Status: &approved}, models.LevelDepartment)
		if f.Status != nil {
			t.Errorf("Status = %q, want cleared", *f.Status)
		}
		want := []string{models.StatusDepartmentApproved, models.StatusFacultyApproved, models.StatusApproved}
		if len(f.Statuses) != len(want) {
			t.Fatalf("Statuses = %v, want %v", f.Statuses, want)
		}
		for i, s := range want {
			if f.Statuses[i] != s {
				t.Errorf("Statuses[%d] = %q, want %q", i, f.Statuses[i], s)
			}
		}
	})

	t.Run("faculty widens approved", func(t *testing.T) {
		f := expandStatusFilter(ItemFilter{Status: &approved}, models.LevelFaculty)
		if len(f.Statuses) != 2 || f.Statuses[0] != models.StatusFacultyApproved || f.Statuses[1] != models.StatusApproved {
			t.Errorf("Statuses = %v, want [faculty_approved approved]", f.Statuses)
		}
	})

	t.Run("university keeps approved only", func(t *testing.T) {
		f := expandStatusFilter(ItemFilter{Status: &approved}, models.LevelUniversity)
		if len(f.Statuses) != 1 || f.Statuses[0] != models.StatusApproved {
			t.Errorf("Statuses = %v, want [approved]", f.Statuses)
		}
	})

	t.Run("other statuses pass through", func(t *testing.T) {
		f := expandStatusFilter(ItemFilter{Status: &pending}, models.LevelDepartment)
		if f.Status == nil || *f.Status != models.StatusPending {
			t.Errorf("Status = %v, want pending untouched", f.Status)
		}
		if len(f.Statuses) != 0 {
			t.Errorf("Statuses = %v, want empty", f.Statuses)
		}
	})

	t.Run("unknown level passes through", func(t *testing.T) {
		f := expandStatusFilter(ItemFilter{Status: &approved}, models.LevelNone)
		if f.Status == nil || *f.Status != models.StatusApproved {
			t.Errorf("Status = %v, want approved untouched", f.Status)
		}
	})
}
