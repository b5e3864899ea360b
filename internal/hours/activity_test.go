package hours

import (
	"testing"

	"github.com/research-hours/backend/internal/models"
)

func TestForActivity(t *testing.T) {
	tests := []struct {
		name     string
		activity models.Activity
		expected float64
	}{
		{"student research university", models.Activity{Type: models.ActivityStudentResearchUniversity, Quantity: 1}, 75},
		{"student research faculty two groups", models.Activity{Type: models.ActivityStudentResearchFaculty, Quantity: 2}, 60},
		{"team training", models.Activity{Type: models.ActivityTeamTraining, Quantity: 1}, 75},
		{"exhibition product three items", models.Activity{Type: models.ActivityExhibitionProduct, Quantity: 3}, 135},
		{"zero quantity treated as one", models.Activity{Type: models.ActivityTeamTraining}, 75},
		{"unknown type yields zero", models.Activity{Type: "karaoke", Quantity: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForActivity(&tt.activity, DefaultConfig)
			if got != tt.expected {
				t.Errorf("ForActivity = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestActivitiesForYearCap(t *testing.T) {
	// Four 75-hour activities in one year: raw 300 hits the 250 ceiling.
	activities := []models.Activity{
		{Year: 2024, Type: models.ActivityStudentResearchUniversity, Quantity: 1},
		{Year: 2024, Type: models.ActivityTeamTraining, Quantity: 1},
		{Year: 2024, Type: models.ActivityTeamTraining, Quantity: 1},
		{Year: 2024, Type: models.ActivityStudentResearchUniversity, Quantity: 1},
		{Year: 2023, Type: models.ActivityTeamTraining, Quantity: 1}, // other year, ignored
	}

	got := ActivitiesForYear(activities, 2024, DefaultConfig)
	if got.RawHours != 300 {
		t.Errorf("RawHours = %v, want 300", got.RawHours)
	}
	if got.CappedHours != 250 {
		t.Errorf("CappedHours = %v, want 250", got.CappedHours)
	}
	if !got.IsCapped {
		t.Error("IsCapped = false, want true")
	}
	if got.Count != 4 {
		t.Errorf("Count = %d, want 4", got.Count)
	}
}

func TestActivitiesForYearUnderCap(t *testing.T) {
	activities := []models.Activity{
		{Year: 2024, Type: models.ActivityStudentResearchFaculty, Quantity: 2},
		{Year: 2024, Type: models.ActivityExhibitionProduct, Quantity: 1},
	}

	got := ActivitiesForYear(activities, 2024, DefaultConfig)
	if got.RawHours != 105 {
		t.Errorf("RawHours = %v, want 105", got.RawHours)
	}
	if got.CappedHours != 105 {
		t.Errorf("CappedHours = %v, want 105", got.CappedHours)
	}
	if got.IsCapped {
		t.Error("IsCapped = true, want false")
	}
	if st := got.ByType[models.ActivityStudentResearchFaculty]; st.Count != 2 || st.Hours != 60 {
		t.Errorf("ByType faculty = %+v, want count 2 hours 60", st)
	}
}

func TestActivitiesForYearEmpty(t *testing.T) {
	got := ActivitiesForYear(nil, 2024, DefaultConfig)
	if got.RawHours != 0 || got.CappedHours != 0 || got.IsCapped || got.Count != 0 {
		t.Errorf("empty year roll-up = %+v, want zeroes", got)
	}
}
