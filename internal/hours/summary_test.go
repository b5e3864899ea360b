package hours

import (
	"testing"

	"github.com/research-hours/backend/internal/models"
)

func TestSummarizePublications(t *testing.T) {
	pubs := []models.Publication{
		{Year: 2024, Type: models.PubJournalWosScopus, Quartile: strp("Q1"), AuthorRole: models.AuthorFirst, TotalAuthors: 4},    // 600
		{Year: 2024, Type: models.PubConferenceNational, AuthorRole: models.AuthorMiddle, TotalAuthors: 2},                       // 166.67
		{Year: 2023, Type: models.PubJournalWosScopus, Quartile: strp("Q3"), AuthorRole: models.AuthorFirst, TotalAuthors: 1},    // other year
	}

	s := SummarizePublications(pubs, 2024, DefaultConfig)
	if s.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", s.TotalCount)
	}
	if s.TotalBaseHours != 2300 {
		t.Errorf("TotalBaseHours = %v, want 2300", s.TotalBaseHours)
	}
	if s.TotalAuthorHours != 766.67 {
		t.Errorf("TotalAuthorHours = %v, want 766.67", s.TotalAuthorHours)
	}
	if s.ByQuartile["Q1"] != 1 || s.WosScopusCount != 1 {
		t.Errorf("quartile counts = %+v wos=%d, want Q1=1 wos=1", s.ByQuartile, s.WosScopusCount)
	}

	all := SummarizePublications(pubs, 0, DefaultConfig)
	if all.TotalCount != 3 {
		t.Errorf("all-years TotalCount = %d, want 3", all.TotalCount)
	}
}

func TestSummarizeSingleYear(t *testing.T) {
	pubs := []models.Publication{
		{Year: 2024, Type: models.PubJournalWosScopus, Quartile: strp("Q1"), AuthorRole: models.AuthorFirst, TotalAuthors: 4}, // 600
	}
	projects := []models.Project{
		// 300 total over two years → 150 for 2024.
		{Level: models.ProjectUniversity, Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 5, StartYear: 2024, EndYear: 2025},
		// Not active in 2024.
		{Level: models.ProjectNational, Role: models.ProjectRoleLeader, Status: models.ProjectCompleted, TotalMembers: 5, StartYear: 2021, EndYear: 2022},
	}
	activities := []models.Activity{
		{Year: 2024, Type: models.ActivityTeamTraining, Quantity: 4}, // 300 raw, capped 250
	}

	got := Summarize(pubs, projects, activities, 2024, DefaultConfig)
	if got.PublicationHours != 600 {
		t.Errorf("PublicationHours = %v, want 600", got.PublicationHours)
	}
	if got.ProjectHours != 150 {
		t.Errorf("ProjectHours = %v, want 150", got.ProjectHours)
	}
	if got.ProjectCount != 1 {
		t.Errorf("ProjectCount = %d, want 1", got.ProjectCount)
	}
	if got.ActivityHours != 250 {
		t.Errorf("ActivityHours = %v, want 250", got.ActivityHours)
	}
	if got.TotalHours != 1000 {
		t.Errorf("TotalHours = %v, want 1000", got.TotalHours)
	}
}

func TestSummarizeAllYearsCapsPerYear(t *testing.T) {
	// 2023 raw 300 → 250; 2024 raw 150 → 150. The cap never applies to the
	// grand total across years.
	activities := []models.Activity{
		{Year: 2023, Type: models.ActivityTeamTraining, Quantity: 4},
		{Year: 2024, Type: models.ActivityTeamTraining, Quantity: 2},
	}

	got := Summarize(nil, nil, activities, 0, DefaultConfig)
	if got.ActivityHours != 400 {
		t.Errorf("ActivityHours = %v, want 400", got.ActivityHours)
	}
	if got.TotalHours != 400 {
		t.Errorf("TotalHours = %v, want 400", got.TotalHours)
	}
}

func TestSummarizeAllYearsFullProjectTotals(t *testing.T) {
	projects := []models.Project{
		{Level: models.ProjectNational, Role: models.ProjectRoleLeader, Status: models.ProjectCompleted, TotalMembers: 5, StartYear: 2023, EndYear: 2025},
	}

	got := Summarize(nil, projects, nil, 0, DefaultConfig)
	if got.ProjectHours != 500 {
		t.Errorf("all-years ProjectHours = %v, want 500 (not amortized)", got.ProjectHours)
	}
}
