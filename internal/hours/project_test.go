package hours

import (
	"testing"

	"github.com/research-hours/backend/internal/models"
)

func intp(v int) *int { return &v }

func TestForProject(t *testing.T) {
	tests := []struct {
		name    string
		project models.Project
		total   float64
		user    float64
	}{
		{
			"national leader",
			models.Project{Level: models.ProjectNational, Role: models.ProjectRoleLeader, Status: models.ProjectCompleted, TotalMembers: 5},
			1000, 500,
		},
		{
			"national secretary",
			models.Project{Level: models.ProjectNational, Role: models.ProjectRoleSecretary, Status: models.ProjectCompleted, TotalMembers: 5},
			1000, 250,
		},
		{
			// Pool of 250 split across the 3 members beyond leader+secretary.
			"national member of five",
			models.Project{Level: models.ProjectNational, Role: models.ProjectRoleMember, Status: models.ProjectOngoing, TotalMembers: 5},
			1000, 83.33,
		},
		{
			"national member with no other slots",
			models.Project{Level: models.ProjectNational, Role: models.ProjectRoleMember, Status: models.ProjectOngoing, TotalMembers: 2},
			1000, 0,
		},
		{
			"vnu ministry leader",
			models.Project{Level: models.ProjectVNUMinistry, Role: models.ProjectRoleLeader, Status: models.ProjectCompleted, TotalMembers: 4},
			800, 400,
		},
		{
			"vnu ministry member of four",
			models.Project{Level: models.ProjectVNUMinistry, Role: models.ProjectRoleMember, Status: models.ProjectCompleted, TotalMembers: 4},
			800, 100,
		},
		{
			"university leader takes full total",
			models.Project{Level: models.ProjectUniversity, Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 5},
			300, 300,
		},
		{
			"university secretary gets nothing",
			models.Project{Level: models.ProjectUniversity, Role: models.ProjectRoleSecretary, Status: models.ProjectOngoing, TotalMembers: 5},
			300, 0,
		},
		{
			"university member gets nothing",
			models.Project{Level: models.ProjectUniversity, Role: models.ProjectRoleMember, Status: models.ProjectOngoing, TotalMembers: 5},
			300, 0,
		},
		{
			// 100 + 1000*2/2 = 1100 total, leader half.
			"cooperation leader",
			models.Project{Level: models.ProjectCooperation, Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 4, FundingAmount: f64p(2), DurationYears: intp(2)},
			1100, 550,
		},
		{
			"cooperation secretary quarter",
			models.Project{Level: models.ProjectCooperation, Role: models.ProjectRoleSecretary, Status: models.ProjectOngoing, TotalMembers: 4, FundingAmount: f64p(2), DurationYears: intp(2)},
			1100, 275,
		},
		{
			"cooperation member pool split",
			models.Project{Level: models.ProjectCooperation, Role: models.ProjectRoleMember, Status: models.ProjectOngoing, TotalMembers: 4, FundingAmount: f64p(2), DurationYears: intp(2)},
			1100, 137.5,
		},
		{
			"cooperation zero duration treated as one year",
			models.Project{Level: models.ProjectCooperation, Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 1, FundingAmount: f64p(1), DurationYears: intp(0)},
			1100, 550,
		},
		{
			"extended credits nothing",
			models.Project{Level: models.ProjectNational, Role: models.ProjectRoleLeader, Status: models.ProjectExtended, TotalMembers: 5},
			0, 0,
		},
		{
			"unknown level credits nothing",
			models.Project{Level: "galactic", Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 3},
			0, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForProject(&tt.project, DefaultConfig)
			if got.TotalHours != tt.total {
				t.Errorf("TotalHours = %v, want %v", got.TotalHours, tt.total)
			}
			if got.UserHours != tt.user {
				t.Errorf("UserHours = %v, want %v", got.UserHours, tt.user)
			}
		})
	}
}

func TestProjectPerYear(t *testing.T) {
	tests := []struct {
		name     string
		project  models.Project
		expected float64
	}{
		{
			// 300 total over 2024-2025 → 150 per year.
			"university leader two years",
			models.Project{Level: models.ProjectUniversity, Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 5, StartYear: 2024, EndYear: 2025},
			150,
		},
		{
			"national leader three years",
			models.Project{Level: models.ProjectNational, Role: models.ProjectRoleLeader, Status: models.ProjectCompleted, TotalMembers: 5, StartYear: 2023, EndYear: 2025},
			166.67,
		},
		{
			// Cooperation formula already divides by duration.
			"cooperation not divided twice",
			models.Project{Level: models.ProjectCooperation, Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 4, FundingAmount: f64p(2), DurationYears: intp(2), StartYear: 2024, EndYear: 2025},
			550,
		},
		{
			"inverted span treated as one year",
			models.Project{Level: models.ProjectUniversity, Role: models.ProjectRoleLeader, Status: models.ProjectOngoing, TotalMembers: 1, StartYear: 2025, EndYear: 2024},
			300,
		},
		{
			"extended credits nothing per year",
			models.Project{Level: models.ProjectNational, Role: models.ProjectRoleLeader, Status: models.ProjectExtended, TotalMembers: 5, StartYear: 2024, EndYear: 2025},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectPerYear(&tt.project, DefaultConfig)
			if got != tt.expected {
				t.Errorf("ProjectPerYear = %v, want %v", got, tt.expected)
			}
		})
	}
}
