package models

// Project tiers, Table 2 section 1-2 of the regulation.
const (
	ProjectNational    = "national"
	ProjectVNUMinistry = "vnu_ministry"
	ProjectUniversity  = "university"
	ProjectCooperation = "cooperation"
)

// Roles within a project. Leader and secretary take fixed shares; everyone
// else splits the member pool.
const (
	ProjectRoleLeader    = "leader"
	ProjectRoleSecretary = "secretary"
	ProjectRoleMember    = "member"
)

// Project lifecycle statuses. Extended projects credit no hours.
const (
	ProjectOngoing   = "ongoing"
	ProjectCompleted = "completed"
	ProjectExtended  = "extended"
)

// Project is a funded research project declared by a staff member. Graded
// tiers amortize a fixed pool over the project duration; cooperation projects
// derive the pool from funding and are already per-year.
type Project struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
	Level  string `json:"project_level"`
	Role   string `json:"role"`
	Status string `json:"status"`

	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	// Cooperation tier only: contract value in billions VND and the contract
	// duration the formula divides by.
	FundingAmount *float64 `json:"funding_amount,omitempty"`
	DurationYears *int     `json:"duration_years,omitempty"`

	TotalMembers int     `json:"total_members"`
	Code         *string `json:"code,omitempty"`

	Approval
}

// SpanYears returns the inclusive reporting span, never less than one year.
func (p *Project) SpanYears() int {
	n := p.EndYear - p.StartYear + 1
	if n < 1 {
		return 1
	}
	return n
}

// CoversYear reports whether the project credits hours for the given year.
func (p *Project) CoversYear(year int) bool {
	return year >= p.StartYear && year <= p.EndYear
}
