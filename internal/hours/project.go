package hours

import "github.com/research-hours/backend/internal/models"

// ProjectHours is the full share breakdown for one project. The member pool
// is the total for all other members together; each of them receives
// MemberEach, the pool divided by the number of slots left after the leader
// and secretary.
type ProjectHours struct {
	TotalHours     float64 `json:"total_hours"`
	UserHours      float64 `json:"user_hours"`
	LeaderHours    float64 `json:"leader_hours"`
	SecretaryHours float64 `json:"secretary_hours"`
	MemberPool     float64 `json:"member_pool_hours"`
	MemberEach     float64 `json:"member_each_hours"`
	OtherMembers   int     `json:"other_members_count"`
}

// ForProject computes the share breakdown for a project. Extended projects
// credit nothing.
func ForProject(p *models.Project, cfg Config) ProjectHours {
	if p.Status == models.ProjectExtended {
		return ProjectHours{}
	}

	var total, leader, secretary, pool float64

	switch p.Level {
	case models.ProjectNational:
		total = cfg.ProjectNationalTotal
		leader = cfg.ProjectNationalLeader
		secretary = cfg.ProjectNationalSecretary
		pool = cfg.ProjectNationalMembers
	case models.ProjectVNUMinistry:
		total = cfg.ProjectVNUTotal
		leader = cfg.ProjectVNULeader
		secretary = cfg.ProjectVNUSecretary
		pool = cfg.ProjectVNUMembers
	case models.ProjectUniversity:
		// University tier has a leader share only.
		total = cfg.ProjectUniversityTotal
		leader = cfg.ProjectUniversityLeader
	case models.ProjectCooperation:
		years := 1
		if p.DurationYears != nil && *p.DurationYears > 0 {
			years = *p.DurationYears
		}
		funding := 0.0
		if p.FundingAmount != nil {
			funding = *p.FundingAmount
		}
		total = cfg.CooperationBase + cfg.CooperationMultiplier*funding/float64(years)
		leader = total * cfg.CooperationLeaderRatio
		secretary = total * cfg.CooperationSecretaryRatio
		pool = total * cfg.CooperationMemberRatio
	}

	otherMembers := 0
	if p.Level != models.ProjectUniversity {
		otherMembers = p.TotalMembers - 2
		if otherMembers < 0 {
			otherMembers = 0
		}
	}

	each := 0.0
	if otherMembers > 0 && pool > 0 {
		each = pool / float64(otherMembers)
	}

	var user float64
	switch p.Role {
	case models.ProjectRoleLeader:
		user = leader
	case models.ProjectRoleSecretary:
		user = secretary
	default:
		user = each
	}

	return ProjectHours{
		TotalHours:     round2(total),
		UserHours:      round2(user),
		LeaderHours:    round2(leader),
		SecretaryHours: round2(secretary),
		MemberPool:     round2(pool),
		MemberEach:     round2(each),
		OtherMembers:   otherMembers,
	}
}

// ProjectPerYear returns the credit for a single reporting year. Graded tiers
// spread their total evenly over the project span; the cooperation formula
// already divides by duration, so its result is per-year as is.
func ProjectPerYear(p *models.Project, cfg Config) float64 {
	user := ForProject(p, cfg).UserHours
	if user == 0 {
		return 0
	}
	if p.Level == models.ProjectCooperation {
		return round2(user)
	}
	return round2(user / float64(p.SpanYears()))
}
