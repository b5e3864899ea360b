package hours

import "github.com/research-hours/backend/internal/models"

// ActivityYearTotal is the yearly roll-up for other science activities. The
// cap applies to the whole year, not per activity; both the raw and capped
// figures are kept so callers can warn the owner.
type ActivityYearTotal struct {
	Year        int                          `json:"year"`
	RawHours    float64                      `json:"total_raw_hours"`
	CappedHours float64                      `json:"capped_hours"`
	IsCapped    bool                         `json:"is_capped"`
	ByType      map[string]ActivityTypeStats `json:"by_type"`
	Count       int                          `json:"activity_count"`
}

// ActivityTypeStats groups per-type counts inside a yearly roll-up.
type ActivityTypeStats struct {
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
}

// ForActivity returns rate × quantity for one activity. Unknown types yield
// zero.
func ForActivity(a *models.Activity, cfg Config) float64 {
	var rate float64
	switch a.Type {
	case models.ActivityStudentResearchUniversity:
		rate = cfg.StudentResearchUni
	case models.ActivityStudentResearchFaculty:
		rate = cfg.StudentResearchFaculty
	case models.ActivityTeamTraining:
		rate = cfg.TeamTraining
	case models.ActivityExhibitionProduct:
		rate = cfg.ExhibitionProduct
	}
	qty := a.Quantity
	if qty <= 0 {
		qty = 1
	}
	return round2(rate * float64(qty))
}

// ActivitiesForYear sums a year's activities and applies the annual ceiling.
func ActivitiesForYear(activities []models.Activity, year int, cfg Config) ActivityYearTotal {
	out := ActivityYearTotal{Year: year, ByType: map[string]ActivityTypeStats{}}

	for i := range activities {
		a := &activities[i]
		if a.Year != year {
			continue
		}
		h := ForActivity(a, cfg)
		out.RawHours += h
		out.Count++

		qty := a.Quantity
		if qty <= 0 {
			qty = 1
		}
		st := out.ByType[a.Type]
		st.Count += qty
		st.Hours += h
		out.ByType[a.Type] = st
	}

	out.RawHours = round2(out.RawHours)
	out.CappedHours = out.RawHours
	if out.RawHours > cfg.ActivityYearCap {
		out.CappedHours = cfg.ActivityYearCap
		out.IsCapped = true
	}
	return out
}
