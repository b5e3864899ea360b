package hours

import (
	"sort"

	"github.com/research-hours/backend/internal/models"
)

// PublicationSummary is the yearly publication roll-up.
type PublicationSummary struct {
	Year             int                          `json:"year,omitempty"`
	TotalCount       int                          `json:"total_publications"`
	TotalBaseHours   float64                      `json:"total_base_hours"`
	TotalAuthorHours float64                      `json:"total_author_hours"`
	ByType           map[string]ActivityTypeStats `json:"by_type"`
	ByQuartile       map[string]int               `json:"by_quartile"`
	WosScopusCount   int                          `json:"wos_scopus_count"`
}

// TotalSummary aggregates all three item kinds for one user.
type TotalSummary struct {
	Year             int     `json:"year,omitempty"`
	PublicationHours float64 `json:"publication_hours"`
	PublicationCount int     `json:"publication_count"`
	ProjectHours     float64 `json:"project_hours"`
	ProjectCount     int     `json:"project_count"`
	ActivityHours    float64 `json:"other_activity_hours"`
	TotalHours       float64 `json:"total_hours"`
}

// SummarizePublications rolls up publications, optionally for one year
// (year 0 means all years).
func SummarizePublications(pubs []models.Publication, year int, cfg Config) PublicationSummary {
	s := PublicationSummary{
		Year:       year,
		ByType:     map[string]ActivityTypeStats{},
		ByQuartile: map[string]int{"Q1": 0, "Q2": 0, "Q3": 0, "Q4": 0},
	}

	for i := range pubs {
		p := &pubs[i]
		if year != 0 && p.Year != year {
			continue
		}
		h := ForPublication(p, cfg)
		s.TotalCount++
		s.TotalBaseHours += h.BaseHours
		s.TotalAuthorHours += h.AuthorHours

		st := s.ByType[p.Type]
		st.Count++
		st.Hours += h.AuthorHours
		s.ByType[p.Type] = st

		if q := quartile(p); q != "" {
			if _, ok := s.ByQuartile[q]; ok {
				s.ByQuartile[q]++
				s.WosScopusCount++
			}
		}
	}

	s.TotalBaseHours = round2(s.TotalBaseHours)
	s.TotalAuthorHours = round2(s.TotalAuthorHours)
	return s
}

// Summarize computes the combined research-hours total for one user, either
// for a single year (amortized project credit, capped activities) or across
// all years (full project totals, each year's activities capped separately).
func Summarize(pubs []models.Publication, projects []models.Project, activities []models.Activity, year int, cfg Config) TotalSummary {
	pubSummary := SummarizePublications(pubs, year, cfg)

	var projectHours float64
	projectCount := 0
	for i := range projects {
		p := &projects[i]
		if year != 0 {
			if !p.CoversYear(year) {
				continue
			}
			projectHours += ProjectPerYear(p, cfg)
		} else {
			projectHours += ForProject(p, cfg).UserHours
		}
		projectCount++
	}

	var activityHours float64
	if year != 0 {
		activityHours = ActivitiesForYear(activities, year, cfg).CappedHours
	} else {
		// Cap each year on its own; the cap is annual and never applies
		// across years.
		seen := map[int]bool{}
		for _, a := range activities {
			seen[a.Year] = true
		}
		years := make([]int, 0, len(seen))
		for y := range seen {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			activityHours += ActivitiesForYear(activities, y, cfg).CappedHours
		}
	}

	return TotalSummary{
		Year:             year,
		PublicationHours: pubSummary.TotalAuthorHours,
		PublicationCount: pubSummary.TotalCount,
		ProjectHours:     round2(projectHours),
		ProjectCount:     projectCount,
		ActivityHours:    round2(activityHours),
		TotalHours:       round2(pubSummary.TotalAuthorHours + projectHours + activityHours),
	}
}
