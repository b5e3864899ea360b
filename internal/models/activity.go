package models

// Science-service activity types, Table 2 section 3. All of them together are
// capped at a yearly ceiling.
const (
	ActivityStudentResearchUniversity = "student_research_university" // per group
	ActivityStudentResearchFaculty    = "student_research_faculty"    // per group
	ActivityTeamTraining              = "team_training"               // per team
	ActivityExhibitionProduct         = "exhibition_product"          // per product
)

// Activity is a unit-rated science-service contribution.
type Activity struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Year        int     `json:"year"`
	Type        string  `json:"activity_type"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Venue       *string `json:"venue,omitempty"`

	Approval
}
