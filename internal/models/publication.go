package models

import "time"

// Publication types, Table 1 of the regulation.
const (
	PubJournalWosScopus    = "journal_wos_scopus"
	PubJournalVNUSpecial   = "journal_vnu_special"
	PubJournalREV          = "journal_rev"
	PubJournalIntlReputed  = "journal_international_reputable"
	PubJournalDomestic     = "journal_domestic"
	PubConferenceWosScopus = "conference_wos_scopus"
	PubConferenceIntl      = "conference_international"
	PubConferenceNational  = "conference_national"
	PubMonographIntl       = "monograph_international"
	PubMonographDomestic   = "monograph_domestic"
	PubTextbookIntl        = "textbook_international"
	PubTextbookDomestic    = "textbook_domestic"
	PubBookChapterReputed  = "book_chapter_reputable"
	PubBookChapterIntl     = "book_chapter_international"
	PubPatentIntl          = "patent_international"
	PubPatentVietnam       = "patent_vietnam"
	PubUtilitySolution     = "utility_solution"
	PubAwardIntl           = "award_international"
	PubAwardNational       = "award_national"
	PubExhibitionIntl      = "exhibition_international"
	PubExhibitionNational  = "exhibition_national"
	PubExhibitionProvince  = "exhibition_provincial"
)

// Author roles. The bonus third of base hours goes to the lead authors.
const (
	AuthorFirst              = "first"
	AuthorCorresponding      = "corresponding"
	AuthorFirstCorresponding = "first_corresponding"
	AuthorMiddle             = "middle"
)

// Patent stages. Each stage is declared as its own record; together the two
// stages add up to the full grant.
const (
	PatentStage1 = "stage_1" // application accepted
	PatentStage2 = "stage_2" // patent granted
)

// Publication is one declared research output subject to the approval chain.
type Publication struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Year   int    `json:"year"`
	Title  string `json:"title"`
	Type   string `json:"type"`

	// Classification detail. Which fields apply depends on Type.
	Quartile       *string  `json:"quartile,omitempty"` // Q1..Q4, WoS/Scopus only
	DomesticPoints *float64 `json:"domestic_points,omitempty"`
	PatentStage    *string  `json:"patent_stage,omitempty"`
	Republished    bool     `json:"is_republished"`

	// Authorship.
	TotalAuthors    int      `json:"total_authors"`
	AuthorRole      string   `json:"author_role"`
	ContributionPct *float64 `json:"contribution_percentage,omitempty"`

	Journal *string `json:"journal,omitempty"`
	DOI     *string `json:"doi,omitempty"`

	Approval
}

// Approval carries the shared state-machine columns embedded in every
// trackable item (publications, projects, activities).
type Approval struct {
	ApprovalStatus string `json:"approval_status"`
	// IsApproved mirrors ApprovalStatus == "approved". The column is generated
	// in the database, so the two can never drift apart on any write path.
	IsApproved      bool       `json:"is_approved"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReturnedBy      *int64     `json:"returned_by,omitempty"`
	ReturnedLevel   *string    `json:"returned_level,omitempty"`
	ReturnedAt      *time.Time `json:"returned_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
