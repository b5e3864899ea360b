// Package hours converts declared research outputs into credited research
// hours. Everything here is a pure function of the item fields: no I/O, no
// shared state, and unrecognized input degrades to zero hours instead of
// failing, so one bad record cannot break an aggregate report.
package hours

import "math"

// Config holds the conversion rates. Values default to the current
// regulation; reports pass DefaultConfig unless an override is loaded.
type Config struct {
	// Table 1, section 1: journal articles.
	JournalWosScopusQ1Q2 float64
	JournalWosScopusQ3Q4 float64
	JournalVNUSpecial    float64
	JournalREV           float64
	JournalIntlReputable float64
	JournalDomesticGte1  float64
	JournalDomesticGte05 float64
	JournalDomesticLt05  float64

	// Section 2: conference papers.
	ConferenceWosScopus float64
	ConferenceIntl      float64
	ConferenceNational  float64

	// Section 3: books and textbooks.
	MonographIntl       float64
	MonographDomestic   float64
	TextbookIntl        float64
	TextbookDomestic    float64
	BookChapterReputed  float64
	BookChapterIntl     float64

	// Section 4: intellectual property, awards, exhibitions.
	PatentIntl          float64
	PatentVietnam       float64
	UtilitySolution     float64
	AwardIntl           float64
	AwardNational       float64
	ExhibitionIntl      float64
	ExhibitionNational  float64
	ExhibitionProvince  float64

	RepublishedRatio  float64
	PatentStage1Ratio float64
	PatentStage2Ratio float64

	// Table 2, sections 1-2: projects.
	ProjectNationalTotal     float64
	ProjectNationalLeader    float64
	ProjectNationalSecretary float64
	ProjectNationalMembers   float64 // pool for all other members
	ProjectVNUTotal          float64
	ProjectVNULeader         float64
	ProjectVNUSecretary      float64
	ProjectVNUMembers        float64
	ProjectUniversityTotal   float64
	ProjectUniversityLeader  float64

	CooperationBase           float64
	CooperationMultiplier     float64
	CooperationLeaderRatio    float64
	CooperationSecretaryRatio float64
	CooperationMemberRatio    float64

	// Table 2, section 3: other activities.
	ActivityYearCap          float64
	StudentResearchUni       float64
	StudentResearchFaculty   float64
	TeamTraining             float64
	ExhibitionProduct        float64
}

// DefaultConfig carries the rates of decision 2706/QD-DHCN (21/11/2024).
var DefaultConfig = Config{
	JournalWosScopusQ1Q2: 1800,
	JournalWosScopusQ3Q4: 1400,
	JournalVNUSpecial:    900,
	JournalREV:           900,
	JournalIntlReputable: 900,
	JournalDomesticGte1:  800,
	JournalDomesticGte05: 600,
	JournalDomesticLt05:  300,

	ConferenceWosScopus: 900,
	ConferenceIntl:      600,
	ConferenceNational:  500,

	MonographIntl:      2700,
	MonographDomestic:  1500,
	TextbookIntl:       1800,
	TextbookDomestic:   900,
	BookChapterReputed: 1200,
	BookChapterIntl:    900,

	PatentIntl:         3000,
	PatentVietnam:      1800,
	UtilitySolution:    1200,
	AwardIntl:          1800,
	AwardNational:      1200,
	ExhibitionIntl:     900,
	ExhibitionNational: 600,
	ExhibitionProvince: 400,

	RepublishedRatio:  1.0 / 3.0,
	PatentStage1Ratio: 1.0 / 3.0,
	PatentStage2Ratio: 2.0 / 3.0,

	ProjectNationalTotal:     1000,
	ProjectNationalLeader:    500,
	ProjectNationalSecretary: 250,
	ProjectNationalMembers:   250,
	ProjectVNUTotal:          800,
	ProjectVNULeader:         400,
	ProjectVNUSecretary:      200,
	ProjectVNUMembers:        200,
	ProjectUniversityTotal:   300,
	ProjectUniversityLeader:  300,

	CooperationBase:           100,
	CooperationMultiplier:     1000,
	CooperationLeaderRatio:    0.50,
	CooperationSecretaryRatio: 0.25,
	CooperationMemberRatio:    0.25,

	ActivityYearCap:        250,
	StudentResearchUni:     75,
	StudentResearchFaculty: 30,
	TeamTraining:           75,
	ExhibitionProduct:      45,
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
