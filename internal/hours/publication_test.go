package hours

import (
	"testing"

	"github.com/research-hours/backend/internal/models"
)

func strp(s string) *string   { return &s }
func f64p(v float64) *float64 { return &v }

func TestBaseHours(t *testing.T) {
	tests := []struct {
		name     string
		pub      models.Publication
		expected float64
	}{
		{"wos q1", models.Publication{Type: models.PubJournalWosScopus, Quartile: strp("Q1")}, 1800},
		{"wos q2 lowercase", models.Publication{Type: models.PubJournalWosScopus, Quartile: strp("q2")}, 1800},
		{"wos q3", models.Publication{Type: models.PubJournalWosScopus, Quartile: strp("Q3")}, 1400},
		{"wos no quartile falls to lower tier", models.Publication{Type: models.PubJournalWosScopus}, 1400},
		{"vnu special", models.Publication{Type: models.PubJournalVNUSpecial}, 900},
		{"rev", models.Publication{Type: models.PubJournalREV}, 900},
		{"intl reputable", models.Publication{Type: models.PubJournalIntlReputed}, 900},
		{"domestic 1 point", models.Publication{Type: models.PubJournalDomestic, DomesticPoints: f64p(1.0)}, 800},
		{"domestic 0.75 point", models.Publication{Type: models.PubJournalDomestic, DomesticPoints: f64p(0.75)}, 600},
		{"domestic 0.25 point", models.Publication{Type: models.PubJournalDomestic, DomesticPoints: f64p(0.25)}, 300},
		{"domestic no points", models.Publication{Type: models.PubJournalDomestic}, 300},
		{"conference wos", models.Publication{Type: models.PubConferenceWosScopus}, 900},
		{"conference intl", models.Publication{Type: models.PubConferenceIntl}, 600},
		{"conference national", models.Publication{Type: models.PubConferenceNational}, 500},
		{"monograph intl", models.Publication{Type: models.PubMonographIntl}, 2700},
		{"monograph domestic", models.Publication{Type: models.PubMonographDomestic}, 1500},
		{"textbook intl", models.Publication{Type: models.PubTextbookIntl}, 1800},
		{"textbook domestic", models.Publication{Type: models.PubTextbookDomestic}, 900},
		{"chapter reputable", models.Publication{Type: models.PubBookChapterReputed}, 1200},
		{"chapter intl", models.Publication{Type: models.PubBookChapterIntl}, 900},
		{"republished monograph third", models.Publication{Type: models.PubMonographIntl, Republished: true}, 900},
		{"republished chapter third", models.Publication{Type: models.PubBookChapterReputed, Republished: true}, 400},
		{"republished flag ignored for journals", models.Publication{Type: models.PubJournalREV, Republished: true}, 900},
		{"patent intl stage 1", models.Publication{Type: models.PubPatentIntl, PatentStage: strp(models.PatentStage1)}, 1000},
		{"patent intl stage 2", models.Publication{Type: models.PubPatentIntl, PatentStage: strp(models.PatentStage2)}, 2000},
		{"patent vietnam stage 2", models.Publication{Type: models.PubPatentVietnam, PatentStage: strp(models.PatentStage2)}, 1200},
		{"utility solution stage 1", models.Publication{Type: models.PubUtilitySolution, PatentStage: strp(models.PatentStage1)}, 400},
		{"patent without stage yields zero", models.Publication{Type: models.PubPatentIntl}, 0},
		{"patent bogus stage yields zero", models.Publication{Type: models.PubPatentVietnam, PatentStage: strp("granted")}, 0},
		{"award intl", models.Publication{Type: models.PubAwardIntl}, 1800},
		{"award national", models.Publication{Type: models.PubAwardNational}, 1200},
		{"exhibition intl", models.Publication{Type: models.PubExhibitionIntl}, 900},
		{"exhibition national", models.Publication{Type: models.PubExhibitionNational}, 600},
		{"exhibition provincial", models.Publication{Type: models.PubExhibitionProvince}, 400},
		{"unknown type yields zero", models.Publication{Type: "mixtape"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BaseHours(&tt.pub, DefaultConfig)
			if got != tt.expected {
				t.Errorf("BaseHours(%s) = %v, want %v", tt.pub.Type, got, tt.expected)
			}
		})
	}
}

func TestAuthorHours(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		role     string
		authors  int
		pct      *float64
		expected float64
	}{
		// 1800 base, 4 authors: 2/3 share 300 + bonuses.
		{"first of four", 1800, models.AuthorFirst, 4, nil, 600},
		{"corresponding of four", 1800, models.AuthorCorresponding, 4, nil, 600},
		{"first_corresponding of four", 1800, models.AuthorFirstCorresponding, 4, nil, 900},
		{"middle of four", 1800, models.AuthorMiddle, 4, nil, 300},
		{"sole author first_corresponding gets all", 900, models.AuthorFirstCorresponding, 1, nil, 900},
		{"zero authors treated as one", 900, models.AuthorMiddle, 0, nil, 600},
		{"unknown role counts as middle", 1800, "ghostwriter", 4, nil, 300},
		{"contribution override", 1800, models.AuthorMiddle, 4, f64p(25), 450},
		{"zero contribution ignored", 1800, models.AuthorMiddle, 4, f64p(0), 300},
		{"zero base yields zero", 0, models.AuthorFirst, 1, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AuthorHours(tt.base, tt.role, tt.authors, tt.pct)
			if got != tt.expected {
				t.Errorf("AuthorHours = %v, want %v", got, tt.expected)
			}
		})
	}
}

// The bonus fractions order the roles: combined > single lead roles > middle.
func TestAuthorHoursRoleOrdering(t *testing.T) {
	base, authors := 1400.0, 3
	fc := AuthorHours(base, models.AuthorFirstCorresponding, authors, nil)
	first := AuthorHours(base, models.AuthorFirst, authors, nil)
	corr := AuthorHours(base, models.AuthorCorresponding, authors, nil)
	middle := AuthorHours(base, models.AuthorMiddle, authors, nil)

	if !(fc > first && first == corr && corr > middle) {
		t.Errorf("role ordering broken: fc=%v first=%v corr=%v middle=%v", fc, first, corr, middle)
	}
}

func TestForPublicationRounds(t *testing.T) {
	// 900 base, 7 middle authors: 600/7 = 85.714... rounds to 85.71.
	pub := models.Publication{
		Type:         models.PubJournalREV,
		AuthorRole:   models.AuthorMiddle,
		TotalAuthors: 7,
	}
	got := ForPublication(&pub, DefaultConfig)
	if got.BaseHours != 900 {
		t.Errorf("BaseHours = %v, want 900", got.BaseHours)
	}
	if got.AuthorHours != 85.71 {
		t.Errorf("AuthorHours = %v, want 85.71", got.AuthorHours)
	}
}
