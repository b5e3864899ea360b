package hours

import (
	"strings"

	"github.com/research-hours/backend/internal/models"
)

// PublicationHours is the credit breakdown for one publication.
type PublicationHours struct {
	BaseHours   float64 `json:"base_hours"`
	AuthorHours float64 `json:"author_hours"`
}

// BaseHours returns the table credit for a publication before the author
// split. Unknown types yield zero.
func BaseHours(pub *models.Publication, cfg Config) float64 {
	var h float64

	switch pub.Type {
	case models.PubJournalWosScopus:
		if q := quartile(pub); q == "Q1" || q == "Q2" {
			h = cfg.JournalWosScopusQ1Q2
		} else {
			h = cfg.JournalWosScopusQ3Q4
		}
	case models.PubJournalVNUSpecial:
		h = cfg.JournalVNUSpecial
	case models.PubJournalREV:
		h = cfg.JournalREV
	case models.PubJournalIntlReputed:
		h = cfg.JournalIntlReputable
	case models.PubJournalDomestic:
		points := 0.0
		if pub.DomesticPoints != nil {
			points = *pub.DomesticPoints
		}
		switch {
		case points >= 1.0:
			h = cfg.JournalDomesticGte1
		case points >= 0.5:
			h = cfg.JournalDomesticGte05
		default:
			h = cfg.JournalDomesticLt05
		}
	case models.PubConferenceWosScopus:
		h = cfg.ConferenceWosScopus
	case models.PubConferenceIntl:
		h = cfg.ConferenceIntl
	case models.PubConferenceNational:
		h = cfg.ConferenceNational
	case models.PubMonographIntl:
		h = cfg.MonographIntl
	case models.PubMonographDomestic:
		h = cfg.MonographDomestic
	case models.PubTextbookIntl:
		h = cfg.TextbookIntl
	case models.PubTextbookDomestic:
		h = cfg.TextbookDomestic
	case models.PubBookChapterReputed:
		h = cfg.BookChapterReputed
	case models.PubBookChapterIntl:
		h = cfg.BookChapterIntl
	case models.PubPatentIntl:
		h = cfg.PatentIntl
	case models.PubPatentVietnam:
		h = cfg.PatentVietnam
	case models.PubUtilitySolution:
		h = cfg.UtilitySolution
	case models.PubAwardIntl:
		h = cfg.AwardIntl
	case models.PubAwardNational:
		h = cfg.AwardNational
	case models.PubExhibitionIntl:
		h = cfg.ExhibitionIntl
	case models.PubExhibitionNational:
		h = cfg.ExhibitionNational
	case models.PubExhibitionProvince:
		h = cfg.ExhibitionProvince
	}

	if pub.Republished && isBook(pub.Type) {
		h *= cfg.RepublishedRatio
	}

	// Patents accrue per declared stage; without a valid stage nothing is
	// credited yet.
	if isPatent(pub.Type) {
		stage := ""
		if pub.PatentStage != nil {
			stage = *pub.PatentStage
		}
		switch stage {
		case models.PatentStage1:
			h *= cfg.PatentStage1Ratio
		case models.PatentStage2:
			h *= cfg.PatentStage2Ratio
		default:
			h = 0
		}
	}

	return h
}

// AuthorHours splits base hours among authors: two thirds divided evenly,
// one third reserved as bonus for the lead authors (1/6 for first or
// corresponding alone, 1/3 for the combined role). A positive contribution
// percentage overrides the split entirely.
func AuthorHours(base float64, role string, totalAuthors int, contributionPct *float64) float64 {
	if base <= 0 {
		return 0
	}
	if contributionPct != nil && *contributionPct > 0 {
		return base * (*contributionPct / 100)
	}
	if totalAuthors <= 0 {
		totalAuthors = 1
	}

	share := base * (2.0 / 3.0) / float64(totalAuthors)

	switch strings.ToLower(role) {
	case models.AuthorFirstCorresponding:
		share += base * (1.0 / 3.0)
	case models.AuthorFirst, models.AuthorCorresponding:
		share += base * (1.0 / 6.0)
	}
	return share
}

// ForPublication computes the full credit for one publication.
func ForPublication(pub *models.Publication, cfg Config) PublicationHours {
	base := BaseHours(pub, cfg)
	return PublicationHours{
		BaseHours:   round2(base),
		AuthorHours: round2(AuthorHours(base, pub.AuthorRole, pub.TotalAuthors, pub.ContributionPct)),
	}
}

func quartile(pub *models.Publication) string {
	if pub.Quartile == nil {
		return ""
	}
	return strings.ToUpper(*pub.Quartile)
}

func isBook(t string) bool {
	switch t {
	case models.PubMonographIntl, models.PubMonographDomestic,
		models.PubTextbookIntl, models.PubTextbookDomestic,
		models.PubBookChapterReputed, models.PubBookChapterIntl:
		return true
	}
	return false
}

func isPatent(t string) bool {
	switch t {
	case models.PubPatentIntl, models.PubPatentVietnam, models.PubUtilitySolution:
		return true
	}
	return false
}
