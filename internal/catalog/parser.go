package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/models"
)

// Parser pulls journal reference tables published as plain HTML and turns the
// rows into catalog entries for lookup during publication entry.
type Parser struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewParser(timeoutMS, maxRetries int, log *zap.Logger) *Parser {
	return &Parser{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// FetchJournals downloads an indexed-journal list (WoS/Scopus style table)
// and parses it.
func (p *Parser) FetchJournals(ctx context.Context, url, indexName string) ([]models.JournalEntry, error) {
	doc, err := p.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseJournals(doc, indexName), nil
}

// FetchDomestic downloads a council points table for domestic journals and
// parses it.
func (p *Parser) FetchDomestic(ctx context.Context, url, council string) ([]models.DomesticJournal, error) {
	doc, err := p.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseDomestic(doc, council), nil
}

func (p *Parser) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en;q=0.8")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return doc, nil
}

// ParseJournalsFrom reads an HTML document from r and extracts journal rows.
func ParseJournalsFrom(r io.Reader, indexName string) ([]models.JournalEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return ParseJournals(doc, indexName), nil
}

// ParseJournals walks every table row with at least a title cell. Expected
// column order: name, ISSN, quartile, publisher. Header rows and rows without
// a name are skipped.
func ParseJournals(doc *goquery.Document, indexName string) []models.JournalEntry {
	var entries []models.JournalEntry

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		entry := models.JournalEntry{Index: indexName}
		cells.EachWithBreak(func(j int, cell *goquery.Selection) bool {
			text := strings.TrimSpace(cell.Text())
			switch j {
			case 0:
				entry.Name = text
			case 1:
				entry.ISSN = NormalizeISSN(text)
			case 2:
				entry.Quartile = NormalizeQuartile(text)
			case 3:
				entry.Publisher = text
			}
			return j < 3
		})

		if entry.Name == "" {
			return
		}
		entries = append(entries, entry)
	})

	return entries
}

// ParseDomesticFrom reads an HTML document from r and extracts domestic
// journal rows with their council points.
func ParseDomesticFrom(r io.Reader, council string) ([]models.DomesticJournal, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return ParseDomestic(doc, council), nil
}

// ParseDomestic expects columns: name, ISSN, points. Point cells accept comma
// decimals ("0,5") since the source tables are Vietnamese.
func ParseDomestic(doc *goquery.Document, council string) []models.DomesticJournal {
	var entries []models.DomesticJournal

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		entry := models.DomesticJournal{Council: council}
		cells.EachWithBreak(func(j int, cell *goquery.Selection) bool {
			text := strings.TrimSpace(cell.Text())
			switch j {
			case 0:
				entry.Name = text
			case 1:
				entry.ISSN = NormalizeISSN(text)
			case 2:
				entry.Points = ParsePoints(text)
			}
			return j < 2
		})

		if entry.Name == "" {
			return
		}
		entries = append(entries, entry)
	})

	return entries
}

// NormalizeISSN uppercases and strips spaces from an ISSN cell.
func NormalizeISSN(text string) string {
	text = strings.ToUpper(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, " ", "")
	// Tables sometimes list print and electronic ISSN together; keep the first.
	for _, sep := range []string{";", ",", "/"} {
		if idx := strings.Index(text, sep); idx >= 0 {
			text = text[:idx]
		}
	}
	return text
}

// NormalizeQuartile maps a quartile cell onto Q1..Q4, or empty when unknown.
func NormalizeQuartile(text string) string {
	q := strings.ToUpper(strings.TrimSpace(text))
	switch q {
	case "Q1", "Q2", "Q3", "Q4":
		return q
	}
	return ""
}

// ParsePoints reads a council points cell, tolerating comma decimals and
// keeping the upper bound of a range. Unparseable cells count zero.
func ParsePoints(text string) float64 {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	text = strings.ReplaceAll(text, "–", "-")
	// "0.5-1" style ranges keep the upper bound, matching how the council
	// tables are read when crediting.
	if idx := strings.LastIndex(text, "-"); idx > 0 {
		text = text[idx+1:]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return f
}
