package models

import "time"

// JournalEntry is one row of the indexed-journal catalog used to suggest a
// publication classification from a journal name.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ISSN      string    `json:"issn,omitempty"`
	Index     string    `json:"index"` // wos / scopus
	Quartile  string    `json:"quartile,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DomesticJournal is a council-rated domestic journal with its point value.
type DomesticJournal struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	ISSN    string  `json:"issn,omitempty"`
	Points  float64 `json:"points"`
	Council string  `json:"council,omitempty"`
}
