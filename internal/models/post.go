// Package models defines the domain types for the content pipeline.
package models

import (
	"path"
	"time"
)

// Post represents one public markdown file matched to a topic by its
// filename suffix.
type Post struct {
	Path      string    `json:"-"`        // absolute path on disk
	RelPath   string    `json:"path"`     // slash-separated, relative to the public root
	ID        string    `json:"id"`       // stable 12-hex id derived from RelPath
	Topic     string    `json:"topic"`    // canonical topic identifier
	Title     string    `json:"title"`    // humanized slug
	Date      time.Time `json:"date"`     // from the YYYY-MM-DD filename token; zero when absent
	UpdatedAt time.Time `json:"updated_at"`
}

// Filename returns the base name of the post file, the secondary ordering key.
func (p Post) Filename() string {
	return path.Base(p.RelPath)
}

// DateLabel renders the filename date, or "undated" when the filename
// carries no date token.
func (p Post) DateLabel() string {
	if p.Date.IsZero() {
		return "undated"
	}
	return p.Date.Format("2006-01-02")
}

// Less reports whether p sorts before other in a listing. Listings are
// newest-first: descending date, then descending filename so the order
// is total.
func (p Post) Less(other Post) bool {
	if !p.Date.Equal(other.Date) {
		return p.Date.After(other.Date)
	}
	return p.Filename() > other.Filename()
}
