// Package page slices ordered post lists into fixed-size pages.
package page

import "github.com/vorsakha/ascension/internal/models"

// DefaultSize is the number of posts per page.
const DefaultSize = 6

// Page is a 1-indexed window over a topic's ordered post list. An empty
// page is valid: a topic with zero posts still has one page.
type Page struct {
	Topic      string        `json:"topic"`
	Number     int           `json:"page"`
	Size       int           `json:"page_size"`
	Items      []models.Post `json:"items"`
	HasPrev    bool          `json:"has_prev"`
	HasNext    bool          `json:"has_next"`
	TotalPages int           `json:"total_pages"`
}

// Paginate returns the requested page of posts. The page number is clamped
// into [1, TotalPages], never an error; the resolved number is reported
// back in Page.Number so callers can see the clamp.
func Paginate(topic string, posts []models.Post, number, size int) Page {
	if size <= 0 {
		size = DefaultSize
	}
	totalPages := (len(posts) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * size
	end := start + size
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return Page{
		Topic:      topic,
		Number:     number,
		Size:       size,
		Items:      posts[start:end],
		HasPrev:    number > 1,
		HasNext:    number < totalPages,
		TotalPages: totalPages,
	}
}
