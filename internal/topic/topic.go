// Package topic maps filename suffixes to the fixed set of content topics.
package topic

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vorsakha/ascension/internal/apperr"
)

// Canonical topic identifiers.
const (
	Journal = "ascension_journal"
	Music   = "music_log"
	Scroll  = "ascension_x"
)

var labels = map[string]string{
	Journal: "Journal",
	Music:   "Music",
	Scroll:  "Scroll",
}

// aliases accepted on the CLI and in callback tokens.
var aliases = map[string]string{
	"journal":           Journal,
	"ascension_journal": Journal,
	"music":             Music,
	"music_log":         Music,
	"scroll":            Scroll,
	"ascension_x":       Scroll,
	"x":                 Scroll,
}

// All returns the canonical topics in menu order.
func All() []string {
	return []string{Journal, Music, Scroll}
}

// Known reports whether t is a canonical topic identifier.
func Known(t string) bool {
	_, ok := labels[t]
	return ok
}

// Label returns the display label for a canonical topic, falling back to a
// humanized form for anything else.
func Label(t string) string {
	if l, ok := labels[t]; ok {
		return l
	}
	return Humanize(t)
}

// Canonical resolves a topic alias to its canonical identifier.
func Canonical(alias string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(alias))
	if t, ok := aliases[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("topic %q: %w", alias, apperr.ErrUnknownTopic)
}

// FromFilename classifies a file by its `<slug>.<topic_suffix>.md` name.
// ok is false for files that do not match any known topic suffix; such
// files are excluded from all listings.
func FromFilename(name string) (string, bool) {
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return "", false
	}
	if strings.ToLower(strings.TrimSpace(parts[len(parts)-1])) != "md" {
		return "", false
	}
	suffix := strings.ToLower(strings.TrimSpace(parts[len(parts)-2]))
	if !Known(suffix) {
		return "", false
	}
	if strings.Join(parts[:len(parts)-2], ".") == "" {
		return "", false
	}
	return suffix, true
}

var (
	wordSplitRe = regexp.MustCompile(`[_\-\s]+`)
	titleCaser  = cases.Title(language.Und)
)

// Humanize turns a slug like "daily_music_log" into "Daily Music Log".
func Humanize(slug string) string {
	parts := wordSplitRe.Split(strings.TrimSpace(slug), -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return titleCaser.String(strings.Join(words, " "))
}
