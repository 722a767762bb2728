// Package draft creates dated markdown drafts from templates.
package draft

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vorsakha/ascension/internal/apperr"
	"github.com/vorsakha/ascension/internal/storage"
)

// Visibility values.
const (
	Public  = "public"
	Private = "private"
)

// Input is the user-facing description of a new draft.
type Input struct {
	Visibility string
	Type       string
	Title      string
	Date       string // optional override, YYYY-MM-DD
}

// Validate checks the field-level rules; visibility/type combinations are
// checked against the recipe table during Create.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Visibility, validation.Required, validation.In(Public, Private)),
		validation.Field(&in.Type, validation.Required),
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Date, validation.Date("2006-01-02")),
	)
}

// recipe fixes the filename shape and template for one visibility/type pair.
type recipe struct {
	template string
	prefix   string
	topic    string
}

var recipes = map[[2]string]recipe{
	{Private, "journal"}:       {"journal.private.md", "journal", "private_journal"},
	{Public, "journal"}:        {"journal.public.md", "ascension_journal", "ascension_journal"},
	{Public, "music_log"}:      {"music_log.md", "daily_music_log", "music_log"},
	{Public, "twitter_scroll"}: {"twitter_scroll.md", "ascension_x_scroll", "ascension_x"},
}

var (
	slugInvalidRe   = regexp.MustCompile(`[^a-z0-9\s_-]`)
	slugSeparatorRe = regexp.MustCompile(`[\s-]+`)
	slugRepeatRe    = regexp.MustCompile(`_+`)
)

const slugMaxLen = 48

// Slugify reduces a human title to a filename-safe slug. Empty results fall
// back to "entry".
func Slugify(title string) string {
	v := strings.ToLower(strings.TrimSpace(title))
	v = slugInvalidRe.ReplaceAllString(v, "")
	v = slugSeparatorRe.ReplaceAllString(v, "_")
	v = slugRepeatRe.ReplaceAllString(v, "_")
	v = strings.Trim(v, "_")
	if v == "" {
		return "entry"
	}
	if len(v) > slugMaxLen {
		v = strings.TrimRight(v[:slugMaxLen], "_")
	}
	if v == "" {
		return "entry"
	}
	return v
}

// Filename builds the `<prefix>_<date>_<slug>.<topic>.md` name for a
// visibility/type pair.
func Filename(visibility, postType string, date time.Time, title string) (string, error) {
	rec, ok := recipes[[2]string{visibility, postType}]
	if !ok {
		return "", fmt.Errorf("draft: unsupported combination: visibility=%s, type=%s", visibility, postType)
	}
	return fmt.Sprintf("%s_%s_%s.%s.md", rec.prefix, date.Format("2006-01-02"), Slugify(title), rec.topic), nil
}

// Render substitutes the template placeholder tokens.
func Render(template []byte, date time.Time, title, agentName string, now time.Time) []byte {
	content := string(template)
	topicName := strings.TrimSpace(title)
	if topicName == "" {
		topicName = "General"
	}
	content = strings.ReplaceAll(content, "YYYY-MM-DD", date.Format("2006-01-02"))
	content = strings.ReplaceAll(content, "{{AGENT_NAME}}", agentName)
	content = strings.ReplaceAll(content, "[Topic Name]", topicName)
	content = strings.ReplaceAll(content, "[Month DD, YYYY]", date.Format("January 02, 2006"))
	content = strings.ReplaceAll(content, "[HH:MM UTC]", now.UTC().Format("15:04 UTC"))
	return []byte(content)
}

// Creator writes drafts into the content tree.
type Creator struct {
	store        storage.Provider // rooted at the content directory
	templatesDir string
	agentName    string
	now          func() time.Time
}

// NewCreator builds a Creator over the content-directory provider.
func NewCreator(store storage.Provider, templatesDir, agentName string) *Creator {
	return &Creator{
		store:        store,
		templatesDir: templatesDir,
		agentName:    agentName,
		now:          time.Now,
	}
}

// Result describes a created (or planned, for dry runs) draft.
type Result struct {
	RelPath string
	AbsPath string
	DryRun  bool
}

// Create renders the template for in and writes it under
// <content>/<visibility>/. An existing destination is refused without
// force.
func (c *Creator) Create(in Input, force, dryRun bool) (Result, error) {
	in.Visibility = strings.ToLower(strings.TrimSpace(in.Visibility))
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if err := in.Validate(); err != nil {
		return Result{}, fmt.Errorf("draft: %w", err)
	}

	rec, ok := recipes[[2]string{in.Visibility, in.Type}]
	if !ok {
		return Result{}, fmt.Errorf("draft: unsupported combination: visibility=%s, type=%s", in.Visibility, in.Type)
	}

	date := c.now().UTC().Truncate(24 * time.Hour)
	if in.Date != "" {
		d, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return Result{}, fmt.Errorf("draft: invalid date %q: %w", in.Date, err)
		}
		date = d
	}

	template, err := os.ReadFile(filepath.Join(c.templatesDir, rec.template))
	if err != nil {
		return Result{}, fmt.Errorf("draft: read template %s: %w", rec.template, err)
	}

	name, err := Filename(in.Visibility, in.Type, date, in.Title)
	if err != nil {
		return Result{}, err
	}
	rel := path.Join(in.Visibility, name)
	res := Result{
		RelPath: rel,
		AbsPath: filepath.Join(c.store.Root(), filepath.FromSlash(rel)),
		DryRun:  dryRun,
	}

	if c.store.Exists(rel) && !force {
		return Result{}, fmt.Errorf("draft: refusing to overwrite %s: %w", rel, apperr.ErrAlreadyExists)
	}
	if dryRun {
		return res, nil
	}

	if err := c.store.Write(rel, Render(template, date, in.Title, c.agentName, c.now())); err != nil {
		return Result{}, err
	}
	return res, nil
}
