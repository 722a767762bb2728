// Package delivery assembles the JSON payloads (text plus inline keyboard,
// or a multi-message envelope) returned to the chat-sending layer.
package delivery

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vorsakha/ascension/internal/apperr"
	"github.com/vorsakha/ascension/internal/markdown"
	"github.com/vorsakha/ascension/internal/models"
	"github.com/vorsakha/ascension/internal/page"
	"github.com/vorsakha/ascension/internal/repo"
	"github.com/vorsakha/ascension/internal/token"
	"github.com/vorsakha/ascension/internal/topic"
)

// DefaultExcerptChars is the excerpt budget for latest-post previews.
const DefaultExcerptChars = 420

// Config tunes payload assembly.
type Config struct {
	PageSize     int
	ChunkSize    int
	ExcerptChars int
	MenuRowWidth int
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = page.DefaultSize
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ExcerptChars <= 0 {
		c.ExcerptChars = DefaultExcerptChars
	}
	if c.MenuRowWidth <= 0 {
		c.MenuRowWidth = 1
	}
	return c
}

// Builder produces response payloads from repository state. It is
// stateless: every build re-scans the directory snapshot.
type Builder struct {
	repo *repo.Repository
	cfg  Config
	log  *slog.Logger
}

// New creates a Builder. A nil logger falls back to slog.Default.
func New(r *repo.Repository, cfg Config, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{repo: r, cfg: cfg.withDefaults(), log: log}
}

// Menu builds the topic menu: one line and one button per topic with post
// counts and the latest post date.
func (b *Builder) Menu() (Payload, error) {
	all, err := b.repo.ListAll()
	if err != nil {
		return Payload{}, err
	}
	counts := make(map[string]int, len(topic.All()))
	latest := make(map[string]models.Post, len(topic.All()))
	for _, p := range all {
		counts[p.Topic]++
		if _, ok := latest[p.Topic]; !ok {
			latest[p.Topic] = p // list is newest-first
		}
	}

	lines := []string{"Ascension topics"}
	var buttons []Button
	for _, t := range topic.All() {
		label := topic.Label(t)
		latestLabel := "none"
		if p, ok := latest[t]; ok {
			latestLabel = p.DateLabel()
		}
		lines = append(lines, fmt.Sprintf("- %s: %d posts (latest %s)", label, counts[t], latestLabel))
		buttons = append(buttons, Button{
			Text:         fmt.Sprintf("%s (%d)", label, counts[t]),
			CallbackData: token.EncodeTopic(t),
		})
	}

	return Payload{
		Text:        strings.Join(lines, "\n"),
		ReplyMarkup: &Markup{InlineKeyboard: rows(buttons, b.cfg.MenuRowWidth)},
	}, nil
}

// Latest builds a preview of the newest post of a canonical topic, or an
// explicit empty-topic message. No pagination buttons are attached.
func (b *Builder) Latest(t string) (Payload, error) {
	p, err := b.repo.Latest(t)
	if err != nil {
		return Payload{}, err
	}
	if p == nil {
		return b.emptyTopic(t), nil
	}

	raw, err := b.repo.ReadRaw(*p)
	if err != nil {
		return Payload{}, err
	}
	_, body := markdown.SplitFrontmatter(raw)
	text := fmt.Sprintf(
		"Ascension %s\nTitle: %s\nUpdated: %s\nPath: public/%s\n\n%s",
		topic.Label(t), displayTitle(*p, raw), stamp(*p), p.RelPath,
		markdown.Excerpt(body, b.cfg.ExcerptChars),
	)

	return Payload{
		Text:        text,
		ReplyMarkup: &Markup{InlineKeyboard: [][]Button{{backToMenu("Back")}}},
	}, nil
}

// List builds one page of a topic's post list with per-post buttons and
// prev/next navigation where applicable. Each post button carries the
// originating page so "back" returns to the same list page.
func (b *Builder) List(t string, pageNumber int) (Payload, error) {
	posts, err := b.repo.ListByTopic(t)
	if err != nil {
		return Payload{}, err
	}
	if len(posts) == 0 {
		return b.emptyTopic(t), nil
	}

	pg := page.Paginate(t, posts, pageNumber, b.cfg.PageSize)

	lines := []string{
		"Ascension " + topic.Label(t),
		fmt.Sprintf("Posts: %d", len(posts)),
		fmt.Sprintf("Page %d/%d", pg.Number, pg.TotalPages),
		"",
	}
	var keyboard [][]Button
	for i, p := range pg.Items {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, p.DateLabel(), p.Title))
		keyboard = append(keyboard, []Button{{
			Text:         fmt.Sprintf("%d. %s", i+1, p.Title),
			CallbackData: token.Encode(token.Post(p.ID, pg.Number)),
		}})
	}

	var nav []Button
	if pg.HasPrev {
		nav = append(nav, Button{
			Text:         "Prev",
			CallbackData: token.Encode(token.List(t, pg.Number-1)),
		})
	}
	if pg.HasNext {
		nav = append(nav, Button{
			Text:         "Next",
			CallbackData: token.Encode(token.List(t, pg.Number+1)),
		})
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}
	keyboard = append(keyboard, []Button{backToMenu("Back to topics")})

	return Payload{
		Text:        strings.Join(lines, "\n"),
		ReplyMarkup: &Markup{InlineKeyboard: keyboard},
	}, nil
}

// Post builds the full body of one post, chunked into a multi-message
// envelope when it exceeds the chunk budget. Only the final chunk carries
// the navigation buttons.
func (b *Builder) Post(id string, returnPage int) (Payload, error) {
	p, err := b.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrPostNotFound) {
			b.log.Warn("post vanished between listing and tap", slog.String("post_id", id))
			return Payload{
				Text:        "Post not found.",
				ReplyMarkup: &Markup{InlineKeyboard: [][]Button{{backToMenu("Back to topics")}}},
			}, nil
		}
		return Payload{}, err
	}

	raw, err := b.repo.ReadRaw(*p)
	if err != nil {
		return Payload{}, err
	}
	_, body := markdown.SplitFrontmatter(raw)

	if returnPage < 1 {
		returnPage = 1
	}
	text := fmt.Sprintf(
		"Title: %s\nUpdated: %s\nPath: public/%s\n\n%s",
		displayTitle(*p, raw), stamp(*p), p.RelPath, markdown.Strip(body),
	)
	markup := &Markup{InlineKeyboard: [][]Button{
		{{Text: "Back to list", CallbackData: token.Encode(token.List(p.Topic, returnPage))}},
		{backToMenu("Back to topics")},
	}}

	chunks := splitChunks(text, b.cfg.ChunkSize)
	if len(chunks) == 1 {
		return Payload{Text: chunks[0], ReplyMarkup: markup}, nil
	}

	messages := make([]Message, len(chunks))
	for i, c := range chunks {
		messages[i] = Message{Text: c}
	}
	messages[len(messages)-1].ReplyMarkup = markup
	return Payload{Messages: messages}, nil
}

// Callback decodes a token and dispatches to the matching builder. Decode
// and lookup failures never propagate as errors: a chat user always gets a
// renderable payload. Storage failures still propagate.
func (b *Builder) Callback(data string) (Payload, error) {
	intent, err := token.Decode(data)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnknownTopic):
			b.log.Warn("callback named unknown topic", slog.String("error", err.Error()))
		default:
			b.log.Warn("malformed callback token", slog.String("error", err.Error()))
		}
		return Payload{
			Text:        "Unknown callback action.",
			ReplyMarkup: &Markup{InlineKeyboard: [][]Button{{backToMenu("Back to topics")}}},
		}, nil
	}

	switch intent.Kind {
	case token.KindList:
		return b.List(intent.Topic, intent.Page)
	case token.KindPost:
		return b.Post(intent.PostID, intent.ReturnPage)
	default:
		return b.Menu()
	}
}

func (b *Builder) emptyTopic(t string) Payload {
	return Payload{
		Text:        fmt.Sprintf("No public %s content available yet.", strings.ToLower(topic.Label(t))),
		ReplyMarkup: &Markup{InlineKeyboard: [][]Button{{backToMenu("Back")}}},
	}
}

func backToMenu(label string) Button {
	return Button{Text: label, CallbackData: token.Encode(token.Menu())}
}

// displayTitle prefers the filename-derived title and falls back to a
// heading extracted from the content.
func displayTitle(p models.Post, raw []byte) string {
	if p.Title != "" {
		return p.Title
	}
	if h := markdown.Title(raw); h != "" {
		return h
	}
	return p.Filename()
}

func stamp(p models.Post) string {
	return p.UpdatedAt.Format("2006-01-02 15:04 UTC")
}

// rows packs buttons into keyboard rows of at most width cells.
func rows(buttons []Button, width int) [][]Button {
	var out [][]Button
	for len(buttons) > width {
		out = append(out, buttons[:width])
		buttons = buttons[width:]
	}
	if len(buttons) > 0 {
		out = append(out, buttons)
	}
	return out
}
