// Package repo scans the public content directory and exposes sorted,
// topic-filtered post listings. Every call re-scans the directory; the
// repository holds no state between invocations.
package repo

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/vorsakha/ascension/internal/apperr"
	"github.com/vorsakha/ascension/internal/models"
	"github.com/vorsakha/ascension/internal/storage"
	"github.com/vorsakha/ascension/internal/topic"
)

var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Repository lists posts from a storage provider rooted at the public
// content directory.
type Repository struct {
	store storage.Provider
}

// New creates a Repository over the given provider.
func New(store storage.Provider) *Repository {
	return &Repository{store: store}
}

// ListAll scans the public directory and returns every valid post, newest
// first. Files that do not match the `<slug>.<topic_suffix>.md` convention
// are silently skipped.
func (r *Repository) ListAll() ([]models.Post, error) {
	entries, err := r.store.List()
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(entries))
	for _, e := range entries {
		if p, ok := parsePost(e, r.store.Root()); ok {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Less(posts[j])
	})
	return posts, nil
}

// ListByTopic returns the posts of one canonical topic, newest first.
func (r *Repository) ListByTopic(t string) ([]models.Post, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	var out []models.Post
	for _, p := range all {
		if p.Topic == t {
			out = append(out, p)
		}
	}
	return out, nil
}

// Latest returns the newest post of a topic, or nil when the topic is empty.
func (r *Repository) Latest(t string) (*models.Post, error) {
	posts, err := r.ListByTopic(t)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// GetByID resolves a post id produced by an earlier scan. The id is stable
// while the underlying file is unmoved, so a deleted or renamed file yields
// apperr.ErrPostNotFound.
func (r *Repository) GetByID(id string) (*models.Post, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("post %q: %w", id, apperr.ErrPostNotFound)
}

// Counts returns the number of posts per canonical topic.
func (r *Repository) Counts() (map[string]int, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(topic.All()))
	for _, p := range all {
		counts[p.Topic]++
	}
	return counts, nil
}

// ReadRaw returns the raw file content of a post.
func (r *Repository) ReadRaw(p models.Post) ([]byte, error) {
	return r.store.Read(p.RelPath)
}

// parsePost turns a directory entry into a Post. ok is false for files
// outside the naming convention; they carry no topic and are excluded.
func parsePost(e storage.Entry, root string) (models.Post, bool) {
	name := e.RelPath
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	t, ok := topic.FromFilename(name)
	if !ok {
		return models.Post{}, false
	}

	parts := strings.Split(name, ".")
	slug := strings.Join(parts[:len(parts)-2], ".")

	var date time.Time
	if m := dateRe.FindString(name); m != "" {
		if d, err := time.Parse("2006-01-02", m); err == nil {
			date = d
		}
	}

	sum := sha1.Sum([]byte(e.RelPath))
	return models.Post{
		Path:      filepath.Join(root, filepath.FromSlash(e.RelPath)),
		RelPath:   e.RelPath,
		ID:        hex.EncodeToString(sum[:])[:12],
		Topic:     t,
		Title:     topic.Humanize(slug),
		Date:      date,
		UpdatedAt: e.ModTime.UTC(),
	}, true
}
