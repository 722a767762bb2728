package draft

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vorsakha/ascension/internal/apperr"
	"github.com/vorsakha/ascension/internal/storage"
)

func testCreator(t *testing.T) (*Creator, string) {
	t.Helper()
	contentDir := t.TempDir()
	templatesDir := t.TempDir()

	templates := map[string]string{
		"journal.private.md": "# Private Journal — YYYY-MM-DD\nAgent: {{AGENT_NAME}}\n",
		"journal.public.md":  "# [Topic Name]\nDate: [Month DD, YYYY] at [HH:MM UTC]\n",
		"music_log.md":       "# Music — YYYY-MM-DD\n",
		"twitter_scroll.md":  "# Scroll — YYYY-MM-DD\n",
	}
	for name, body := range templates {
		if err := os.WriteFile(filepath.Join(templatesDir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := storage.NewFS(contentDir)
	if err != nil {
		t.Fatal(err)
	}
	return NewCreator(store, templatesDir, "Ascension"), contentDir
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":       "hello_world",
		"  spaced   out  ":    "spaced_out",
		"dash-and_underscore": "dash_and_underscore",
		"":                    "entry",
		"!!!":                 "entry",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}

	long := Slugify(strings.Repeat("a", 60))
	if long != strings.Repeat("a", 48) {
		t.Errorf("long slug = %q (%d chars), want 48 a's", long, len(long))
	}
}

func TestFilename_Table(t *testing.T) {
	date := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		visibility, postType, want string
	}{
		{Private, "journal", "journal_2026-02-18_my_day.private_journal.md"},
		{Public, "journal", "ascension_journal_2026-02-18_my_day.ascension_journal.md"},
		{Public, "music_log", "daily_music_log_2026-02-18_my_day.music_log.md"},
		{Public, "twitter_scroll", "ascension_x_scroll_2026-02-18_my_day.ascension_x.md"},
	}
	for _, c := range cases {
		got, err := Filename(c.visibility, c.postType, date, "My Day")
		if err != nil {
			t.Errorf("Filename(%s,%s): %v", c.visibility, c.postType, err)
			continue
		}
		if got != c.want {
			t.Errorf("Filename(%s,%s) = %q, want %q", c.visibility, c.postType, got, c.want)
		}
	}
}

func TestFilename_UnsupportedCombination(t *testing.T) {
	if _, err := Filename(Private, "music_log", time.Now(), "x"); err == nil {
		t.Error("private music_log should be rejected")
	}
}

func TestRender_Substitutions(t *testing.T) {
	tpl := []byte("Date: YYYY-MM-DD\nAgent: {{AGENT_NAME}}\nTopic: [Topic Name]\nLong: [Month DD, YYYY]\nTime: [HH:MM UTC]\n")
	date := time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 18, 9, 30, 0, 0, time.UTC)

	got := string(Render(tpl, date, "Deep Focus", "Ascension", now))
	for _, want := range []string{
		"Date: 2026-02-18",
		"Agent: Ascension",
		"Topic: Deep Focus",
		"Long: February 18, 2026",
		"Time: 09:30 UTC",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered template missing %q:\n%s", want, got)
		}
	}
}

func TestRender_EmptyTitleFallsBackToGeneral(t *testing.T) {
	got := string(Render([]byte("[Topic Name]"), time.Now(), "  ", "A", time.Now()))
	if got != "General" {
		t.Errorf("got %q", got)
	}
}

func TestCreate_WritesDraft(t *testing.T) {
	c, contentDir := testCreator(t)
	res, err := c.Create(Input{
		Visibility: Public,
		Type:       "journal",
		Title:      "Morning Pages",
		Date:       "2026-02-18",
	}, false, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := "public/ascension_journal_2026-02-18_morning_pages.ascension_journal.md"
	if res.RelPath != want {
		t.Errorf("RelPath = %q, want %q", res.RelPath, want)
	}

	data, err := os.ReadFile(filepath.Join(contentDir, filepath.FromSlash(want)))
	if err != nil {
		t.Fatalf("read created draft: %v", err)
	}
	if !strings.Contains(string(data), "Morning Pages") {
		t.Errorf("draft content:\n%s", data)
	}
}

func TestCreate_RefusesOverwriteWithoutForce(t *testing.T) {
	c, _ := testCreator(t)
	in := Input{Visibility: Public, Type: "journal", Title: "Same", Date: "2026-02-18"}

	if _, err := c.Create(in, false, false); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := c.Create(in, false, false)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	if _, err := c.Create(in, true, false); err != nil {
		t.Errorf("forced create: %v", err)
	}
}

func TestCreate_DryRunWritesNothing(t *testing.T) {
	c, contentDir := testCreator(t)
	res, err := c.Create(Input{
		Visibility: Private,
		Type:       "journal",
		Title:      "Secret",
		Date:       "2026-02-18",
	}, false, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !res.DryRun {
		t.Error("result should be marked dry-run")
	}
	if _, err := os.Stat(filepath.Join(contentDir, filepath.FromSlash(res.RelPath))); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("dry run must not write: stat err = %v", err)
	}
}

func TestCreate_RejectsBadInput(t *testing.T) {
	c, _ := testCreator(t)
	cases := []Input{
		{Visibility: "secret", Type: "journal", Title: "x"},
		{Visibility: Public, Type: "journal", Title: ""},
		{Visibility: Public, Type: "journal", Title: "x", Date: "18-02-2026"},
		{Visibility: Private, Type: "twitter_scroll", Title: "x"},
	}
	for _, in := range cases {
		if _, err := c.Create(in, false, true); err == nil {
			t.Errorf("Create(%+v) should fail", in)
		}
	}
}
