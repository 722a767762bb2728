package publish

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vorsakha/ascension/internal/apperr"
)

func testPublisher(t *testing.T) (*Publisher, string) {
	t.Helper()
	contentRoot := t.TempDir()
	p, err := New(contentRoot)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, contentRoot
}

func writePrivate(t *testing.T, contentRoot, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(contentRoot, "private", name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPublish_CopiesAndPreservesSource(t *testing.T) {
	p, root := testPublisher(t)
	writePrivate(t, root, "journal_2026-02-18_a.private_journal.md", "secret draft")

	dst, err := p.Publish(
		"private/journal_2026-02-18_a.private_journal.md",
		"public/ascension_journal_2026-02-18_a.ascension_journal.md",
		false, false,
	)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "secret draft" {
		t.Errorf("destination content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(root, "private", "journal_2026-02-18_a.private_journal.md")); err != nil {
		t.Errorf("source should be preserved: %v", err)
	}
}

func TestPublish_RefusesExistingDestination(t *testing.T) {
	p, root := testPublisher(t)
	writePrivate(t, root, "a.private_journal.md", "v1")

	src := "private/a.private_journal.md"
	dst := "public/a.ascension_journal.md"
	if _, err := p.Publish(src, dst, false, false); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	_, err := p.Publish(src, dst, false, false)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	if _, err := p.Publish(src, dst, true, false); err != nil {
		t.Errorf("forced publish: %v", err)
	}
}

func TestPublish_ContainmentEnforced(t *testing.T) {
	p, root := testPublisher(t)
	writePrivate(t, root, "a.private_journal.md", "x")

	// Destination outside the public root.
	outside := filepath.Join(t.TempDir(), "elsewhere.md")
	if _, err := p.Publish("private/a.private_journal.md", outside, false, false); err == nil {
		t.Error("destination outside public root should be rejected")
	}

	// Source outside the private root.
	stray := filepath.Join(t.TempDir(), "stray.md")
	if err := os.WriteFile(stray, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Publish(stray, "public/b.ascension_journal.md", false, false); err == nil {
		t.Error("source outside private root should be rejected")
	}
}

func TestPublish_MissingSource(t *testing.T) {
	p, _ := testPublisher(t)
	_, err := p.Publish("private/missing.md", "public/missing.md", false, false)
	if err == nil {
		t.Error("missing source should be rejected")
	}
}

func TestPublish_DryRunCopiesNothing(t *testing.T) {
	p, root := testPublisher(t)
	writePrivate(t, root, "a.private_journal.md", "x")

	dst, err := p.Publish("private/a.private_journal.md", "public/a.ascension_journal.md", false, true)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("dry run must not copy: stat err = %v", err)
	}
}

func TestPublish_CreatesDestinationSubdirs(t *testing.T) {
	p, root := testPublisher(t)
	writePrivate(t, root, "a.private_journal.md", "x")

	dst, err := p.Publish("private/a.private_journal.md", "public/journal/a.ascension_journal.md", false, false)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}
