// Package publish copies a private draft into the public content folder.
//
// The copy is a single atomic write with no concurrent-writer protection:
// two publishes racing on the same destination are last-write-wins. Callers
// must not invoke concurrent publishes against one destination path.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vorsakha/ascension/internal/apperr"
	"github.com/vorsakha/ascension/internal/storage"
)

// Publisher resolves publish paths against the content tree and performs
// the private→public copy.
type Publisher struct {
	contentRoot string
	private     storage.Provider
	public      storage.Provider
}

// New creates a Publisher over the content directory, creating the private
// and public subdirectories when missing.
func New(contentRoot string) (*Publisher, error) {
	abs, err := filepath.Abs(contentRoot)
	if err != nil {
		return nil, fmt.Errorf("publish: resolve content root: %w", err)
	}
	for _, sub := range []string{"private", "public"} {
		if err := os.MkdirAll(filepath.Join(abs, sub), 0o755); err != nil {
			return nil, fmt.Errorf("publish: create %s dir: %w", sub, err)
		}
	}
	priv, err := storage.NewFS(filepath.Join(abs, "private"))
	if err != nil {
		return nil, err
	}
	pub, err := storage.NewFS(filepath.Join(abs, "public"))
	if err != nil {
		return nil, err
	}
	return &Publisher{contentRoot: abs, private: priv, public: pub}, nil
}

// resolveInput expands the private/... and public/... shorthands against
// the content root; other relative paths resolve against the working
// directory.
func (p *Publisher) resolveInput(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw), nil
	}
	text := strings.TrimLeft(raw, "./")
	if strings.HasPrefix(text, "private/") || strings.HasPrefix(text, "public/") {
		return filepath.Join(p.contentRoot, filepath.FromSlash(text)), nil
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("publish: resolve %s: %w", raw, err)
	}
	return abs, nil
}

// relUnder returns path relative to base, failing when path escapes base.
func relUnder(path, base, label string) (string, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("publish: %s must be under %s; got %s", label, base, path)
	}
	return filepath.ToSlash(rel), nil
}

// Publish copies srcRaw (under the private root) to dstRaw (under the
// public root), preserving the source. An existing destination is refused
// without force. Returns the absolute destination path.
func (p *Publisher) Publish(srcRaw, dstRaw string, force, dryRun bool) (string, error) {
	src, err := p.resolveInput(srcRaw)
	if err != nil {
		return "", err
	}
	dst, err := p.resolveInput(dstRaw)
	if err != nil {
		return "", err
	}

	srcRel, err := relUnder(src, p.private.Root(), "private_file")
	if err != nil {
		return "", err
	}
	dstRel, err := relUnder(dst, p.public.Root(), "public_file")
	if err != nil {
		return "", err
	}

	if !p.private.Exists(srcRel) {
		return "", fmt.Errorf("publish: source private file does not exist: %s", src)
	}
	if p.public.Exists(dstRel) && !force {
		return "", fmt.Errorf("publish: destination %s: %w", dst, apperr.ErrAlreadyExists)
	}
	if dryRun {
		return dst, nil
	}

	data, err := p.private.Read(srcRel)
	if err != nil {
		return "", err
	}
	if err := p.public.Write(dstRel, data); err != nil {
		return "", err
	}
	return dst, nil
}
