// Package markdown strips markup from post bodies and extracts display titles.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	fenceRe   = regexp.MustCompile("(?s)```.*?```")
	inlineRe  = regexp.MustCompile("`([^`]*)`")
	headingRe = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s*`)
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	linkRe    = regexp.MustCompile(`\[(.*?)\]\((?:.*?)\)`)
	blanksRe  = regexp.MustCompile(`\n{3,}`)
)

// Strip converts markdown to plain deliverable text: code fences removed,
// inline code/bold/italic/link markers unwrapped, heading markers dropped,
// runs of blank lines collapsed.
func Strip(text string) string {
	text = fenceRe.ReplaceAllString(text, "")
	text = inlineRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = blanksRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// SplitFrontmatter separates YAML frontmatter (between leading ---
// delimiters) from the body. If no valid frontmatter is found the entire
// content is body.
func SplitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML is treated as body, not an error.
		return nil, string(data)
	}
	return fm, body
}

// Title returns the frontmatter "title" if present, otherwise the first H1
// heading, otherwise empty string.
func Title(data []byte) string {
	fm, body := SplitFrontmatter(data)
	if fm != nil {
		if t, ok := fm["title"].(string); ok && t != "" {
			return t
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// Excerpt strips text and truncates it to at most max runes, appending an
// ellipsis when clipped.
func Excerpt(text string, max int) string {
	plain := Strip(text)
	runes := []rune(plain)
	if len(runes) <= max {
		return plain
	}
	clipped := strings.TrimRight(string(runes[:max-1]), " \t\n")
	return clipped + "…"
}
