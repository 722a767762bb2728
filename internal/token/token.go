// Package token encodes and decodes the opaque callback strings carried in
// chat button payloads. The grammar is colon-delimited:
//
//	ascension:menu
//	ascension:topic:<topic>            (shorthand for list page 1)
//	ascension:list:<topic>:<page>
//	ascension:post:<post_id>:<return_page>
//
// Tokens are the only state that survives between invocations; they are
// persisted by the chat client, never by this process.
package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vorsakha/ascension/internal/apperr"
	"github.com/vorsakha/ascension/internal/topic"
)

// Prefix namespaces every token.
const Prefix = "ascension"

// Kind discriminates the Intent variants.
type Kind int

const (
	KindMenu Kind = iota
	KindList
	KindPost
)

// Intent is the decoded form of a token. Topic and Page are set for
// KindList; PostID and ReturnPage for KindPost.
type Intent struct {
	Kind       Kind
	Topic      string
	Page       int
	PostID     string
	ReturnPage int
}

// Menu returns the menu intent.
func Menu() Intent { return Intent{Kind: KindMenu} }

// List returns a list intent for a canonical topic and page.
func List(t string, page int) Intent {
	return Intent{Kind: KindList, Topic: t, Page: page}
}

// Post returns a post intent carrying the originating list page.
func Post(id string, returnPage int) Intent {
	return Intent{Kind: KindPost, PostID: id, ReturnPage: returnPage}
}

// Encode renders an Intent as a token string. Encode and Decode round-trip:
// Decode(Encode(i)) == i for every Intent built via the constructors.
func Encode(i Intent) string {
	switch i.Kind {
	case KindList:
		return fmt.Sprintf("%s:list:%s:%d", Prefix, i.Topic, i.Page)
	case KindPost:
		return fmt.Sprintf("%s:post:%s:%d", Prefix, i.PostID, i.ReturnPage)
	default:
		return Prefix + ":menu"
	}
}

// EncodeTopic renders the `topic` shorthand used on menu buttons; it decodes
// as list page 1.
func EncodeTopic(t string) string {
	return fmt.Sprintf("%s:topic:%s", Prefix, t)
}

// Decode parses a token string. Shape violations (wrong prefix, wrong
// segment count, non-numeric page) yield apperr.ErrMalformedToken with the
// raw token preserved; a well-formed token naming a topic outside the static
// table yields apperr.ErrUnknownTopic. Page numbers are floored at 1 here;
// the upper clamp happens during pagination.
func Decode(data string) (Intent, error) {
	raw := strings.TrimSpace(data)
	if raw == Prefix+":menu" {
		return Menu(), nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 3 || parts[0] != Prefix {
		return Intent{}, malformed(raw)
	}

	switch parts[1] {
	case "topic":
		if len(parts) != 3 {
			return Intent{}, malformed(raw)
		}
		t, err := topic.Canonical(parts[2])
		if err != nil {
			return Intent{}, fmt.Errorf("token %q: %w", raw, err)
		}
		return List(t, 1), nil

	case "list":
		if len(parts) != 4 {
			return Intent{}, malformed(raw)
		}
		t, err := topic.Canonical(parts[2])
		if err != nil {
			return Intent{}, fmt.Errorf("token %q: %w", raw, err)
		}
		p, err := parsePage(parts[3])
		if err != nil {
			return Intent{}, malformed(raw)
		}
		return List(t, p), nil

	case "post":
		if len(parts) != 4 {
			return Intent{}, malformed(raw)
		}
		id := strings.ToLower(strings.TrimSpace(parts[2]))
		if id == "" {
			return Intent{}, malformed(raw)
		}
		rp, err := parsePage(parts[3])
		if err != nil {
			return Intent{}, malformed(raw)
		}
		return Post(id, rp), nil
	}

	return Intent{}, malformed(raw)
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

func malformed(raw string) error {
	return fmt.Errorf("token %q: %w", raw, apperr.ErrMalformedToken)
}
