package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/vorsakha/ascension/internal/apperr"
	"github.com/vorsakha/ascension/internal/topic"
)

func TestRoundTrip(t *testing.T) {
	intents := []Intent{
		Menu(),
		List(topic.Journal, 1),
		List(topic.Music, 3),
		Post("abc123def456", 2),
	}
	for _, in := range intents {
		encoded := Encode(in)
		decoded, err := Decode(encoded)
		if err != nil {
			t.Errorf("Decode(%q): %v", encoded, err)
			continue
		}
		if decoded != in {
			t.Errorf("round trip %q: got %+v, want %+v", encoded, decoded, in)
		}
	}
}

func TestDecode_Menu(t *testing.T) {
	got, err := Decode("ascension:menu")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Kind != KindMenu {
		t.Errorf("kind = %v", got.Kind)
	}
}

func TestDecode_TopicShorthandIsListPageOne(t *testing.T) {
	got, err := Decode(EncodeTopic(topic.Journal))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := List(topic.Journal, 1)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDecode_AliasesResolve(t *testing.T) {
	got, err := Decode("ascension:list:music:2")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Topic != topic.Music || got.Page != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestDecode_UnknownTopicDistinctFromMalformed(t *testing.T) {
	_, err := Decode("ascension:list:nope:1")
	if !errors.Is(err, apperr.ErrUnknownTopic) {
		t.Errorf("unknown topic: err = %v, want ErrUnknownTopic", err)
	}
	if errors.Is(err, apperr.ErrMalformedToken) {
		t.Error("unknown topic must not also match ErrMalformedToken")
	}

	_, err = Decode("ascension:list:music:abc")
	if !errors.Is(err, apperr.ErrMalformedToken) {
		t.Errorf("bad page: err = %v, want ErrMalformedToken", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"garbage",
		"ascension:unknown",
		"other:list:music:1",
		"ascension:list:music",
		"ascension:list:music:1:extra",
		"ascension:post::1",
		"ascension:post:abc:x",
	}
	for _, raw := range cases {
		_, err := Decode(raw)
		if !errors.Is(err, apperr.ErrMalformedToken) {
			t.Errorf("Decode(%q): err = %v, want ErrMalformedToken", raw, err)
		}
	}
}

func TestDecode_PreservesRawToken(t *testing.T) {
	_, err := Decode("ascension:list:music:abc")
	if err == nil || !errors.Is(err, apperr.ErrMalformedToken) {
		t.Fatalf("err = %v", err)
	}
	if want := `"ascension:list:music:abc"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should carry the raw token", err)
	}
}

func TestDecode_FloorsPageAtOne(t *testing.T) {
	got, err := Decode("ascension:list:music:-4")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Page != 1 {
		t.Errorf("page = %d, want 1", got.Page)
	}
}
