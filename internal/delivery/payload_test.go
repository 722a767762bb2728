package delivery

import (
	"strings"
	"testing"
)

func TestRenderText_SingleMessage(t *testing.T) {
	p := Payload{
		Text: "Hello",
		ReplyMarkup: &Markup{InlineKeyboard: [][]Button{
			{{Text: "Back", CallbackData: "ascension:menu"}},
		}},
	}
	got := RenderText(p)
	if !strings.Contains(got, "Hello") {
		t.Errorf("output missing text:\n%s", got)
	}
	if !strings.Contains(got, "- Back => ascension:menu") {
		t.Errorf("output missing button line:\n%s", got)
	}
}

func TestRenderText_NoButtonsSection(t *testing.T) {
	got := RenderText(Payload{Text: "Plain"})
	if strings.Contains(got, "Buttons:") {
		t.Errorf("unexpected buttons section:\n%s", got)
	}
}

func TestRenderText_Envelope(t *testing.T) {
	p := Payload{Messages: []Message{
		{Text: "part one"},
		{Text: "part two", ReplyMarkup: &Markup{InlineKeyboard: [][]Button{
			{{Text: "Back", CallbackData: "ascension:menu"}},
		}}},
	}}
	got := RenderText(p)
	if !strings.Contains(got, "[Message 1]") || !strings.Contains(got, "[Message 2]") {
		t.Errorf("missing message headers:\n%s", got)
	}
	if strings.Index(got, "part one") > strings.Index(got, "part two") {
		t.Error("messages out of order")
	}
	if !strings.Contains(got, "- Back => ascension:menu") {
		t.Errorf("missing button line:\n%s", got)
	}
}
