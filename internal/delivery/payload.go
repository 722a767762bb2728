package delivery

import (
	"fmt"
	"strings"
)

// Button is one inline-keyboard cell; the chat layer maps it directly onto
// its own button model.
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Markup is the inline keyboard attached to a message.
type Markup struct {
	InlineKeyboard [][]Button `json:"inline_keyboard"`
}

// Message is one deliverable chunk inside a multi-message envelope.
type Message struct {
	Text        string  `json:"text"`
	ReplyMarkup *Markup `json:"reply_markup,omitempty"`
}

// Payload is the JSON contract returned to the chat-sending layer. Either
// Text (+ optional ReplyMarkup) is set, or Messages carries an ordered
// envelope where only the final chunk has navigation buttons.
type Payload struct {
	Text        string    `json:"text,omitempty"`
	ReplyMarkup *Markup   `json:"reply_markup,omitempty"`
	Messages    []Message `json:"messages,omitempty"`
}

// RenderText renders a payload for terminal inspection: message text plus a
// Buttons section listing each cell as "text => callback_data".
func RenderText(p Payload) string {
	if len(p.Messages) > 0 {
		var b strings.Builder
		for i, m := range p.Messages {
			fmt.Fprintf(&b, "[Message %d]\n", i+1)
			b.WriteString(m.Text)
			b.WriteString("\n")
			writeButtons(&b, m.ReplyMarkup)
			if i != len(p.Messages)-1 {
				b.WriteString("\n")
			}
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(p.Text)
	b.WriteString("\n")
	writeButtons(&b, p.ReplyMarkup)
	return b.String()
}

func writeButtons(b *strings.Builder, m *Markup) {
	if m == nil || len(m.InlineKeyboard) == 0 {
		return
	}
	b.WriteString("\nButtons:\n")
	for _, row := range m.InlineKeyboard {
		for _, btn := range row {
			fmt.Fprintf(b, "- %s => %s\n", btn.Text, btn.CallbackData)
		}
	}
}
