package delivery

import "strings"

// DefaultChunkSize is the per-message character budget, kept under the
// Telegram 4096 limit to leave headroom for client decoration.
const DefaultChunkSize = 3900

// splitChunks splits text into send-ordered chunks of at most size bytes,
// preferring to break at the last newline inside the budget.
func splitChunks(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	rest := text
	for len(rest) > size {
		cut := strings.LastIndex(rest[:size], "\n")
		if cut <= 0 {
			cut = size
		}
		chunk := strings.TrimRight(rest[:cut], " \t\r\n")
		if chunk == "" {
			chunk = rest[:size]
			cut = size
		}
		chunks = append(chunks, chunk)
		rest = strings.TrimLeft(rest[cut:], "\n")
	}
	if rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}
