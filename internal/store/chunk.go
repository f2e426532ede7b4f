package store

import "strings"

const (
	// maxChunkLen bounds the byte length of a stored text chunk.
	maxChunkLen = 1000
	// minContentLen is the shortest page text worth storing at all.
	minContentLen = 100
)

// chunkText splits text into word-aligned chunks of at most maxLen bytes.
// Words are never split across chunks; a single word longer than maxLen
// becomes a chunk of its own.
func chunkText(text string, maxLen int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	var current []string
	length := 0
	for _, word := range words {
		next := len(word)
		if len(current) > 0 {
			next += length + 1
		}
		if next > maxLen && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			next = len(word)
		}
		current = append(current, word)
		length = next
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
