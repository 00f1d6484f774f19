package docs

import "strings"

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// Chunk splits text into overlapping windows of roughly chunkSize characters.
// Each cut prefers a sentence boundary near the window end so chunks stay
// readable; consecutive chunks share chunkOverlap characters of context.
func Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end >= len(text) {
			chunks = append(chunks, strings.TrimSpace(text[start:]))
			break
		}

		if cut := boundaryBefore(text, start, end); cut > start {
			end = cut
		}
		chunks = append(chunks, strings.TrimSpace(text[start:end]))

		next := end - chunkOverlap
		if next <= start {
			next = end
		}
		start = next
	}

	out := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// boundaryBefore finds the last sentence end in (start, end], falling back to
// the last space. Returns start when no boundary exists in the window.
func boundaryBefore(text string, start, end int) int {
	window := text[start:end]
	for _, sep := range []string{". ", "! ", "? ", "\n"} {
		if i := strings.LastIndex(window, sep); i >= 0 {
			return start + i + len(sep)
		}
	}
	if i := strings.LastIndex(window, " "); i >= 0 {
		return start + i + 1
	}
	return start
}
