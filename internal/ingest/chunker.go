// ABOUTME: Deterministic sliding-window text chunker
// ABOUTME: Fixed-size chunks with exact character overlap at boundaries
package ingest

// Chunk splits text into an ordered sequence of windows of at most size
// runes, consecutive windows sharing exactly overlap runes. The same input
// always yields the same sequence. Text shorter than size yields a single
// chunk equal to the text; empty text yields nothing.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	runes := []rune(text)
	var chunks []string

	for start := 0; start < len(runes); start += size - overlap {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}
