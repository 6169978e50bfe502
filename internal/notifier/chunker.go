package notifier

import "strings"

// ChunkText splits text into chunks that are each <= maxLen, preferably
// on newlines. Leading newlines at chunk boundaries are stripped, so
// rejoining chunks with "\n" reconstructs the content. An empty input
// yields no chunks; a single line longer than maxLen is hard-split.
func ChunkText(text string, maxLen int) []string {
	var chunks []string
	remaining := text

	for remaining != "" {
		if len(remaining) <= maxLen {
			chunks = append(chunks, remaining)
			break
		}

		// Try to split at the last newline before maxLen.
		splitAt := strings.LastIndex(remaining[:maxLen], "\n")
		if splitAt == -1 {
			splitAt = maxLen
		}

		chunks = append(chunks, remaining[:splitAt])
		remaining = strings.TrimLeft(remaining[splitAt:], "\n")
	}

	return chunks
}
