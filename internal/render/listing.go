package render

import (
	"strings"
	"time"

	"consultq/internal/api"
)

const listingFence = "```"

// FormatListing renders the full queue as tab-separated lines inside a
// code fence, oldest entry first. Entries that would push the result
// past maxLen bytes are dropped whole, never split mid-line, so the
// result stays within maxLen whenever maxLen covers the empty fenced
// block (7 bytes; config validation keeps the limit well above that).
// The second return reports whether any entry was dropped.
func FormatListing(entries []api.Entry, maxLen int) (string, bool) {
	var block strings.Builder
	block.WriteString(listingFence)
	block.WriteByte('\n')

	budget := maxLen - len(listingFence)
	truncated := false
	for _, entry := range entries {
		line := formatLine(entry)
		if block.Len()+len(line) > budget {
			truncated = true
			break
		}
		block.WriteString(line)
	}

	block.WriteString(listingFence)
	return block.String(), truncated
}

func formatLine(entry api.Entry) string {
	var line strings.Builder
	line.WriteString(entry.RequesterID)
	line.WriteByte('\t')
	line.WriteString(entry.CreatedTime().Format(time.RFC3339))
	line.WriteByte('\t')
	line.WriteString(entry.DisplayName)
	line.WriteByte('\t')
	line.WriteString(entry.Note)
	line.WriteByte('\n')
	return line.String()
}
