package commandimpl

import (
	"fmt"
	"strings"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/pkg/formatter"
)

const (
	maxMessageRunes = 4096
	maxContentRunes = 80
	maxErrorRunes   = 120
)

// FormatDigest renders one block per source: its URL, status and post links.
func FormatDigest(results domain.BatchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, formatResult(r))
	}
	return formatter.Truncate(strings.Join(blocks, "\n\n"), maxMessageRunes)
}

func formatResult(r domain.SourceResult) string {
	var sb strings.Builder
	sb.WriteString(r.URL)
	sb.WriteString("\n")

	switch r.Status {
	case domain.StatusNotFound:
		sb.WriteString("not found")
		return sb.String()
	case domain.StatusFailed:
		sb.WriteString("failed")
		if r.Error != "" {
			sb.WriteString(": ")
			sb.WriteString(formatter.Truncate(formatter.SingleLine(r.Error), maxErrorRunes))
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "%d %s", len(r.Posts), formatter.Plural(len(r.Posts), "post"))
	for _, p := range r.Posts {
		sb.WriteString("\n- ")
		sb.WriteString(p.URL)
		if content := formatter.SingleLine(p.Content); content != "" {
			sb.WriteString(" ")
			sb.WriteString(formatter.Truncate(content, maxContentRunes))
		}
	}
	return sb.String()
}
