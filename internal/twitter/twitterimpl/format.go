package twitterimpl

import (
	"strings"

	"github.com/orgball2608/social-post-fetcher/internal/twitter"
)

const (
	quoteOpen  = "----- QUOTED_TWEET -----"
	quoteClose = "-----"
)

// FormatContent returns the text of a tweet: the original text for retweets,
// followed by the quoted tweet in a delimited block when there is one.
func FormatContent(tw twitter.Tweet) string {
	content := tw.FullText
	if tw.Retweeted != nil {
		content = tw.Retweeted.FullText
	}
	if tw.Quote == nil {
		return content
	}

	var sb strings.Builder
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(quoteOpen)
	sb.WriteString("\n")
	sb.WriteString(tw.Quote.FullText)
	sb.WriteString("\n")
	sb.WriteString(quoteClose)
	return sb.String()
}
