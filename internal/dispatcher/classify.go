package dispatcher

import (
	"strings"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
)

var (
	twitterPrefixes   = []string{"https://x.com/", "https://twitter.com/"}
	facebookPrefixes  = []string{"https://www.facebook.com/"}
	instagramPrefixes = []string{"https://www.instagram.com/", "https://instagram.com/"}
)

// ParseURLs splits raw on newlines and drops blank lines.
func ParseURLs(raw string) []string {
	lines := strings.Split(raw, "\n")
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}

// Classify returns the platform of url and the handle its adapter expects:
// the account name for twitter and instagram, the full URL for facebook.
// A twitter URL without a path still classifies, with an empty handle.
func Classify(url string) (domain.Platform, string) {
	if rest, ok := cutAnyPrefix(url, twitterPrefixes); ok {
		return domain.PlatformTwitter, lastSegment(rest)
	}
	if _, ok := cutAnyPrefix(url, facebookPrefixes); ok {
		return domain.PlatformFacebook, url
	}
	if rest, ok := cutAnyPrefix(url, instagramPrefixes); ok {
		if name := lastSegment(rest); name != "" {
			return domain.PlatformInstagram, name
		}
	}
	return domain.PlatformUnknown, ""
}

func cutAnyPrefix(s string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest, true
		}
	}
	return "", false
}

func lastSegment(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}
