package commandimpl

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
)

func TestFormatDigest(t *testing.T) {
	results := domain.BatchResult{
		domain.NewOkResult("https://x.com/bob", []domain.Post{
			{URL: "https://x.com/bob/status/2", Content: "line one\nline two"},
			{URL: "https://x.com/bob/status/1"},
		}),
		domain.NewOkResult("https://www.instagram.com/nasa/", nil),
		domain.NewFailedResult("https://www.facebook.com/VTV24", errors.New("upstream\nstatus 503")),
	}

	want := "https://x.com/bob\n2 posts\n- https://x.com/bob/status/2 line one line two\n- https://x.com/bob/status/1" +
		"\n\nhttps://www.instagram.com/nasa/\n0 posts" +
		"\n\nhttps://www.facebook.com/VTV24\nfailed: upstream status 503"

	if got := FormatDigest(results); got != want {
		t.Errorf("FormatDigest() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatDigest_TruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", 500)
	posts := make([]domain.Post, 0, 100)
	for i := 0; i < 100; i++ {
		posts = append(posts, domain.Post{URL: "https://x.com/bob/status/1", Content: long})
	}

	got := FormatDigest(domain.BatchResult{domain.NewOkResult("https://x.com/bob", posts)})

	if n := utf8.RuneCountInString(got); n > maxMessageRunes {
		t.Errorf("digest has %d runes, want <= %d", n, maxMessageRunes)
	}
	if strings.Contains(got, strings.Repeat("x", maxContentRunes)) {
		t.Error("post content was not truncated")
	}
}
