package facebookimpl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/orgball2608/social-post-fetcher/internal/cache"
	"github.com/orgball2608/social-post-fetcher/internal/cache/cacheimpl"
	"github.com/orgball2608/social-post-fetcher/internal/credentials"
	"github.com/orgball2608/social-post-fetcher/internal/domain"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const pageURL = "https://www.facebook.com/VTV24"

type stubProvider struct {
	pageIDCalls atomic.Int32
	postsCalls  atomic.Int32
	keys        chan string

	pageIDStatus int
	postsStatus  int
	pageIDBody   string
	postsBody    string
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		keys:         make(chan string, 16),
		pageIDStatus: http.StatusOK,
		postsStatus:  http.StatusOK,
		pageIDBody:   `{"page_id": "100064"}`,
		postsBody: `{"results": [
			{"url": "https://www.facebook.com/VTV24/posts/1", "message": "first", "image": {"uri": "https://cdn/img1.jpg"}},
			{"url": "https://www.facebook.com/VTV24/posts/2", "message": "second", "video_files": {"video_hd_file": "https://cdn/v2.mp4"}},
			{"url": "https://www.facebook.com/VTV24/posts/3"},
			{"url": "https://www.facebook.com/VTV24/posts/4", "message": "fourth"}
		]}`,
	}
}

func (s *stubProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.keys <- r.Header.Get("x-rapidapi-key")
	if got := r.Header.Get("x-rapidapi-host"); got != "facebook-scraper3.p.rapidapi.com" {
		http.Error(w, "bad host header "+got, http.StatusBadRequest)
		return
	}

	switch r.URL.Path {
	case "/page/page_id":
		s.pageIDCalls.Add(1)
		if r.URL.Query().Get("url") != pageURL {
			http.Error(w, "unexpected url", http.StatusBadRequest)
			return
		}
		w.WriteHeader(s.pageIDStatus)
		_, _ = w.Write([]byte(s.pageIDBody))
	case "/page/posts":
		s.postsCalls.Add(1)
		if r.URL.Query().Get("page_id") != "100064" {
			http.Error(w, "unexpected page id", http.StatusBadRequest)
			return
		}
		w.WriteHeader(s.postsStatus)
		_, _ = w.Write([]byte(s.postsBody))
	default:
		http.NotFound(w, r)
	}
}

type fixture struct {
	fb       *FacebookImpl
	provider *stubProvider
	redis    *miniredis.Miniredis
}

func newFixture(t *testing.T, provider *stubProvider) *fixture {
	t.Helper()

	srv := httptest.NewServer(provider)
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	log := logger.NewNop()
	keys, err := credentials.NewRandomSelector([]string{"key-a", "key-b"})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	cfg := &config.Config{}
	cfg.Facebook.BaseURL = srv.URL
	cfg.Facebook.Host = "facebook-scraper3.p.rapidapi.com"
	cfg.Facebook.Timeout = 5 * time.Second
	cfg.Cache.TTL = cache.DefaultTTL

	fb := New(Opts{
		Config: cfg,
		Logger: log,
		Cache:  cacheimpl.NewResilient(cacheimpl.NewRedis(rc, log), log),
		Keys:   keys,
	})
	return &fixture{fb: fb, provider: provider, redis: mr}
}

func TestGetPagePosts_NormalizesAndTruncates(t *testing.T) {
	f := newFixture(t, newStubProvider())

	got := f.fb.GetPagePosts(context.Background(), pageURL, 3)

	want := domain.SourceResult{
		URL:    pageURL,
		Status: domain.StatusOK,
		Posts: []domain.Post{
			{URL: "https://www.facebook.com/VTV24/posts/1", Content: "first", Media: []string{"https://cdn/img1.jpg"}},
			{URL: "https://www.facebook.com/VTV24/posts/2", Content: "second", Media: []string{"https://cdn/v2.mp4"}},
			{URL: "https://www.facebook.com/VTV24/posts/3", Content: "", Media: []string{}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("result mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestGetPagePosts_SecondCallHitsCache(t *testing.T) {
	f := newFixture(t, newStubProvider())
	ctx := context.Background()

	first := f.fb.GetPagePosts(ctx, pageURL, 3)
	second := f.fb.GetPagePosts(ctx, pageURL, 3)

	if n := f.provider.postsCalls.Load(); n != 1 {
		t.Errorf("posts endpoint called %d times, want 1", n)
	}
	if n := f.provider.pageIDCalls.Load(); n != 1 {
		t.Errorf("page id endpoint called %d times, want 1", n)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestGetPagePosts_CachedRawPostsServeLargerCount(t *testing.T) {
	f := newFixture(t, newStubProvider())
	ctx := context.Background()

	_ = f.fb.GetPagePosts(ctx, pageURL, 1)
	got := f.fb.GetPagePosts(ctx, pageURL, 4)

	if len(got.Posts) != 4 {
		t.Errorf("len(posts) = %d, want 4", len(got.Posts))
	}
	if n := f.provider.postsCalls.Load(); n != 1 {
		t.Errorf("posts endpoint called %d times, want 1", n)
	}
}

func TestGetPagePosts_CacheKeysAndTTL(t *testing.T) {
	f := newFixture(t, newStubProvider())

	_ = f.fb.GetPagePosts(context.Background(), pageURL, 3)

	id, err := f.redis.Get("fb_page_id:" + pageURL)
	if err != nil || id != "100064" {
		t.Errorf("page id entry = (%q, %v), want 100064", id, err)
	}
	if ttl := f.redis.TTL("fb_page_id:" + pageURL); ttl != 0 {
		t.Errorf("page id ttl = %s, want none", ttl)
	}

	raw, err := f.redis.Get("fb_posts:100064")
	if err != nil {
		t.Fatalf("posts entry missing: %v", err)
	}
	var cached []map[string]any
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		t.Fatalf("cached posts are not a JSON array: %v", err)
	}
	if len(cached) != 4 {
		t.Errorf("cached %d raw posts, want all 4", len(cached))
	}
	if ttl := f.redis.TTL("fb_posts:100064"); ttl != 300*time.Second {
		t.Errorf("posts ttl = %s, want 5m0s", ttl)
	}
}

func TestGetPagePosts_PostsExpireAfterTTL(t *testing.T) {
	f := newFixture(t, newStubProvider())
	ctx := context.Background()

	_ = f.fb.GetPagePosts(ctx, pageURL, 3)
	f.redis.FastForward(301 * time.Second)
	_ = f.fb.GetPagePosts(ctx, pageURL, 3)

	if n := f.provider.postsCalls.Load(); n != 2 {
		t.Errorf("posts endpoint called %d times, want 2", n)
	}
	if n := f.provider.pageIDCalls.Load(); n != 1 {
		t.Errorf("page id endpoint called %d times, want 1 (resolution is permanent)", n)
	}
}

func TestGetPagePosts_DrawsKeyPerCall(t *testing.T) {
	f := newFixture(t, newStubProvider())

	_ = f.fb.GetPagePosts(context.Background(), pageURL, 3)
	close(f.provider.keys)

	n := 0
	for key := range f.provider.keys {
		n++
		if key != "key-a" && key != "key-b" {
			t.Errorf("unexpected key %q", key)
		}
	}
	if n != 2 {
		t.Errorf("saw %d upstream calls, want 2", n)
	}
}

func TestGetPagePosts_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*stubProvider)
	}{
		{"page id 5xx", func(s *stubProvider) { s.pageIDStatus = http.StatusBadGateway }},
		{"page id 429", func(s *stubProvider) { s.pageIDStatus = http.StatusTooManyRequests }},
		{"page id missing", func(s *stubProvider) { s.pageIDBody = `{}` }},
		{"page id not json", func(s *stubProvider) { s.pageIDBody = `<html>` }},
		{"posts 5xx", func(s *stubProvider) { s.postsStatus = http.StatusInternalServerError }},
		{"posts without results", func(s *stubProvider) { s.postsBody = `{"cursor": null}` }},
		{"post not an object", func(s *stubProvider) { s.postsBody = `{"results": ["oops"]}` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newStubProvider()
			tt.mutate(p)
			f := newFixture(t, p)

			got := f.fb.GetPagePosts(context.Background(), pageURL, 3)

			if got.URL != pageURL {
				t.Errorf("url = %q, want %q", got.URL, pageURL)
			}
			if got.Status != domain.StatusFailed {
				t.Errorf("status = %q, want failed", got.Status)
			}
			if got.Posts == nil || len(got.Posts) != 0 {
				t.Errorf("posts = %#v, want empty slice", got.Posts)
			}
			if got.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestGetPagePosts_FailedFetchIsNotCached(t *testing.T) {
	p := newStubProvider()
	p.postsStatus = http.StatusServiceUnavailable
	f := newFixture(t, p)

	_ = f.fb.GetPagePosts(context.Background(), pageURL, 3)

	if f.redis.Exists("fb_posts:100064") {
		t.Error("failed fetch must not populate the posts cache")
	}
}

func TestGetPagePosts_NumericPageID(t *testing.T) {
	p := newStubProvider()
	p.pageIDBody = `{"page_id": 100064}`
	f := newFixture(t, p)

	got := f.fb.GetPagePosts(context.Background(), pageURL, 3)
	if got.Status != domain.StatusOK {
		t.Fatalf("status = %q (%s), want ok", got.Status, got.Error)
	}
}

func TestGetPagePosts_CacheDownStillFetches(t *testing.T) {
	f := newFixture(t, newStubProvider())
	f.redis.Close()

	got := f.fb.GetPagePosts(context.Background(), pageURL, 3)
	if got.Status != domain.StatusOK || len(got.Posts) != 3 {
		t.Errorf("got status %q with %d posts, want ok with 3", got.Status, len(got.Posts))
	}
}
