package twitterimpl

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	twitterscraper "github.com/n0madic/twitter-scraper"
	"github.com/orgball2608/social-post-fetcher/internal/twitter"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

type fakeScraper struct {
	loggedIn     bool
	cookies      []*http.Cookie
	setCalls     int
	verifyCalls  int
	tweetsCalled bool
}

func (f *fakeScraper) SetCookies(cookies []*http.Cookie) {
	f.setCalls++
	f.cookies = cookies
}

func (f *fakeScraper) IsLoggedIn() bool {
	f.verifyCalls++
	return f.loggedIn
}

func (f *fakeScraper) GetProfile(username string) (twitterscraper.Profile, error) {
	if username == "ghost" {
		return twitterscraper.Profile{}, errors.New("user does not exist")
	}
	return twitterscraper.Profile{UserID: "42", Username: username}, nil
}

func (f *fakeScraper) GetTweets(ctx context.Context, user string, n int) <-chan *twitterscraper.TweetResult {
	f.tweetsCalled = true
	ch := make(chan *twitterscraper.TweetResult, 1)
	ch <- &twitterscraper.TweetResult{Tweet: twitterscraper.Tweet{ID: "1", Text: "hi"}}
	close(ch)
	return ch
}

func writeCookieFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "x_cookies.json")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestScraperSession_RejectedCookies(t *testing.T) {
	path := writeCookieFile(t, `{"auth_token": "expired-garbage", "ct0": "bogus"}`)
	sc := &fakeScraper{loggedIn: false}
	s := newScraperSession(sc, path, logger.NewNop())

	err := s.Load(context.Background())

	if !errors.Is(err, apperrors.ErrSession) {
		t.Fatalf("Load() = %v, want ErrSession", err)
	}
	if sc.setCalls != 1 || len(sc.cookies) != 2 {
		t.Errorf("cookies not handed to scraper: calls=%d cookies=%v", sc.setCalls, sc.cookies)
	}

	// Rejected cookies are checked again on the next call.
	_ = s.Load(context.Background())
	if sc.verifyCalls != 2 {
		t.Errorf("verify calls = %d, want 2", sc.verifyCalls)
	}
}

func TestScraperSession_VerifiesOncePerCookieFile(t *testing.T) {
	path := writeCookieFile(t, `{"auth_token": "tok", "ct0": "csrf"}`)
	sc := &fakeScraper{loggedIn: true}
	s := newScraperSession(sc, path, logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Load(ctx); err != nil {
			t.Fatalf("Load() #%d = %v", i, err)
		}
	}
	if sc.verifyCalls != 1 {
		t.Errorf("verify calls = %d, want 1", sc.verifyCalls)
	}

	if err := os.WriteFile(path, []byte(`{"auth_token": "fresh", "ct0": "csrf"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load() after refresh = %v", err)
	}
	if sc.verifyCalls != 2 {
		t.Errorf("verify calls after refresh = %d, want 2", sc.verifyCalls)
	}
}

func TestScraperSession_MissingOrBrokenFile(t *testing.T) {
	for name, path := range map[string]string{
		"missing": filepath.Join(t.TempDir(), "absent.json"),
		"broken":  writeCookieFile(t, `{"auth_token":`),
	} {
		t.Run(name, func(t *testing.T) {
			sc := &fakeScraper{loggedIn: true}
			s := newScraperSession(sc, path, logger.NewNop())

			if err := s.Load(context.Background()); !errors.Is(err, apperrors.ErrSession) {
				t.Errorf("Load() = %v, want ErrSession", err)
			}
			if sc.verifyCalls != 0 {
				t.Errorf("verify calls = %d, want 0", sc.verifyCalls)
			}
		})
	}
}

func TestScraperSession_Lookups(t *testing.T) {
	sc := &fakeScraper{loggedIn: true}
	s := newScraperSession(sc, "", logger.NewNop())
	ctx := context.Background()

	if _, err := s.UserByScreenName(ctx, "ghost"); !errors.Is(err, twitter.ErrUserNotFound) {
		t.Errorf("UserByScreenName(ghost) = %v, want ErrUserNotFound", err)
	}
	user, err := s.UserByScreenName(ctx, "bob")
	if err != nil || user.ID != "42" {
		t.Fatalf("UserByScreenName(bob) = %+v, %v", user, err)
	}

	tweets, err := s.UserTweets(ctx, user, -1)
	if err != nil || len(tweets) != 0 || sc.tweetsCalled {
		t.Errorf("UserTweets(-1) = %v, %v, scraper called=%v", tweets, err, sc.tweetsCalled)
	}
	tweets, err = s.UserTweets(ctx, user, 2)
	if err != nil || len(tweets) != 1 || tweets[0].FullText != "hi" {
		t.Errorf("UserTweets(2) = %+v, %v", tweets, err)
	}
}
