package dispatcherimpl

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/domain"
	mock_facebook "github.com/orgball2608/social-post-fetcher/internal/facebook/mocks"
	mock_instagram "github.com/orgball2608/social-post-fetcher/internal/instagram/mocks"
	mock_twitter "github.com/orgball2608/social-post-fetcher/internal/twitter/mocks"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	d  *DispatcherImpl
	fb *mock_facebook.MockClient
	tw *mock_twitter.MockClient
	ig *mock_instagram.MockClient
}

func newFixture(t *testing.T, concurrency int, timeout time.Duration) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		fb: mock_facebook.NewMockClient(ctrl),
		tw: mock_twitter.NewMockClient(ctrl),
		ig: mock_instagram.NewMockClient(ctrl),
	}
	cfg := &config.Config{}
	cfg.Fetcher.PostCount = 3
	cfg.Fetcher.Concurrency = concurrency
	cfg.Fetcher.Timeout = timeout

	f.d = New(Opts{
		Config:    cfg,
		Logger:    logger.NewNop(),
		Facebook:  f.fb,
		Twitter:   f.tw,
		Instagram: f.ig,
	})
	return f
}

func okResult(url string) domain.SourceResult {
	return domain.NewOkResult(url, []domain.Post{{URL: url + "/1", Content: "c", Media: []string{}}})
}

func TestDispatch_SkipsUnknownAndKeepsOrder(t *testing.T) {
	f := newFixture(t, 4, time.Second)
	ctx := context.Background()

	fbURL := "https://www.facebook.com/VTV24"
	f.fb.EXPECT().GetPagePosts(gomock.Any(), fbURL, 3).DoAndReturn(
		func(context.Context, string, int) domain.SourceResult {
			time.Sleep(20 * time.Millisecond)
			return okResult(fbURL)
		})
	f.tw.EXPECT().GetUserPosts(gomock.Any(), "bob", 3).Return(okResult("https://x.com/bob"))

	got := f.d.Dispatch(ctx, fbURL+"\nnot-a-url\nhttps://x.com/bob")

	want := domain.BatchResult{okResult(fbURL), okResult("https://x.com/bob")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dispatch() mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestDispatch_RoutesEveryPlatform(t *testing.T) {
	f := newFixture(t, 2, time.Second)

	f.tw.EXPECT().GetUserPosts(gomock.Any(), "alice", 3).Return(okResult("https://x.com/alice"))
	f.ig.EXPECT().GetUserPosts(gomock.Any(), "nasa", 3).Return(okResult("https://www.instagram.com/nasa/"))
	f.fb.EXPECT().GetPagePosts(gomock.Any(), "https://www.facebook.com/a", 3).Return(okResult("https://www.facebook.com/a"))

	got := f.d.Dispatch(context.Background(), "https://twitter.com/alice/\nhttps://www.instagram.com/nasa/\nhttps://www.facebook.com/a")

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[1].URL != "https://www.instagram.com/nasa/" {
		t.Errorf("second result = %q", got[1].URL)
	}
}

func TestDispatch_EmptyInput(t *testing.T) {
	f := newFixture(t, 4, time.Second)

	for _, raw := range []string{"", "\n\n", "foo\nbar"} {
		got := f.d.Dispatch(context.Background(), raw)
		if got == nil || len(got) != 0 {
			t.Errorf("Dispatch(%q) = %#v, want empty non-nil", raw, got)
		}
	}
}

func TestDispatch_BoundsConcurrency(t *testing.T) {
	f := newFixture(t, 2, time.Second)

	var inFlight, peak atomic.Int32
	f.tw.EXPECT().GetUserPosts(gomock.Any(), gomock.Any(), 3).DoAndReturn(
		func(_ context.Context, name string, _ int) domain.SourceResult {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return okResult("https://x.com/" + name)
		}).Times(6)

	raw := "https://x.com/a\nhttps://x.com/b\nhttps://x.com/c\nhttps://x.com/d\nhttps://x.com/e\nhttps://x.com/f"
	got := f.d.Dispatch(context.Background(), raw)

	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
	for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
		if got[i].URL != "https://x.com/"+name {
			t.Errorf("result %d url = %q", i, got[i].URL)
		}
	}
}

func TestDispatch_TimeoutBecomesFailedResult(t *testing.T) {
	f := newFixture(t, 2, 20*time.Millisecond)

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	f.tw.EXPECT().GetUserPosts(gomock.Any(), "slow", 3).DoAndReturn(
		func(context.Context, string, int) domain.SourceResult {
			<-release
			return okResult("https://x.com/slow")
		})
	f.tw.EXPECT().GetUserPosts(gomock.Any(), "fast", 3).Return(okResult("https://x.com/fast"))

	got := f.d.Dispatch(context.Background(), "https://twitter.com/slow\nhttps://x.com/fast")

	if got[0].Status != domain.StatusFailed || got[0].URL != "https://x.com/slow" {
		t.Errorf("slow result = %+v, want failed", got[0])
	}
	if got[1].Status != domain.StatusOK {
		t.Errorf("fast result = %+v, want ok", got[1])
	}
}

func TestDispatch_PanicBecomesFailedResult(t *testing.T) {
	f := newFixture(t, 1, time.Second)

	f.ig.EXPECT().GetUserPosts(gomock.Any(), "boom", 3).DoAndReturn(
		func(context.Context, string, int) domain.SourceResult {
			panic("adapter bug")
		})

	got := f.d.Dispatch(context.Background(), "https://instagram.com/boom")

	if len(got) != 1 || got[0].Status != domain.StatusFailed {
		t.Fatalf("got %+v, want one failed result", got)
	}
	if got[0].URL != "https://www.instagram.com/boom/" {
		t.Errorf("url = %q, want the canonical profile url", got[0].URL)
	}
}

func TestDispatch_BareTwitterURLsStillProduceResults(t *testing.T) {
	f := newFixture(t, 2, time.Second)

	f.tw.EXPECT().GetUserPosts(gomock.Any(), "", 3).Return(domain.NewNotFoundResult("https://x.com/")).Times(3)

	got := f.d.Dispatch(context.Background(), "https://x.com/\nhttps://twitter.com/\nhttps://x.com/?x")

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}
	for i, r := range got {
		if r.Status != domain.StatusNotFound {
			t.Errorf("result %d status = %q, want not_found", i, r.Status)
		}
	}
}
