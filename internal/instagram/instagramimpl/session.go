package instagramimpl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/social-post-fetcher/internal/instagram"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
)

// GoinstaSession reads feeds through an exported goinsta session.
type GoinstaSession struct {
	mu          sync.Mutex
	client      *goinsta.Instagram
	sessionPath string
	logger      logger.Logger
}

var _ instagram.Session = (*GoinstaSession)(nil)

func NewGoinstaSession(cfg *config.Config, log logger.Logger) *GoinstaSession {
	return &GoinstaSession{
		sessionPath: cfg.Instagram.SessionPath,
		logger:      log.WithComponent("InstagramSession"),
	}
}

// Load imports the session file once. A failed import is retried on the next call.
func (s *GoinstaSession) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}
	if _, err := os.Stat(s.sessionPath); err != nil {
		return fmt.Errorf("session file not found: %w", err)
	}

	client, err := goinsta.Import(s.sessionPath)
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}
	s.client = client
	s.logger.Info("Instagram session imported", "path", s.sessionPath)
	return nil
}

func (s *GoinstaSession) UserFeed(ctx context.Context, username string, count int) ([]instagram.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil, errors.New("instagram session not loaded")
	}

	user, err := s.client.Profiles.ByName(username)
	if err != nil {
		if isNotFound(err) {
			return nil, instagram.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", username, err)
	}
	if user.IsPrivate {
		return nil, instagram.ErrPrivateAccount
	}

	feed := user.Feed()
	items := make([]instagram.Item, 0, count)
	for len(items) < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !feed.Next() {
			break
		}
		for i := range feed.Items {
			if len(items) == count {
				break
			}
			items = append(items, convertItem(feed.Items[i]))
		}
	}
	if err := feed.Error(); err != nil && !errors.Is(err, goinsta.ErrNoMore) {
		return nil, fmt.Errorf("failed to read feed of %s: %w", username, err)
	}
	return items, nil
}

func convertItem(it *goinsta.Item) instagram.Item {
	out := instagram.Item{
		Code:     it.Code,
		Caption:  it.Caption.Text,
		ImageURL: it.Images.GetBest(),
	}
	if len(it.Videos) > 0 {
		out.VideoURL = it.Videos[0].URL
	}
	for i := range it.CarouselMedia {
		out.Carousel = append(out.Carousel, convertItem(&it.CarouselMedia[i]))
	}
	return out
}

func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404")
}
