package facebookimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
)

const postsPath = "/page/posts"

type postsResponse struct {
	Results *[]json.RawMessage `json:"results"`
}

// FetchRawPosts returns the provider's post objects for pageID untouched. The raw
// list is what gets cached, so a hit can serve any post count.
func (f *FacebookImpl) FetchRawPosts(ctx context.Context, pageID string) ([]json.RawMessage, error) {
	key := cache.FacebookPostsKey(pageID)

	if cached, ok, _ := f.cache.Get(ctx, key); ok {
		var posts []json.RawMessage
		if err := json.Unmarshal([]byte(cached), &posts); err == nil {
			f.logger.Debug("Cache hit for Facebook posts", "page_id", pageID)
			return posts, nil
		}
		f.logger.Warn("Discarding unreadable cached Facebook posts", "page_id", pageID)
	}
	f.logger.Debug("Cache miss for Facebook posts", "page_id", pageID)

	var body postsResponse
	if err := f.getJSON(ctx, postsPath, url.Values{"page_id": {pageID}}, &body); err != nil {
		return nil, err
	}
	if body.Results == nil {
		return nil, apperrors.WrapWithCode(fmt.Errorf("%w: results missing", apperrors.ErrBadResponse), apperrors.CodeBadResponse, "fetch posts for page "+pageID)
	}
	posts := *body.Results

	encoded, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("encode posts for cache: %w", err)
	}
	_ = f.cache.SetWithTTL(ctx, key, string(encoded), f.ttl)

	return posts, nil
}
