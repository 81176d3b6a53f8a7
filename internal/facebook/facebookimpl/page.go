package facebookimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/orgball2608/social-post-fetcher/internal/cache"
	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
)

const pageIDPath = "/page/page_id"

type pageIDResponse struct {
	PageID json.RawMessage `json:"page_id"`
}

// ResolvePageID maps a page URL to its numeric page id. Resolutions are cached
// without expiry; two concurrent misses may both reach the provider.
func (f *FacebookImpl) ResolvePageID(ctx context.Context, pageURL string) (string, error) {
	key := cache.FacebookPageIDKey(pageURL)

	if cached, ok, _ := f.cache.Get(ctx, key); ok {
		f.logger.Debug("Cache hit for Facebook page", "url", pageURL, "page_id", cached)
		return cached, nil
	}
	f.logger.Debug("Cache miss for Facebook page", "url", pageURL)

	var body pageIDResponse
	if err := f.getJSON(ctx, pageIDPath, url.Values{"url": {pageURL}}, &body); err != nil {
		return "", err
	}

	pageID, err := parsePageID(body.PageID)
	if err != nil {
		return "", apperrors.WrapWithCode(err, apperrors.CodeBadResponse, "resolve page id for "+pageURL)
	}

	_ = f.cache.Set(ctx, key, pageID)
	return pageID, nil
}

// parsePageID accepts the id as a JSON string or number.
func parsePageID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: page_id missing", apperrors.ErrBadResponse)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("%w: page_id empty", apperrors.ErrBadResponse)
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: page_id is neither string nor number", apperrors.ErrBadResponse)
	}
	return n.String(), nil
}
