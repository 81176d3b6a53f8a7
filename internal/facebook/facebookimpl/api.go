package facebookimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	apperrors "github.com/orgball2608/social-post-fetcher/pkg/errors"
)

const maxBodySize = 8 << 20

// getJSON issues an authenticated GET against the provider and decodes the body into v.
// Every call draws a fresh key from the pool.
func (f *FacebookImpl) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	endpoint := f.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-rapidapi-host", f.host)
	req.Header.Set("x-rapidapi-key", f.keys.Next())
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return apperrors.WrapWithCode(fmt.Errorf("%w: %v", apperrors.ErrUpstream, err), apperrors.CodeUpstream, "GET "+path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.WrapWithCode(&apperrors.HTTPStatusError{StatusCode: resp.StatusCode, URL: f.baseURL + path}, apperrors.CodeUpstream, "GET "+path)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(v); err != nil {
		return apperrors.WrapWithCode(fmt.Errorf("%w: %v", apperrors.ErrBadResponse, err), apperrors.CodeBadResponse, "decode "+path)
	}
	return nil
}
