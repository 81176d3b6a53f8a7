package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapWithCode(t *testing.T) {
	if WrapWithCode(nil, CodeUpstream, "x") != nil {
		t.Error("wrapping nil should return nil")
	}

	cause := &HTTPStatusError{StatusCode: 503, URL: "https://api/page"}
	err := fmt.Errorf("fetch posts: %w", WrapWithCode(cause, CodeUpstream, "get page id"))

	if got := err.Error(); got != "fetch posts: get page id: https://api/page: status 503" {
		t.Errorf("Error() = %q", got)
	}
	if GetCode(err) != CodeUpstream {
		t.Errorf("GetCode() = %q, want %q", GetCode(err), CodeUpstream)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Error("HTTPStatusError should match ErrUpstream")
	}
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 503 {
		t.Errorf("errors.As = %+v", statusErr)
	}
}

func TestGetCode_Plain(t *testing.T) {
	if got := GetCode(errors.New("boom")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}
