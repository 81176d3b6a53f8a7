package domain

import "encoding/json"

type Status string

const (
	StatusOK       Status = "ok"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// SourceResult is the outcome of fetching one profile or page. It always
// exists for a recognized URL; Posts is empty unless Status is StatusOK.
type SourceResult struct {
	URL    string `json:"url"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	Posts  []Post `json:"posts"`
}

// BatchResult holds one SourceResult per recognized input URL, in input order.
type BatchResult []SourceResult

func NewOkResult(url string, posts []Post) SourceResult {
	if posts == nil {
		posts = []Post{}
	}
	return SourceResult{URL: url, Status: StatusOK, Posts: posts}
}

func NewNotFoundResult(url string) SourceResult {
	return SourceResult{URL: url, Status: StatusNotFound, Posts: []Post{}}
}

func NewFailedResult(url string, err error) SourceResult {
	r := SourceResult{URL: url, Status: StatusFailed, Posts: []Post{}}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// MarshalJSON keeps posts an array even when there is none.
func (r SourceResult) MarshalJSON() ([]byte, error) {
	type alias SourceResult
	if r.Posts == nil {
		r.Posts = []Post{}
	}
	return json.Marshal(alias(r))
}

// UnmarshalJSON accepts entries written before status existed and treats them as ok.
func (r *SourceResult) UnmarshalJSON(data []byte) error {
	type alias SourceResult
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = StatusOK
	}
	if a.Posts == nil {
		a.Posts = []Post{}
	}
	*r = SourceResult(a)
	return nil
}
