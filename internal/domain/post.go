package domain

import "encoding/json"

// Post is a single normalized post, whatever platform it came from.
type Post struct {
	URL     string   `json:"url"`
	Content string   `json:"content"`
	Media   []string `json:"media"`
}

// MarshalJSON keeps media an array even when there is none.
func (p Post) MarshalJSON() ([]byte, error) {
	type alias Post
	if p.Media == nil {
		p.Media = []string{}
	}
	return json.Marshal(alias(p))
}
