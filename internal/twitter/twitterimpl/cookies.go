package twitterimpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
)

type cookieRecord struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	Secure   bool   `json:"secure"`
	HttpOnly bool   `json:"httpOnly"`
}

// readCookies loads an exported session file.
func readCookies(path string) ([]*http.Cookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}
	return parseCookies(data)
}

// parseCookies accepts two layouts: a flat {"name": "value"} object and an
// array of cookie objects.
func parseCookies(data []byte) ([]*http.Cookie, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("cookie file is empty")
	}

	var cookies []*http.Cookie
	switch data[0] {
	case '{':
		var flat map[string]string
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, fmt.Errorf("parse cookie file: %w", err)
		}
		names := make([]string, 0, len(flat))
		for name := range flat {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cookies = append(cookies, &http.Cookie{Name: name, Value: flat[name], Path: "/"})
		}
	case '[':
		var records []cookieRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse cookie file: %w", err)
		}
		for _, r := range records {
			if r.Name == "" {
				continue
			}
			path := r.Path
			if path == "" {
				path = "/"
			}
			cookies = append(cookies, &http.Cookie{
				Name:     r.Name,
				Value:    r.Value,
				Domain:   r.Domain,
				Path:     path,
				Secure:   r.Secure,
				HttpOnly: r.HttpOnly,
			})
		}
	default:
		return nil, errors.New("cookie file must hold a JSON object or array")
	}

	if len(cookies) == 0 {
		return nil, errors.New("cookie file holds no cookies")
	}
	return cookies, nil
}
