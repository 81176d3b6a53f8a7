package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/orgball2608/social-post-fetcher/pkg/config"
)

var ErrNoKeys = errors.New("no api keys configured")

// Selector hands out one API credential per upstream call.
//
//go:generate go run go.uber.org/mock/mockgen -source=credentials.go -destination=mocks/mock.go
type Selector interface {
	Next() string
}

// RandomSelector picks uniformly at random, with no affinity and no backoff
// for keys that recently failed.
type RandomSelector struct {
	keys []string
	intn func(n int) int
}

var _ Selector = (*RandomSelector)(nil)

func NewRandomSelector(keys []string) (*RandomSelector, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	return &RandomSelector{
		keys: append([]string(nil), keys...),
		intn: rand.IntN,
	}, nil
}

func (s *RandomSelector) Next() string {
	return s.keys[s.intn(len(s.keys))]
}

// LoadKeys reads a JSON array of API keys. Blank entries are dropped.
func LoadKeys(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read api keys file: %w", err)
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("api keys file %s must be a JSON array of strings: %w", path, err)
	}

	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoKeys)
	}
	return keys, nil
}

// New loads the Facebook provider key pool named in the config.
func New(cfg *config.Config) (*RandomSelector, error) {
	keys, err := LoadKeys(cfg.Facebook.KeysPath)
	if err != nil {
		return nil, err
	}
	return NewRandomSelector(keys)
}
