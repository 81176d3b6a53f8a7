package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeKeys(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rapid_api_keys.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	return path
}

func TestNewRandomSelector_Empty(t *testing.T) {
	if _, err := NewRandomSelector(nil); !errors.Is(err, ErrNoKeys) {
		t.Fatalf("err = %v, want ErrNoKeys", err)
	}
}

func TestRandomSelector_UsesInjectedSource(t *testing.T) {
	s, err := NewRandomSelector([]string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	picks := []int{2, 0, 1}
	s.intn = func(n int) int {
		if n != 3 {
			t.Errorf("intn(%d), want intn(3)", n)
		}
		p := picks[0]
		picks = picks[1:]
		return p
	}

	for _, want := range []string{"c", "a", "b"} {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
}

func TestRandomSelector_CoversPool(t *testing.T) {
	s, _ := NewRandomSelector([]string{"a", "b"})

	seen := map[string]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		seen[s.Next()] = true
	}
	if len(seen) != 2 {
		t.Errorf("saw %v after 200 draws, want both keys", seen)
	}
}

func TestLoadKeys(t *testing.T) {
	path := writeKeys(t, `["key-1", "  ", "key-2"]`)

	keys, err := LoadKeys(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(keys) != 2 || keys[0] != "key-1" || keys[1] != "key-2" {
		t.Errorf("keys = %v, want [key-1 key-2]", keys)
	}
}

func TestLoadKeys_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not an array", `{"key": "x"}`},
		{"only blanks", `["", " "]`},
		{"empty array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadKeys(writeKeys(t, tt.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := LoadKeys(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
