package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// URLCache persists discovered job URLs as a JSON array of strings.
type URLCache struct {
	path string
}

func NewURLCache(path string) *URLCache { return &URLCache{path: path} }

func (c *URLCache) Path() string { return c.path }

// Load returns the cached URLs. A missing file yields an error wrapping os.ErrNotExist.
func (c *URLCache) Load() ([]string, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read url cache: %w", err)
	}
	var urls []string
	if err := json.Unmarshal(b, &urls); err != nil {
		return nil, fmt.Errorf("decode url cache %s: %w", c.path, err)
	}
	return urls, nil
}

func (c *URLCache) Save(urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	b, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	return writeFileAtomic(c.path, b)
}
