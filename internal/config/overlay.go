package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BoardsFile is a standalone list of Greenhouse board slugs.
type BoardsFile struct {
	Boards []string `yaml:"boards"`
}

// OverlayBoards replaces cfg.Boards.Known with the slugs in path. A missing
// file leaves the config untouched.
func OverlayBoards(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		// Missing boards file should not kill startup
		return nil
	}

	var bf BoardsFile
	if err := yaml.Unmarshal(b, &bf); err != nil {
		return fmt.Errorf("parse boards file %s: %w", path, err)
	}

	if len(bf.Boards) > 0 {
		cfg.Boards.Known = bf.Boards
	}
	return nil
}
