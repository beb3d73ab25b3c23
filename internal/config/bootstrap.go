package config

import (
	"errors"
	"os"
)

// EnsureUserConfig writes the default configuration to path unless a file
// already exists there. force overwrites it. created reports whether a
// file was written.
func EnsureUserConfig(path string, force bool) (created bool, err error) {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
	}
	if err := SaveAtomic(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}
