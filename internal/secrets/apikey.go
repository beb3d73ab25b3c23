package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"

	"jobcurator/internal/config"
)

const (
	// KeyringService groups the app's secrets in the OS keychain.
	KeyringService = "jobcurator"

	searchAccount = "google-custom-search"
)

var ErrNotFound = errors.New("search API key not found in keychain")

func GetSearchAPIKey() (string, error) {
	key, err := keyring.Get(KeyringService, searchAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if strings.TrimSpace(key) == "" {
		return "", ErrNotFound
	}
	return key, nil
}

func SetSearchAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, searchAccount, strings.TrimSpace(key))
}

func DeleteSearchAPIKey() error {
	return keyring.Delete(KeyringService, searchAccount)
}

// FillSearchAPIKey falls back to the keychain when neither the file nor the
// environment provided a key. A keychain miss is not an error here;
// config.RequireSearchCredentials reports it later.
func FillSearchAPIKey(cfg *config.Config) error {
	if strings.TrimSpace(cfg.Search.APIKey) != "" {
		return nil
	}
	key, err := GetSearchAPIKey()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	cfg.Search.APIKey = key
	return nil
}
