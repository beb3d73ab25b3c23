package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"jobcurator/internal/config"
)

func TestSearchAPIKeyRoundTrip(t *testing.T) {
	keyring.MockInit()

	_, err := GetSearchAPIKey()
	require.ErrorIs(t, err, ErrNotFound)

	require.Error(t, SetSearchAPIKey("   "))
	require.NoError(t, SetSearchAPIKey(" abc123 "))

	key, err := GetSearchAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)

	require.NoError(t, DeleteSearchAPIKey())
	_, err = GetSearchAPIKey()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFillSearchAPIKey(t *testing.T) {
	keyring.MockInit()

	cfg := config.Default()
	require.NoError(t, FillSearchAPIKey(&cfg))
	assert.Empty(t, cfg.Search.APIKey, "keychain miss leaves the key empty")

	require.NoError(t, SetSearchAPIKey("from-keychain"))
	require.NoError(t, FillSearchAPIKey(&cfg))
	assert.Equal(t, "from-keychain", cfg.Search.APIKey)

	cfg.Search.APIKey = "from-env"
	require.NoError(t, FillSearchAPIKey(&cfg))
	assert.Equal(t, "from-env", cfg.Search.APIKey)
}
