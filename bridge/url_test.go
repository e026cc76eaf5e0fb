package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBaseURLDefaultsWhenEmpty(t *testing.T) {
	got, err := ValidateBaseURL("", "app_123")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, got)
}

func TestValidateBaseURLAcceptsProductionHTTPS(t *testing.T) {
	_, err := ValidateBaseURL("https://bridge.worldcoin.org", "app_123")
	assert.NoError(t, err)
}

func TestValidateBaseURLRejectsNonHTTPS(t *testing.T) {
	_, err := ValidateBaseURL("http://bridge.worldcoin.org", "app_123")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestValidateBaseURLRejectsExplicitPort(t *testing.T) {
	_, err := ValidateBaseURL("https://bridge.worldcoin.org:8443", "app_123")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestValidateBaseURLRejectsPath(t *testing.T) {
	_, err := ValidateBaseURL("https://bridge.worldcoin.org/api", "app_123")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestValidateBaseURLRejectsQuery(t *testing.T) {
	_, err := ValidateBaseURL("https://bridge.worldcoin.org?x=1", "app_123")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestValidateBaseURLRejectsFragment(t *testing.T) {
	_, err := ValidateBaseURL("https://bridge.worldcoin.org#f", "app_123")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestValidateBaseURLStagingAllowsLocalhost(t *testing.T) {
	got, err := ValidateBaseURL("http://localhost:3000", "app_staging_abc")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", got)
}

func TestValidateBaseURLProductionRejectsLocalhostEvenIfStagingSchemeRequested(t *testing.T) {
	_, err := ValidateBaseURL("http://localhost:3000", "app_123")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
