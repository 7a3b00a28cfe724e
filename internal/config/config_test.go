package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("SPENDLY_API_URL", "")
	t.Setenv("SPENDLY_PAGE_SIZE", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("SPENDLY_TOKEN_SCHEME", "")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIURL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "Bearer", cfg.TokenScheme)
}

func TestLoadClientOverrides(t *testing.T) {
	t.Setenv("SPENDLY_API_URL", "https://spend.example.com/api/")
	t.Setenv("SPENDLY_PAGE_SIZE", "25")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("SPENDLY_TOKEN_SCHEME", "Token")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "https://spend.example.com/api", cfg.APIURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "Token", cfg.TokenScheme)
}

func TestLoadClientRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non_numeric_page_size", "SPENDLY_PAGE_SIZE", "fifty"},
		{"zero_page_size", "SPENDLY_PAGE_SIZE", "0"},
		{"bad_timeout", "REQUEST_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadClient()
			assert.Error(t, err)
		})
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpirationDur)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.Same(t, cfg, Get())
}

func TestLoadServerRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	assert.Error(t, err)
}
