package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.PostingLockTTL)
	assert.Equal(t, LockModeRequired, cfg.PostingLockMode)
	assert.Equal(t, CodeRangeConfig{Preferred: 2100, Min: 2100, Max: 2999}, cfg.TaxPayableCodes)
	assert.Equal(t, CodeRangeConfig{Preferred: 1210, Min: 1210, Max: 1999}, cfg.TaxReceivableCodes)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("POSTING_LOCK_TTL", "45s")
	t.Setenv("POSTING_LOCK_MODE", "BEST_EFFORT")
	t.Setenv("TAX_PAYABLE_CODE_MIN", "2200")
	t.Setenv("TAX_PAYABLE_CODE_MAX", "2299")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.PostingLockTTL)
	assert.Equal(t, LockModeBestEffort, cfg.PostingLockMode)
	assert.Equal(t, 2200, cfg.TaxPayableCodes.Min)
	assert.Equal(t, 2299, cfg.TaxPayableCodes.Max)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidTTLFallsBack(t *testing.T) {
	t.Setenv("POSTING_LOCK_TTL", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.PostingLockTTL)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown lock mode", env: map[string]string{"POSTING_LOCK_MODE": "sometimes"}},
		{name: "inverted payable range", env: map[string]string{"TAX_PAYABLE_CODE_MIN": "2999", "TAX_PAYABLE_CODE_MAX": "2100"}},
		{name: "zero receivable min", env: map[string]string{"TAX_RECEIVABLE_CODE_MIN": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
