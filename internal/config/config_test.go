package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvWithFallback(t *testing.T) {
	tests := []struct {
		name          string
		primary       string
		primaryValue  string
		fallback      string
		fallbackValue string
		expected      string
	}{
		{
			name:          "primary exists",
			primary:       "TEST_PRIMARY_VAR",
			primaryValue:  "primary_value",
			fallback:      "TEST_FALLBACK_VAR",
			fallbackValue: "fallback_value",
			expected:      "primary_value",
		},
		{
			name:          "primary empty, fallback exists",
			primary:       "TEST_PRIMARY_EMPTY",
			primaryValue:  "",
			fallback:      "TEST_FALLBACK_EXISTS",
			fallbackValue: "fallback_value",
			expected:      "fallback_value",
		},
		{
			name:          "both empty",
			primary:       "TEST_BOTH_EMPTY_P",
			primaryValue:  "",
			fallback:      "TEST_BOTH_EMPTY_F",
			fallbackValue: "",
			expected:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.primaryValue != "" {
				t.Setenv(tt.primary, tt.primaryValue)
			}
			if tt.fallbackValue != "" {
				t.Setenv(tt.fallback, tt.fallbackValue)
			}

			result := getEnvWithFallback(tt.primary, tt.fallback)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_OK", "42")
	t.Setenv("TEST_INT_BAD", "abc")
	t.Setenv("TEST_INT_NEG", "-3")

	assert.Equal(t, 42, getEnvInt("TEST_INT_OK", 7))
	assert.Equal(t, 7, getEnvInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, getEnvInt("TEST_INT_NEG", 7))
	assert.Equal(t, 7, getEnvInt("TEST_INT_MISSING", 7))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " a, ,b ,c")
	t.Setenv("TEST_LIST_BLANK", " , ")

	assert.Equal(t, []string{"a", "b", "c"}, getEnvList("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, getEnvList("TEST_LIST_BLANK", []string{"x"}))
	assert.Equal(t, []string{"x"}, getEnvList("TEST_LIST_MISSING", []string{"x"}))
}

func TestOwnersFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "default", value: "", expected: []string{"joao", "vitor"}},
		{name: "custom pair", value: "ana,bruno", expected: []string{"ana", "bruno"}},
		{name: "single owner falls back", value: "ana", expected: []string{"joao", "vitor"}},
		{name: "same owner twice falls back", value: "ana,ana", expected: []string{"joao", "vitor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OWNERS", tt.value)
			assert.Equal(t, tt.expected, ownersFromEnv())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LEADS_TABLE", "CASA_DADOS_SEARCH_URL", "DETAILS_CACHE_TTL_HOURS", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "leads", cfg.LeadsTable)
	assert.Equal(t, DefaultSearchURL, cfg.CasaDadosSearchURL)
	assert.Equal(t, 24*time.Hour, cfg.DetailsCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CASA_DADOS_API_KEY", "key-123")
	t.Setenv("SUPABASE_SECRET_KEY", "")
	t.Setenv("SUPABASE_KEY", "legacy-key")
	t.Setenv("ENRICH_MIN_DELAY_MS", "250")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "key-123", cfg.CasaDadosAPIKey)
	assert.Equal(t, "legacy-key", cfg.SupabaseKey)
	assert.Equal(t, 250*time.Millisecond, cfg.EnrichMinDelay)
}
