package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TRIP_HTTP_ADDR", "TRIP_LLM_PROVIDER", "TRIP_LLM_API_KEY", "TRIP_LLM_MODEL", "TRIP_LLM_BASE_URL",
		"TRIP_SEARCH_PROVIDER", "TRIP_SEARCH_API_KEY", "TRIP_SEARCH_ENDPOINT", "TRIP_MAPS_API_KEY",
		"TRIP_REDIS_ADDR", "TRIP_SESSION_TTL", "TRIP_UPSTREAM_TIMEOUT", "TRIP_LOG_LEVEL", "TRIP_LOG_FORMAT",
		"GROQ_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "SERPER_API_KEY", "GOOGLE_MAPS_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_LLM_API_KEY", "llm-key")
	t.Setenv("TRIP_SEARCH_API_KEY", "search-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, DefaultGroqModel, cfg.LLM.Model)
	assert.Equal(t, GroqBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, SearchSerper, cfg.Search.Provider)
	assert.Equal(t, DefaultSerperSearch, cfg.Search.Endpoint)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 60*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_HTTP_ADDR", ":9090")
	t.Setenv("TRIP_LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("SERPER_API_KEY", "serper-key")
	t.Setenv("TRIP_REDIS_ADDR", "localhost:6379")
	t.Setenv("TRIP_SESSION_TTL", "30m")
	t.Setenv("TRIP_UPSTREAM_TIMEOUT", "15s")
	t.Setenv("TRIP_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gem-key", cfg.LLM.APIKey)
	assert.Equal(t, DefaultGeminiModel, cfg.LLM.Model)
	assert.Empty(t, cfg.LLM.BaseURL)
	assert.Equal(t, "serper-key", cfg.Search.APIKey)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_PlacesSearchUsesMapsKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_LLM_API_KEY", "llm-key")
	t.Setenv("TRIP_SEARCH_PROVIDER", "places")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "maps-key", cfg.Search.APIKey)
	assert.Equal(t, "maps-key", cfg.Maps.APIKey)
}

func TestLoad_MissingKeys(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm api key")

	t.Setenv("TRIP_LLM_API_KEY", "llm-key")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search api key")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LLM = LLMConfig{Provider: ProviderOpenAI, APIKey: "k"}
		c.Search = SearchConfig{Provider: SearchSerper, APIKey: "k", Endpoint: DefaultSerperSearch}
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.Session.TTL = time.Hour
		c.UpstreamTimeout = time.Minute
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown llm provider", mutate: func(c *Config) { c.LLM.Provider = "claude" }, wantErr: "unsupported llm provider"},
		{name: "unknown search provider", mutate: func(c *Config) { c.Search.Provider = "bing" }, wantErr: "unsupported search provider"},
		{name: "empty serper endpoint", mutate: func(c *Config) { c.Search.Endpoint = "" }, wantErr: "search endpoint"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: "invalid log level"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "invalid log format"},
		{name: "zero ttl", mutate: func(c *Config) { c.Session.TTL = 0 }, wantErr: "session ttl"},
		{name: "zero timeout", mutate: func(c *Config) { c.UpstreamTimeout = 0 }, wantErr: "upstream timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
