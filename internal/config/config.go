// README: Config loader; viper defaults, TRIP_* env overrides, optional config.yml and .env.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	SearchSerper = "serper"
	SearchPlaces = "places"
)

const (
	GroqBaseURL         = "https://api.groq.com/openai/v1"
	DefaultGroqModel    = "llama-3.3-70b-versatile"
	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultGeminiModel  = "gemini-2.0-flash"
	DefaultSerperSearch = "https://google.serper.dev/search"
)

type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

type SearchConfig struct {
	Provider string
	APIKey   string
	Endpoint string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Session struct {
		TTL time.Duration
	}
	Maps struct {
		APIKey string
	}
	Log struct {
		Level  string
		Format string
	}
	LLM             LLMConfig
	Search          SearchConfig
	UpstreamTimeout time.Duration
}

// Load reads .env (if present), then config.yml (if present), then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("TRIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindFallbacks(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("llm.provider", ProviderGroq)
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("search.provider", SearchSerper)
	v.SetDefault("search.endpoint", DefaultSerperSearch)
	v.SetDefault("upstream.timeout", "60s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// bindFallbacks lets the conventional vendor variables stand in for the TRIP_* ones.
func bindFallbacks(v *viper.Viper) {
	_ = v.BindEnv("groq.api_key", "GROQ_API_KEY")
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("search.api_key", "TRIP_SEARCH_API_KEY", "SERPER_API_KEY")
	_ = v.BindEnv("maps.api_key", "TRIP_MAPS_API_KEY", "GOOGLE_MAPS_API_KEY")
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Session.TTL = v.GetDuration("session.ttl")
	cfg.Maps.APIKey = v.GetString("maps.api_key")
	cfg.Log.Level = strings.ToLower(v.GetString("log.level"))
	cfg.Log.Format = strings.ToLower(v.GetString("log.format"))
	cfg.UpstreamTimeout = v.GetDuration("upstream.timeout")

	cfg.LLM = LLMConfig{
		Provider:    strings.ToLower(v.GetString("llm.provider")),
		APIKey:      v.GetString("llm.api_key"),
		Model:       v.GetString("llm.model"),
		BaseURL:     v.GetString("llm.base_url"),
		Temperature: float32(v.GetFloat64("llm.temperature")),
	}
	cfg.Search = SearchConfig{
		Provider: strings.ToLower(v.GetString("search.provider")),
		APIKey:   v.GetString("search.api_key"),
		Endpoint: v.GetString("search.endpoint"),
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v.GetString(cfg.LLM.Provider + ".api_key")
	}
	applyProviderDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyProviderDefaults(cfg *Config) {
	switch cfg.LLM.Provider {
	case ProviderGroq:
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = DefaultGroqModel
		}
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = GroqBaseURL
		}
	case ProviderOpenAI:
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = DefaultOpenAIModel
		}
	case ProviderGemini:
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = DefaultGeminiModel
		}
	}
	if cfg.Search.Provider == SearchPlaces && cfg.Search.APIKey == "" {
		cfg.Search.APIKey = cfg.Maps.APIKey
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported llm provider %q (use groq, openai or gemini)", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return errors.New("llm api key is required (TRIP_LLM_API_KEY)")
	}

	switch c.Search.Provider {
	case SearchSerper:
		if c.Search.Endpoint == "" {
			return errors.New("search endpoint is required (TRIP_SEARCH_ENDPOINT)")
		}
	case SearchPlaces:
	default:
		return fmt.Errorf("unsupported search provider %q (use serper or places)", c.Search.Provider)
	}
	if c.Search.APIKey == "" {
		return errors.New("search api key is required (TRIP_SEARCH_API_KEY)")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("upstream timeout must be positive")
	}
	return nil
}
