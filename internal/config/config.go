package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/onimo/internal/domain"
)

// Config holds the onimo service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Cache     CacheConfig     `yaml:"cache"`
	Assistant AssistantConfig `yaml:"assistant"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Wikipedia WikipediaConfig `yaml:"wikipedia"`
	News      NewsConfig      `yaml:"news"`
	Translate TranslateConfig `yaml:"translate"`
	LLM       LLMConfig       `yaml:"llm"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string        `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File  LogFileConfig `yaml:"file"`
}

// LogFileConfig enables a rotated log file next to stdout.
type LogFileConfig struct {
	Path       string `yaml:"path"` // empty = stdout only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled           *bool  `yaml:"enabled"` // default: true
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	Burst             int    `yaml:"burst"`
	Backend           string `yaml:"backend"` // local (per instance) or store (shared through the cache store)
}

// IsEnabled reports whether rate limiting is on.
func (r RateLimitConfig) IsEnabled() bool { return r.Enabled == nil || *r.Enabled }

// CacheConfig holds the key-value store used for the translation cache.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	TranslationTTL   int      `yaml:"translation_ttl_sec"` // 0 = no expiry
}

// AssistantConfig holds the reply settings.
type AssistantConfig struct {
	CreatorName         string   `yaml:"creator_name"`
	DefaultLanguage     string   `yaml:"default_language"`
	TranscriptLanguages []string `yaml:"transcript_languages"`
	MaxQueryRunes       int      `yaml:"max_query_runes"`
}

// ResolverConfig holds the fact resolver settings.
type ResolverConfig struct {
	Mode             string `yaml:"mode"` // race (default) or sequential
	SourceTimeoutSec int    `yaml:"source_timeout_sec"`
}

// WikipediaConfig holds the encyclopedia source settings.
type WikipediaConfig struct {
	Endpoint  string `yaml:"endpoint"` // %s is replaced with the language
	Language  string `yaml:"language"`
	UserAgent string `yaml:"user_agent"`
}

// NewsConfig holds the news source settings.
type NewsConfig struct {
	Provider string `yaml:"provider"` // newsapi or gnews (default: newsapi, gnews when no key)
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Language string `yaml:"language"`
	Region   string `yaml:"region"` // gnews only
}

// TranslateConfig holds the translation provider chain.
type TranslateConfig struct {
	Providers      []string `yaml:"providers"` // google, llm; tried in order
	GoogleEndpoint string   `yaml:"google_endpoint"`
}

// LLMConfig holds the OpenAI-compatible provider settings. Empty APIKey disables it.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
}

// Enabled reports whether an LLM is configured.
func (l LLMConfig) Enabled() bool { return l.APIKey != "" }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory is loaded first, if present.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 10
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = c.RateLimit.RequestsPerMinute
	}
	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = "local"
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}

	def := domain.DefaultAssistantConfig()
	if c.Assistant.CreatorName == "" {
		c.Assistant.CreatorName = def.CreatorName
	}
	if c.Assistant.DefaultLanguage == "" {
		c.Assistant.DefaultLanguage = string(def.DefaultLanguage)
	}
	if len(c.Assistant.TranscriptLanguages) == 0 {
		for _, l := range def.TranscriptLanguages {
			c.Assistant.TranscriptLanguages = append(c.Assistant.TranscriptLanguages, string(l))
		}
	}
	if c.Assistant.MaxQueryRunes <= 0 {
		c.Assistant.MaxQueryRunes = def.MaxQueryRunes
	}

	if c.Resolver.Mode == "" {
		c.Resolver.Mode = "race"
	}
	if c.Resolver.SourceTimeoutSec <= 0 {
		c.Resolver.SourceTimeoutSec = 8
	}
	if c.Wikipedia.Language == "" {
		c.Wikipedia.Language = "en"
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.Provider == "" {
		c.News.Provider = "newsapi"
		if c.News.APIKey == "" {
			c.News.Provider = "gnews"
		}
	}
	if len(c.Translate.Providers) == 0 {
		c.Translate.Providers = []string{"google"}
		if c.LLM.Enabled() {
			c.Translate.Providers = append(c.Translate.Providers, "llm")
		}
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Cache.Driver {
	case "memory":
	case "redis", "valkey":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
	default:
		return fmt.Errorf("cache.driver must be \"memory\", \"redis\" or \"valkey\", got %q", c.Cache.Driver)
	}

	switch c.RateLimit.Backend {
	case "local", "store":
	default:
		return fmt.Errorf("rate_limit.backend must be \"local\" or \"store\", got %q", c.RateLimit.Backend)
	}

	if _, err := domain.ParseLanguage(c.Assistant.DefaultLanguage); err != nil {
		return fmt.Errorf("assistant.default_language: %w", err)
	}
	for _, l := range c.Assistant.TranscriptLanguages {
		if _, err := domain.ParseLanguage(l); err != nil {
			return fmt.Errorf("assistant.transcript_languages: %w", err)
		}
	}
	if _, err := domain.ParseLanguage(c.Wikipedia.Language); err != nil {
		return fmt.Errorf("wikipedia.language: %w", err)
	}

	switch c.Resolver.Mode {
	case "race", "sequential":
	default:
		return fmt.Errorf("resolver.mode must be \"race\" or \"sequential\", got %q", c.Resolver.Mode)
	}

	switch c.News.Provider {
	case "newsapi":
		if c.News.APIKey == "" {
			return errors.New("news.api_key is required for provider \"newsapi\"")
		}
	case "gnews":
	default:
		return fmt.Errorf("news.provider must be \"newsapi\" or \"gnews\", got %q", c.News.Provider)
	}

	for _, p := range c.Translate.Providers {
		switch p {
		case "google":
		case "llm":
			if !c.LLM.Enabled() {
				return errors.New("translate.providers lists \"llm\" but llm.api_key is empty")
			}
		default:
			return fmt.Errorf("translate.providers: unknown provider %q", p)
		}
	}
	return nil
}

// AssistantSettings converts the assistant section into domain settings.
// Call after Validate.
func (c *Config) AssistantSettings() domain.AssistantConfig {
	out := domain.AssistantConfig{
		CreatorName:     c.Assistant.CreatorName,
		DefaultLanguage: domain.LanguageOrDefault(c.Assistant.DefaultLanguage, domain.LanguageEnglish),
		MaxQueryRunes:   c.Assistant.MaxQueryRunes,
	}
	for _, l := range c.Assistant.TranscriptLanguages {
		out.TranscriptLanguages = append(out.TranscriptLanguages, domain.LanguageOrDefault(l, domain.LanguageEnglish))
	}
	return out
}

// SourceTimeout returns the per-source deadline.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Resolver.SourceTimeoutSec) * time.Second
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
