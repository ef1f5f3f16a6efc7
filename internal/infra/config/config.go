package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Groq        GroqConfig        `yaml:"groq"`
	Detection   DetectionConfig   `yaml:"detection"`
	Persistence PersistenceConfig `yaml:"persistence"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// GroqConfig contains settings for the hosted vision model.
type GroqConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	TopP        float32       `yaml:"topP"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Configured reports whether real model calls are possible.
func (c GroqConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// DetectionConfig tunes the analysis pipeline.
type DetectionConfig struct {
	TargetSize   int         `yaml:"targetSize"`
	MinDimension int         `yaml:"minDimension"`
	MaxDimension int         `yaml:"maxDimension"`
	Enhance      bool        `yaml:"enhance"`
	Cache        CacheConfig `yaml:"cache"`
}

// CacheConfig controls the optional detection result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// PersistenceConfig covers scan history storage and image uploads.
type PersistenceConfig struct {
	SupabaseURL string         `yaml:"supabaseUrl"`
	SupabaseKey string         `yaml:"supabaseKey"`
	Postgres    PostgresConfig `yaml:"postgres"`
	Storage     StorageConfig  `yaml:"storage"`
}

// Configured reports whether any persistence backend is intended.
func (p PersistenceConfig) Configured() bool {
	return strings.TrimSpace(p.SupabaseURL) != "" || strings.TrimSpace(p.Postgres.DSN) != ""
}

// PostgresConfig contains DSN and pooling settings for the scans table.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// StorageConfig points at the S3-compatible bucket holding scan images.
type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"accessKey"`
	SecretKey     string `yaml:"secretKey"`
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	PublicBaseURL string `yaml:"publicBaseUrl"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	deriveStorage(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Groq.APIKey = v
	}
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.Groq.BaseURL = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.Groq.Model = v
	}
	if v := os.Getenv("GROQ_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Groq.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("GROQ_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Groq.MaxTokens = parsed
		}
	}
	if v := os.Getenv("GROQ_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Groq.Timeout = parsed
		}
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Persistence.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		cfg.Persistence.SupabaseKey = v
	}
	if v := os.Getenv("SUPABASE_DB_DSN"); v != "" {
		cfg.Persistence.Postgres.DSN = v
	}
	if v := os.Getenv("SCAN_BUCKET"); v != "" {
		cfg.Persistence.Storage.Bucket = v
	}
	if v := os.Getenv("SCAN_STORAGE_ENDPOINT"); v != "" {
		cfg.Persistence.Storage.Endpoint = v
	}
	if v := os.Getenv("SCAN_STORAGE_ACCESS_KEY"); v != "" {
		cfg.Persistence.Storage.AccessKey = v
	}
	if v := os.Getenv("SCAN_STORAGE_SECRET_KEY"); v != "" {
		cfg.Persistence.Storage.SecretKey = v
	}
	if v := os.Getenv("SCAN_CACHE_ENABLED"); v != "" {
		cfg.Detection.Cache.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SCAN_CACHE_ADDR"); v != "" {
		cfg.Detection.Cache.Addr = v
	}
	if v := os.Getenv("SCAN_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Detection.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

// deriveStorage fills the S3 settings from the Supabase project configuration
// when no explicit endpoint or credentials were provided. Supabase exposes its
// storage buckets through an S3-compatible endpoint under the project URL.
func deriveStorage(cfg *Config) {
	storage := &cfg.Persistence.Storage
	base := strings.TrimRight(strings.TrimSpace(cfg.Persistence.SupabaseURL), "/")
	if storage.Endpoint == "" && base != "" {
		storage.Endpoint = base + "/storage/v1/s3"
	}
	if storage.AccessKey == "" {
		storage.AccessKey = cfg.Persistence.SupabaseKey
	}
	if storage.SecretKey == "" {
		storage.SecretKey = cfg.Persistence.SupabaseKey
	}
	if storage.PublicBaseURL == "" && base != "" {
		storage.PublicBaseURL = base + "/storage/v1/object/public/" + storage.Bucket
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Groq: GroqConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "llama-3.2-90b-vision-preview",
			Temperature: 0.2,
			MaxTokens:   1000,
			TopP:        0.9,
			Timeout:     30 * time.Second,
		},
		Detection: DetectionConfig{
			TargetSize:   224,
			MinDimension: 100,
			MaxDimension: 5000,
			Enhance:      true,
			Cache: CacheConfig{
				Enabled: false,
				TTL:     time.Hour,
			},
		},
		Persistence: PersistenceConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
			Storage: StorageConfig{
				Bucket: "scan-images",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Groq.BaseURL == "" {
		return errors.New("groq.baseUrl cannot be empty")
	}
	if c.Groq.Model == "" {
		return errors.New("groq.model cannot be empty")
	}
	if c.Groq.MaxTokens <= 0 {
		return errors.New("groq.maxTokens must be positive")
	}
	if c.Groq.Timeout <= 0 {
		return errors.New("groq.timeout must be positive")
	}
	if c.Detection.TargetSize <= 0 {
		return errors.New("detection.targetSize must be positive")
	}
	if c.Detection.MinDimension <= 0 || c.Detection.MaxDimension <= c.Detection.MinDimension {
		return errors.New("detection dimension bounds must satisfy 0 < min < max")
	}
	if c.Detection.Cache.Enabled && strings.TrimSpace(c.Detection.Cache.Addr) == "" {
		return errors.New("detection.cache.addr cannot be empty when the cache is enabled")
	}
	if c.Detection.Cache.TTL < 0 {
		return errors.New("detection.cache.ttl cannot be negative")
	}
	if c.Persistence.Storage.Bucket == "" {
		return errors.New("persistence.storage.bucket cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
