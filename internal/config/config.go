package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the furnidex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Recommend RecommendConfig `yaml:"recommend"`
	Cache     CacheConfig     `yaml:"cache"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
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

// CatalogConfig holds dataset and ingest settings.
type CatalogConfig struct {
	DatasetPath     string `yaml:"dataset_path"`
	MaxRows         int    `yaml:"max_rows"` // 0 = no limit
	IngestWorkers   int    `yaml:"ingest_workers"`
	IngestBatchSize int    `yaml:"ingest_batch_size"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
}

// CacheConfig holds embedding-cache store settings. The cache is optional:
// with Enabled false every embedding call goes straight to the provider.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLSec           int      `yaml:"ttl_sec"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url"`
	Model               string `yaml:"model"`
	Dimensions          int    `yaml:"dimensions"`
	QueryInstruction    string `yaml:"query_instruction"`
	DocumentInstruction string `yaml:"document_instruction"`
}

// RecommendConfig holds the ranking tuning.
type RecommendConfig struct {
	TextWeight     float64 `yaml:"text_weight"`
	CategoryWeight float64 `yaml:"category_weight"`
	MaterialWeight float64 `yaml:"material_weight"`
	ColorWeight    float64 `yaml:"color_weight"`
	MinScore       float64 `yaml:"min_score"`
	RelaxFactor    float64 `yaml:"relax_factor"`
	FallbackFactor int     `yaml:"fallback_factor"`
	ScanFactor     int     `yaml:"scan_factor"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

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

// GetEnv returns the current environment from the FURNIDEX_ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("FURNIDEX_ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.IngestWorkers <= 0 {
		c.Catalog.IngestWorkers = 4
	}
	if c.Catalog.IngestBatchSize <= 0 {
		c.Catalog.IngestBatchSize = 64
	}
	if c.Catalog.DefaultPageSize <= 0 {
		c.Catalog.DefaultPageSize = 50
	}
	if c.Catalog.MaxPageSize <= 0 {
		c.Catalog.MaxPageSize = 100
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "furnidex:"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	r := &c.Recommend
	if r.TextWeight == 0 && r.CategoryWeight == 0 && r.MaterialWeight == 0 && r.ColorWeight == 0 {
		r.TextWeight = 0.75
		r.CategoryWeight = 0.15
		r.MaterialWeight = 0.05
		r.ColorWeight = 0.05
	}
	if r.MinScore == 0 {
		r.MinScore = 0.45
	}
	if r.RelaxFactor == 0 {
		r.RelaxFactor = 0.85
	}
	if r.FallbackFactor <= 0 {
		r.FallbackFactor = 2
	}
	if r.ScanFactor <= 0 {
		r.ScanFactor = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Catalog.DatasetPath == "" {
		return fmt.Errorf("catalog.dataset_path is required")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.enabled is true")
	}
	r := c.Recommend
	sum := r.TextWeight + r.CategoryWeight + r.MaterialWeight + r.ColorWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("recommend weights must sum to 1.0, got %v", sum)
	}
	if r.MinScore < 0 || r.MinScore > 1 {
		return fmt.Errorf("recommend.min_score must be between 0 and 1, got %v", r.MinScore)
	}
	if r.RelaxFactor <= 0 || r.RelaxFactor > 1 {
		return fmt.Errorf("recommend.relax_factor must be in (0, 1], got %v", r.RelaxFactor)
	}
	return nil
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
