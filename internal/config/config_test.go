package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Catalog: CatalogConfig{DatasetPath: "data/catalog.csv"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.TextWeight = 0.9

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}

	expected := "recommend weights must sum to 1.0, got 1.15"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := validConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for defaulted config: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatasetPath(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.DatasetPath = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing dataset path")
	}
}

func TestValidate_CacheEnabledWithoutAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for enabled cache without addrs")
	}
}

func TestValidate_MinScoreOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.MinScore = 1.5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for min_score above 1")
	}
}

func TestValidate_RelaxFactorOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.RelaxFactor = 1.2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for relax_factor above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Catalog.IngestWorkers != 4 {
		t.Errorf("expected IngestWorkers=4, got %d", cfg.Catalog.IngestWorkers)
	}
	if cfg.Catalog.IngestBatchSize != 64 {
		t.Errorf("expected IngestBatchSize=64, got %d", cfg.Catalog.IngestBatchSize)
	}
	if cfg.Catalog.DefaultPageSize != 50 {
		t.Errorf("expected DefaultPageSize=50, got %d", cfg.Catalog.DefaultPageSize)
	}
	if cfg.Catalog.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Catalog.MaxPageSize)
	}
	if cfg.Cache.KeyPrefix != "furnidex:" {
		t.Errorf("expected KeyPrefix='furnidex:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Cache.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Cache.ReadinessTimeout)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Recommend.TextWeight != 0.75 {
		t.Errorf("expected TextWeight=0.75, got %v", cfg.Recommend.TextWeight)
	}
	if cfg.Recommend.CategoryWeight != 0.15 {
		t.Errorf("expected CategoryWeight=0.15, got %v", cfg.Recommend.CategoryWeight)
	}
	if cfg.Recommend.MinScore != 0.45 {
		t.Errorf("expected MinScore=0.45, got %v", cfg.Recommend.MinScore)
	}
	if cfg.Recommend.RelaxFactor != 0.85 {
		t.Errorf("expected RelaxFactor=0.85, got %v", cfg.Recommend.RelaxFactor)
	}
	if cfg.Recommend.FallbackFactor != 2 {
		t.Errorf("expected FallbackFactor=2, got %d", cfg.Recommend.FallbackFactor)
	}
	if cfg.Recommend.ScanFactor != 3 {
		t.Errorf("expected ScanFactor=3, got %d", cfg.Recommend.ScanFactor)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Catalog: CatalogConfig{IngestWorkers: 8, IngestBatchSize: 16, DefaultPageSize: 25, MaxPageSize: 200},
		Cache:   CacheConfig{KeyPrefix: "custom:", ReadinessTimeout: 15},
		Recommend: RecommendConfig{
			TextWeight: 0.5, CategoryWeight: 0.3, MaterialWeight: 0.1, ColorWeight: 0.1,
			MinScore: 0.3, RelaxFactor: 0.9, FallbackFactor: 4, ScanFactor: 6,
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Catalog.IngestWorkers != 8 {
		t.Errorf("expected IngestWorkers=8, got %d", cfg.Catalog.IngestWorkers)
	}
	if cfg.Cache.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Recommend.TextWeight != 0.5 {
		t.Errorf("expected TextWeight=0.5, got %v", cfg.Recommend.TextWeight)
	}
	if cfg.Recommend.MinScore != 0.3 {
		t.Errorf("expected MinScore=0.3, got %v", cfg.Recommend.MinScore)
	}
	if cfg.Recommend.FallbackFactor != 4 {
		t.Errorf("expected FallbackFactor=4, got %d", cfg.Recommend.FallbackFactor)
	}
}
