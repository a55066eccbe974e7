package config

import (
	"fmt"
	"strings"

	"github.com/2beens/liftcoach/internal/exploration"
	"github.com/2beens/liftcoach/internal/progression"
	"github.com/2beens/liftcoach/pkg"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus metrics server
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	RecommendationRateLimitAllowedPerMin int `toml:"recommendation_rate_limit_allowed_per_min"`

	// ColdStartWeightKg seeds a brand new lift when the client supplies
	// no starting weight.
	ColdStartWeightKg float64 `toml:"cold_start_weight_kg"`

	Progression progression.Config `toml:"progression"`
	Exploration exploration.Gates  `toml:"exploration"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return nil, fmt.Errorf("check config file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	defaults := progression.DefaultConfig()
	if cfg.Progression.RepRangeMin == 0 {
		cfg.Progression.RepRangeMin = defaults.RepRangeMin
	}
	if cfg.Progression.RepRangeMax == 0 {
		cfg.Progression.RepRangeMax = defaults.RepRangeMax
	}
	if cfg.Progression.WeightIncrementKg == 0 {
		cfg.Progression.WeightIncrementKg = defaults.WeightIncrementKg
	}
	if cfg.Progression.DeloadFactor == 0 {
		cfg.Progression.DeloadFactor = defaults.DeloadFactor
	}
	if cfg.Progression.FailureThreshold == 0 {
		cfg.Progression.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.Progression.LoadStepKg == 0 {
		cfg.Progression.LoadStepKg = defaults.LoadStepKg
	}
	if cfg.Progression.TargetSets == 0 {
		cfg.Progression.TargetSets = defaults.TargetSets
	}
	if cfg.Progression.TargetRIR == 0 {
		cfg.Progression.TargetRIR = defaults.TargetRIR
	}

	defaultGates := exploration.DefaultGates()
	if cfg.Exploration.PainLevelThreshold == 0 {
		cfg.Exploration.PainLevelThreshold = defaultGates.PainLevelThreshold
	}
	if cfg.Exploration.MaxConsecutiveFailures == 0 {
		cfg.Exploration.MaxConsecutiveFailures = defaultGates.MaxConsecutiveFailures
	}
	if cfg.Exploration.MinPredictedSuccess == 0 {
		cfg.Exploration.MinPredictedSuccess = defaultGates.MinPredictedSuccess
	}
	if cfg.Exploration.MaxDeltaFractionOfLoad == 0 {
		cfg.Exploration.MaxDeltaFractionOfLoad = defaultGates.MaxDeltaFractionOfLoad
	}
	if cfg.Exploration.ExplorationRate == 0 {
		cfg.Exploration.ExplorationRate = defaultGates.ExplorationRate
	}

	if cfg.ColdStartWeightKg == 0 {
		cfg.ColdStartWeightKg = 20
	}
	if cfg.RecommendationRateLimitAllowedPerMin == 0 {
		cfg.RecommendationRateLimitAllowedPerMin = 30
	}
}
