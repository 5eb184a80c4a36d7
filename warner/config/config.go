package config

import (
	"fmt"
	"time"

	"code.cloudfoundry.org/influxdb-warner/helpers"
)

var ErrReadYaml = helpers.ErrReadYaml

const (
	DefaultLoggingLevel                   = "info"
	DefaultHealthServerPort               = 8081
	DefaultCheckInterval                  = 60 * time.Second
	DefaultWorkerCount                    = 10
	DefaultJobQueueSize                   = 200
	DefaultQueryTimeout                   = 30 * time.Second
	DefaultBackOffInitialInterval         = 30 * time.Second
	DefaultBackOffMaxInterval             = 10 * time.Minute
	DefaultBreakerConsecutiveFailureCount = 3
	DefaultRateLimitValidDuration         = 1 * time.Second
	DefaultRateLimitBucketCapacity        = 20
	DefaultConnectionCacheTTL             = 10 * time.Minute
	DefaultConnectionCacheCleanup         = 1 * time.Minute
)

type CircuitBreakerConfig struct {
	BackOffInitialInterval  time.Duration `yaml:"back_off_initial_interval" json:"back_off_initial_interval"`
	BackOffMaxInterval      time.Duration `yaml:"back_off_max_interval" json:"back_off_max_interval"`
	ConsecutiveFailureCount int64         `yaml:"consecutive_failure_count" json:"consecutive_failure_count"`
}

// RateLimitConfig caps queries per database. MaxAmount 0 disables the limit.
type RateLimitConfig struct {
	MaxAmount      int           `yaml:"max_amount" json:"max_amount"`
	ValidDuration  time.Duration `yaml:"valid_duration" json:"valid_duration"`
	BucketCapacity int           `yaml:"bucket_capacity" json:"bucket_capacity"`
}

type ConnectionCacheConfig struct {
	TTL             time.Duration `yaml:"ttl" json:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval"`
}

// EngineConfig is what the warner itself needs; the rest of Config is about
// running it as a process.
type EngineConfig struct {
	WorkerCount     int                   `yaml:"worker_count" json:"worker_count"`
	JobQueueSize    int                   `yaml:"job_queue_size" json:"job_queue_size"`
	QueryTimeout    time.Duration         `yaml:"query_timeout" json:"query_timeout"`
	CircuitBreaker  CircuitBreakerConfig  `yaml:"circuit_breaker" json:"circuit_breaker"`
	RateLimit       RateLimitConfig       `yaml:"rate_limit" json:"rate_limit"`
	ConnectionCache ConnectionCacheConfig `yaml:"connection_cache" json:"connection_cache"`
}

type Config struct {
	Logging       helpers.LoggingConfig `yaml:"logging" json:"logging"`
	Health        helpers.HealthConfig  `yaml:"health" json:"health"`
	RulesPath     string                `yaml:"rules_path" json:"rules_path"`
	CheckInterval time.Duration         `yaml:"check_interval" json:"check_interval"`
	Engine        EngineConfig          `yaml:",inline" json:",inline"`
}

func LoadConfig(filepath string) (*Config, error) {
	conf := defaultConfig()
	if err := helpers.LoadYamlFile(filepath, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		WorkerCount:  DefaultWorkerCount,
		JobQueueSize: DefaultJobQueueSize,
		QueryTimeout: DefaultQueryTimeout,
		CircuitBreaker: CircuitBreakerConfig{
			BackOffInitialInterval:  DefaultBackOffInitialInterval,
			BackOffMaxInterval:      DefaultBackOffMaxInterval,
			ConsecutiveFailureCount: DefaultBreakerConsecutiveFailureCount,
		},
		RateLimit: RateLimitConfig{
			ValidDuration:  DefaultRateLimitValidDuration,
			BucketCapacity: DefaultRateLimitBucketCapacity,
		},
		ConnectionCache: ConnectionCacheConfig{
			TTL:             DefaultConnectionCacheTTL,
			CleanupInterval: DefaultConnectionCacheCleanup,
		},
	}
}

func defaultConfig() Config {
	return Config{
		Logging: helpers.LoggingConfig{
			Level: DefaultLoggingLevel,
		},
		Health: helpers.HealthConfig{
			ServerConfig: helpers.ServerConfig{
				Port: DefaultHealthServerPort,
			},
		},
		CheckInterval: DefaultCheckInterval,
		Engine:        DefaultEngineConfig(),
	}
}

func (c *Config) GetLogging() *helpers.LoggingConfig {
	return &c.Logging
}

func (c *Config) Validate() error {
	if _, err := helpers.ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("Configuration error: logging.level: %w", err)
	}
	if c.RulesPath == "" {
		return fmt.Errorf("Configuration error: rules_path is empty")
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("Configuration error: check_interval is less-equal than 0")
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return c.Health.Validate()
}

func (c *EngineConfig) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("Configuration error: worker_count is less-equal than 0")
	}
	if c.JobQueueSize <= 0 {
		return fmt.Errorf("Configuration error: job_queue_size is less-equal than 0")
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("Configuration error: query_timeout is less-equal than 0")
	}
	if c.CircuitBreaker.BackOffInitialInterval <= 0 {
		return fmt.Errorf("Configuration error: circuit_breaker.back_off_initial_interval is less-equal than 0")
	}
	if c.CircuitBreaker.BackOffMaxInterval < c.CircuitBreaker.BackOffInitialInterval {
		return fmt.Errorf("Configuration error: circuit_breaker.back_off_max_interval is less than back_off_initial_interval")
	}
	if c.CircuitBreaker.ConsecutiveFailureCount <= 0 {
		return fmt.Errorf("Configuration error: circuit_breaker.consecutive_failure_count is less-equal than 0")
	}
	if c.RateLimit.MaxAmount < 0 {
		return fmt.Errorf("Configuration error: rate_limit.max_amount is less than 0")
	}
	if c.RateLimit.MaxAmount > 0 && c.RateLimit.ValidDuration <= 0 {
		return fmt.Errorf("Configuration error: rate_limit.valid_duration is less-equal than 0")
	}
	if c.RateLimit.BucketCapacity <= 0 {
		return fmt.Errorf("Configuration error: rate_limit.bucket_capacity is less-equal than 0")
	}
	if c.ConnectionCache.TTL <= 0 {
		return fmt.Errorf("Configuration error: connection_cache.ttl is less-equal than 0")
	}
	if c.ConnectionCache.CleanupInterval <= 0 {
		return fmt.Errorf("Configuration error: connection_cache.cleanup_interval is less-equal than 0")
	}
	return nil
}
