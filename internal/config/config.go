// Package config loads settings for the hubcache commands.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MetricsAddrEnv overrides Server.MetricsAddr when set.
const MetricsAddrEnv = "HUBCACHE_METRICS_ADDR"

type Config struct {
	Cache    CacheConfig    `yaml:"cache"`
	Workload WorkloadConfig `yaml:"workload"`
	Server   ServerConfig   `yaml:"server"`
}

type CacheConfig struct {
	MaxSize       int           `yaml:"max_size"`
	DefaultTTL    time.Duration `yaml:"default_ttl"`
	Shards        int           `yaml:"shards"`
	Policy        string        `yaml:"policy"` // fifo, lru, 2q
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type WorkloadConfig struct {
	Workers  int           `yaml:"workers"`
	Duration time.Duration `yaml:"duration"`
	ReadPct  int           `yaml:"read_pct"`
	Keys     int           `yaml:"keys"`
	ZipfS    float64       `yaml:"zipf_s"`
	ZipfV    float64       `yaml:"zipf_v"`
	Seed     int64         `yaml:"seed"`
	Preload  int           `yaml:"preload"` // 0 = MaxSize/2
	LoadCost time.Duration `yaml:"load_cost"`
}

type ServerConfig struct {
	MetricsAddr string `yaml:"metrics_addr"` // empty disables /metrics
	PprofAddr   string `yaml:"pprof_addr"`   // empty disables pprof
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			MaxSize:    100_000,
			DefaultTTL: 5 * time.Minute,
			Policy:     "fifo",
		},
		Workload: WorkloadConfig{
			Workers:  2 * runtime.GOMAXPROCS(0),
			Duration: 10 * time.Second,
			ReadPct:  80,
			Keys:     1_000_000,
			ZipfS:    1.1,
			ZipfV:    1.0,
			Seed:     1,
		},
		Server: ServerConfig{MetricsAddr: ":8080"},
	}
}

// Load reads a YAML file on top of Default, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ApplyEnv() {
	if addr, ok := os.LookupEnv(MetricsAddrEnv); ok {
		c.Server.MetricsAddr = addr
	}
}

func (c *Config) Validate() error {
	if c.Cache.MaxSize <= 0 {
		return fmt.Errorf("cache.max_size must be positive")
	}
	if c.Cache.SweepInterval < 0 {
		return fmt.Errorf("cache.sweep_interval must not be negative")
	}
	if !isValidPolicy(c.Cache.Policy) {
		return fmt.Errorf("cache.policy: invalid policy %q", c.Cache.Policy)
	}
	if c.Workload.Workers <= 0 {
		return fmt.Errorf("workload.workers must be positive")
	}
	if c.Workload.Duration <= 0 {
		return fmt.Errorf("workload.duration must be positive")
	}
	if c.Workload.ReadPct < 0 || c.Workload.ReadPct > 100 {
		return fmt.Errorf("workload.read_pct must be within [0, 100]")
	}
	if c.Workload.Keys < 2 {
		return fmt.Errorf("workload.keys must be at least 2")
	}
	if c.Workload.ZipfS <= 1 || c.Workload.ZipfV < 1 {
		return fmt.Errorf("workload: zipf_s must be > 1 and zipf_v >= 1")
	}
	return nil
}

func isValidPolicy(p string) bool {
	switch strings.ToLower(p) {
	case "fifo", "lru", "2q":
		return true
	}
	return false
}
