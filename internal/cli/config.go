package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpath/pkg/cache"
	"github.com/matzehuels/gridpath/pkg/search"
)

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional TOML configuration file.
//
//	[search]
//	algorithm = "auto"
//	max_expansions = 0
//	strict = false
//
//	[cache]
//	backend = "file"  # file, redis or none
//	ttl = "720h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	db = 0
//
//	[bench]
//	workers = 4
//	repeat = 3
type Config struct {
	Search SearchConfig `toml:"search"`
	Cache  CacheConfig  `toml:"cache"`
	Bench  BenchConfig  `toml:"bench"`
}

// SearchConfig holds defaults for the search and render commands.
type SearchConfig struct {
	Algorithm     string `toml:"algorithm"`
	MaxExpansions int    `toml:"max_expansions"`
	MaxPasses     int    `toml:"max_passes"`
	Strict        bool   `toml:"strict"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	TTL     string            `toml:"ttl"`
	Redis   cache.RedisConfig `toml:"redis"`

	ttl time.Duration
}

// BenchConfig holds defaults for the bench command.
type BenchConfig struct {
	Workers int `toml:"workers"`
	Repeat  int `toml:"repeat"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{Algorithm: string(search.AlgorithmAuto)},
		Cache:  CacheConfig{Backend: backendFile, ttl: cache.TTLSearch},
	}
}

// TTLDuration returns the parsed cache entry lifetime.
func (c CacheConfig) TTLDuration() time.Duration {
	if c.ttl == 0 {
		return cache.TTLSearch
	}
	return c.ttl
}

// loadConfig reads the config file at path. An empty path means the default
// location, where a missing file is not an error. Unknown keys are logged.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "file", path, "key", key.String())
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("loaded config", "file", path)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Search.Algorithm != "" {
		if _, err := search.ParseAlgorithm(c.Search.Algorithm); err != nil {
			return err
		}
	}
	if c.Search.MaxExpansions < 0 || c.Search.MaxPasses < 0 {
		return fmt.Errorf("search budgets must be non-negative")
	}

	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = backendFile
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %s", d)
		}
		c.Cache.ttl = d
	}

	if c.Bench.Workers < 0 || c.Bench.Repeat < 0 {
		return fmt.Errorf("bench workers and repeat must be non-negative")
	}
	return nil
}
