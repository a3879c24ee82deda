package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Cache    Cache    `yaml:"cache"`
	Exchange Exchange `yaml:"exchange"`
}

type Server struct {
	Address            string `yaml:"address"              env:"SERVER_ADDR"              env-default:":8000"`
	ReadTimeoutSec     int    `yaml:"read_timeout_sec"     env:"SERVER_READ_TIMEOUT"      env-default:"15"`
	WriteTimeoutSec    int    `yaml:"write_timeout_sec"    env:"SERVER_WRITE_TIMEOUT"     env-default:"15"`
	IdleTimeoutSec     int    `yaml:"idle_timeout_sec"     env:"SERVER_IDLE_TIMEOUT"      env-default:"60"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec" env:"SERVER_SHUTDOWN_TIMEOUT"  env-default:"15"`
}

type Cache struct {
	Driver string `yaml:"driver"    env:"CACHE_DRIVER"    env-default:"memory"`
	Host   string `yaml:"host"      env:"CACHE_HOST"      env-default:"localhost"`
	Port   int    `yaml:"port"      env:"CACHE_PORT"      env-default:"6379"`
	Db     int    `yaml:"db"        env:"CACHE_DB"        env-default:"0"`
	Pass   string `yaml:"password"  env:"CACHE_PASSWORD"  env-default:""`
	TTL    string `yaml:"ttl"       env:"CACHE_TTL"       env-default:"5s"`
}

type Exchange struct {
	ID         string `yaml:"id"          env:"EXCHANGE_ID"       env-default:"binance"`
	BaseURL    string `yaml:"base_url"    env:"EXCHANGE_BASE_URL" env-default:""`
	TimeoutSec int    `yaml:"timeout_sec" env:"EXCHANGE_TIMEOUT"  env-default:"10"`
}

// Load reads configuration from a YAML file path or from inline YAML
// content, then applies environment overrides on top.
func Load(pathOrContent string) (*Config, error) {
	var cfg Config

	if fi, err := os.Stat(pathOrContent); err == nil && !fi.IsDir() {
		if err := cleanenv.ReadConfig(pathOrContent, &cfg); err != nil {
			return nil, fmt.Errorf("read config %q: %w", pathOrContent, err)
		}
	} else if strings.Contains(pathOrContent, "\n") || strings.Contains(pathOrContent, "server:") {
		if err := yaml.Unmarshal([]byte(pathOrContent), &cfg); err != nil {
			return nil, fmt.Errorf("parse config content: %w", err)
		}
	}
	// missing file is fine: env vars and defaults carry the config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	return &cfg, nil
}

// TTLDuration parses the cache TTL; plain integers are treated as seconds.
func (c Cache) TTLDuration() time.Duration {
	val := strings.TrimSpace(c.TTL)
	if val == "" {
		return 0
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func (e Exchange) Timeout() time.Duration {
	if e.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.TimeoutSec) * time.Second
}

// Pretty returns the YAML form of the config for startup logging.
func (c *Config) Pretty() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}
