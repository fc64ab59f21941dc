package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"PortfolioSentinel/internal/model"
)

// ErrPlaceholderCredentials is returned when the brokerage credentials are
// missing or still set to their template values.
var ErrPlaceholderCredentials = errors.New("credentials are missing or placeholders")

var (
	placeholderEmails    = map[string]bool{"": true, "your_email@example.com": true, "abc@gmail.com": true}
	placeholderPasswords = map[string]bool{"": true, "your_password": true}
	placeholderAPIKeys   = map[string]bool{"": true, "your_openai_api_key": true, "your_api_key": true}
)

// Config holds all application configuration. It is built once by Load and
// treated as read-only afterwards.
type Config struct {
	Credentials struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"credentials"`
	Sentiment struct {
		Provider string `yaml:"provider" default:"openai" validate:"oneof=openai gemini"`
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model" default:"gpt-4o"`
		BaseURL  string `yaml:"base_url" validate:"omitempty,url"`
	} `yaml:"sentiment"`
	Analysis struct {
		LookbackDays    int               `yaml:"lookback_days" default:"365" validate:"min=1,max=3650"`
		Indicators      []string          `yaml:"indicators"`
		RSIWindow       int               `yaml:"rsi_window" default:"14" validate:"min=2,max=100"`
		Workers         int               `yaml:"workers" default:"4" validate:"min=1,max=64"`
		FetchTimeout    time.Duration     `yaml:"fetch_timeout" default:"30s" validate:"min=1s"`
		SymbolOverrides map[string]string `yaml:"symbol_overrides"`
	} `yaml:"analysis"`
	Holdings struct {
		Source string `yaml:"source" default:"wealthsimple" validate:"oneof=wealthsimple file"`
		File   string `yaml:"file" validate:"required_if=Source file"`
	} `yaml:"holdings"`
	Report struct {
		Path string `yaml:"path" default:"portfolio_report.html" validate:"required"`
	} `yaml:"report"`
	Schedule struct {
		UpdateFrequencyHours int  `yaml:"update_frequency_hours" default:"24" validate:"min=1"`
		RunAtStart           bool `yaml:"run_at_start" default:"true"`
	} `yaml:"schedule"`
	Cache struct {
		Backend       string        `yaml:"backend" default:"none" validate:"oneof=none memory redis sqlite"`
		TTL           time.Duration `yaml:"ttl" default:"6h"`
		RedisAddr     string        `yaml:"redis_addr" default:"localhost:6379"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db" validate:"min=0"`
		SQLitePath    string        `yaml:"sqlite_path" default:"data/sentinel_cache.db"`
	} `yaml:"cache"`
	History struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"history"`
	Metrics struct {
		File string `yaml:"file"`
	} `yaml:"metrics"`
	Log struct {
		Debug  bool   `yaml:"debug"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		File   string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load builds the configuration from struct defaults, then the optional YAML
// file at path, then the .env file at envFile, then environment variables.
// Either path may be empty.
func Load(path, envFile string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	env := envSource{}
	if envFile != "" {
		file, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		env.file = file
	}

	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envSource resolves a key from the process environment, then the .env
// file. Each is tried in upper case, then lower case.
type envSource struct {
	file map[string]string
}

func (e envSource) get(key string) (string, bool) {
	for _, k := range []string{key, strings.ToLower(key)} {
		if v := os.Getenv(k); v != "" {
			return v, true
		}
	}
	for _, k := range []string{key, strings.ToLower(key)} {
		if v := e.file[k]; v != "" {
			return v, true
		}
	}
	return "", false
}

func (c *Config) applyEnv(env envSource) error {
	getEnv := env.get
	str := func(key string, dst *string) {
		if v, ok := getEnv(key); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := getEnv(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := getEnv(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := getEnv(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("EMAIL", &c.Credentials.Email)
	str("PASSWORD", &c.Credentials.Password)
	str("API_KEY", &c.Sentiment.APIKey)
	str("MODEL", &c.Sentiment.Model)
	str("SENTIMENT_PROVIDER", &c.Sentiment.Provider)
	str("OPENAI_BASE_URL", &c.Sentiment.BaseURL)
	num("LOOKBACK_PERIOD_DAYS", &c.Analysis.LookbackDays)
	if v, ok := getEnv("TECHNICAL_INDICATORS"); ok {
		c.Analysis.Indicators = splitList(v)
	}
	num("RSI_WINDOW", &c.Analysis.RSIWindow)
	num("WORKERS", &c.Analysis.Workers)
	dur("FETCH_TIMEOUT", &c.Analysis.FetchTimeout)
	str("HOLDINGS_SOURCE", &c.Holdings.Source)
	str("HOLDINGS_FILE", &c.Holdings.File)
	str("REPORT_PATH", &c.Report.Path)
	num("UPDATE_FREQUENCY_HOURS", &c.Schedule.UpdateFrequencyHours)
	boolean("RUN_AT_START", &c.Schedule.RunAtStart)
	str("CACHE_BACKEND", &c.Cache.Backend)
	dur("CACHE_TTL", &c.Cache.TTL)
	str("REDIS_ADDR", &c.Cache.RedisAddr)
	str("REDIS_PASSWORD", &c.Cache.RedisPassword)
	num("REDIS_DB", &c.Cache.RedisDB)
	str("SQLITE_PATH", &c.Cache.SQLitePath)
	str("HISTORY_PATH", &c.History.SQLitePath)
	str("METRICS_FILE", &c.Metrics.File)
	boolean("IS_DEBUG", &c.Log.Debug)
	str("LOG_FORMAT", &c.Log.Format)
	str("LOG_FILE", &c.Log.File)
	str("HTTPS_PROXY", &c.Proxy)

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var validate = validator.New()

// Validate checks field constraints, indicator names and, for the
// Wealthsimple source, that real credentials were supplied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, name := range c.Analysis.Indicators {
		if !validIndicator(name) {
			return fmt.Errorf("invalid config: unknown indicator %q", name)
		}
	}
	if c.Holdings.Source == "wealthsimple" {
		if placeholderEmails[strings.TrimSpace(c.Credentials.Email)] ||
			placeholderPasswords[strings.TrimSpace(c.Credentials.Password)] {
			return fmt.Errorf("update EMAIL and PASSWORD with valid credentials: %w", ErrPlaceholderCredentials)
		}
	}
	return nil
}

func validIndicator(name string) bool {
	for _, n := range model.AllIndicators {
		if n == name {
			return true
		}
	}
	return false
}

// SentimentEnabled reports whether a real API key is configured.
func (c *Config) SentimentEnabled() bool {
	return !placeholderAPIKeys[strings.TrimSpace(c.Sentiment.APIKey)]
}

// EnabledIndicators returns the configured indicator set. Empty means all.
func (c *Config) EnabledIndicators() map[string]bool {
	if len(c.Analysis.Indicators) == 0 {
		return nil
	}
	m := make(map[string]bool, len(c.Analysis.Indicators))
	for _, n := range c.Analysis.Indicators {
		m[n] = true
	}
	return m
}

// UpdateInterval is the time between scheduled report runs.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Schedule.UpdateFrequencyHours) * time.Hour
}
