package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Server defaults
const HTTP_ADDRESS = ":8080"
const HTTP_SHUTDOWN_TIMEOUT = 5 * time.Second
const ENV_PROD = "prod"
const ENV_DEV = "dev"

// Wikimedia pageviews API (English Wikipedia only)
const MOST_VIEWED_API_STUB = "https://wikimedia.org/api/rest_v1/metrics/pageviews/top/en.wikipedia.org/all-access"
const ARTICLE_VIEWS_API_STUB = "https://wikimedia.org/api/rest_v1/metrics/pageviews/per-article/en.wikipedia/all-access/all-agents"
const UPSTREAM_USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/111.0.0.0 Safari/537.36"
const UPSTREAM_TIMEOUT = 30 * time.Second

// Redis Config; an empty address disables query stats.
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Metrics
const METRICS_PATH = "/metrics"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const TOP_ARTICLES_RESPONSE_RESOURCE = "top_articles_response.json"
const ARTICLE_VIEWS_RESPONSE_RESOURCE = "article_views_response.json"

const envPrefix = "PAGEVIEWS_"

// Config holds the runtime configuration of the pageviews server.
type Config struct {
	Env                 string        `yaml:"env"`
	HTTPAddr            string        `yaml:"httpAddr"`
	ShutdownTimeout     time.Duration `yaml:"shutdownTimeout"`
	MostViewedBaseURL   string        `yaml:"mostViewedBaseUrl"`
	ArticleViewsBaseURL string        `yaml:"articleViewsBaseUrl"`
	UserAgent           string        `yaml:"userAgent"`
	UpstreamTimeout     time.Duration `yaml:"upstreamTimeout"`
	RedisAddr           string        `yaml:"redisAddr"`
	RedisPassword       string        `yaml:"redisPassword"`
	RedisDB             int           `yaml:"redisDb"`
	MetricsEnabled      bool          `yaml:"metricsEnabled"`
	MetricsPath         string        `yaml:"metricsPath"`

	// LegacyDoubleEncoding wraps JSON bodies in a JSON string literal for
	// clients written against the double-encoded responses.
	LegacyDoubleEncoding bool `yaml:"legacyDoubleEncoding"`
}

// Default returns the production defaults.
func Default() *Config {
	return &Config{
		Env:                 ENV_PROD,
		HTTPAddr:            HTTP_ADDRESS,
		ShutdownTimeout:     HTTP_SHUTDOWN_TIMEOUT,
		MostViewedBaseURL:   MOST_VIEWED_API_STUB,
		ArticleViewsBaseURL: ARTICLE_VIEWS_API_STUB,
		UserAgent:           UPSTREAM_USER_AGENT,
		UpstreamTimeout:     UPSTREAM_TIMEOUT,
		RedisPassword:       REDIS_DB_PASSWORD,
		RedisDB:             REDIS_DB,
		MetricsEnabled:      true,
		MetricsPath:         METRICS_PATH,
	}
}

// Load builds a Config from defaults, an optional YAML file, an optional .env
// file in the working directory and PAGEVIEWS_* environment variables, in
// that order of precedence (last wins).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if c.Env != ENV_PROD && c.Env != ENV_DEV {
		return fmt.Errorf("config: env must be %q or %q, got %q", ENV_PROD, ENV_DEV, c.Env)
	}
	if c.HTTPAddr == "" {
		return errors.New("config: httpAddr is required")
	}
	if c.MostViewedBaseURL == "" || c.ArticleViewsBaseURL == "" {
		return errors.New("config: upstream base URLs are required")
	}
	if c.UpstreamTimeout < 0 {
		return errors.New("config: upstreamTimeout must not be negative")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	setString("ENV", &cfg.Env)
	setString("HTTP_ADDR", &cfg.HTTPAddr)
	setString("MOST_VIEWED_BASE_URL", &cfg.MostViewedBaseURL)
	setString("ARTICLE_VIEWS_BASE_URL", &cfg.ArticleViewsBaseURL)
	setString("USER_AGENT", &cfg.UserAgent)
	setString("REDIS_ADDR", &cfg.RedisAddr)
	setString("REDIS_PASSWORD", &cfg.RedisPassword)
	setString("METRICS_PATH", &cfg.MetricsPath)

	if v, ok := os.LookupEnv(envPrefix + "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid %sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := os.LookupEnv(envPrefix + "UPSTREAM_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid %sUPSTREAM_TIMEOUT: %w", envPrefix, err)
		}
		cfg.UpstreamTimeout = d
	}
	if v, ok := os.LookupEnv(envPrefix + "REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %sREDIS_DB: %w", envPrefix, err)
		}
		cfg.RedisDB = n
	}
	if v, ok := os.LookupEnv(envPrefix + "METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid %sMETRICS_ENABLED: %w", envPrefix, err)
		}
		cfg.MetricsEnabled = b
	}
	if v, ok := os.LookupEnv(envPrefix + "LEGACY_DOUBLE_ENCODING"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid %sLEGACY_DOUBLE_ENCODING: %w", envPrefix, err)
		}
		cfg.LegacyDoubleEncoding = b
	}
	return nil
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

// GetResourcePath resolves a file under the resources directory.
func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
