package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Session persistence backends for the CLI.
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

const (
	DefaultAPIEndpoint = "http://localhost:8080"
	DefaultTimeout     = 10 * time.Second
)

// Client configures the API client, session persistence and CLI logging.
type Client struct {
	APIEndpoint    string        `yaml:"api_endpoint"`
	Timeout        time.Duration `yaml:"timeout"`
	SessionBackend string        `yaml:"session_backend"`
	StateDir       string        `yaml:"state_dir"`
	Redis          RedisConfig   `yaml:"redis"`
	LogLevel       string        `yaml:"log_level"`
	Tracing        bool          `yaml:"tracing"`
}

// RedisConfig configures the optional redis session backend.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

// DefaultClient returns the configuration used when nothing overrides it.
func DefaultClient() Client {
	return Client{
		APIEndpoint:    DefaultAPIEndpoint,
		Timeout:        DefaultTimeout,
		SessionBackend: SessionBackendFile,
		StateDir:       defaultStateDir(),
		Redis: RedisConfig{
			PoolSize:     4,
			MinIdleConns: 0,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			SessionTTL:   RefreshTokenTTL,
		},
		LogLevel: "warn",
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teampulse"
	}
	return filepath.Join(home, ".teampulse")
}

// LoadDotEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadClient layers defaults, an optional YAML file and PULSE_* environment variables.
// path falls back to PULSE_CONFIG; an explicitly named file must exist.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()

	if path == "" {
		path = os.Getenv("PULSE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Client{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Client{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyClientEnv(&cfg); err != nil {
		return Client{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

func applyClientEnv(cfg *Client) error {
	if v := os.Getenv("PULSE_API_ENDPOINT"); v != "" {
		cfg.APIEndpoint = v
	}
	if v := os.Getenv("PULSE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PULSE_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("PULSE_SESSION_BACKEND"); v != "" {
		cfg.SessionBackend = v
	}
	if v := os.Getenv("PULSE_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("PULSE_REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("PULSE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PULSE_TRACING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PULSE_TRACING: %w", err)
		}
		cfg.Tracing = b
	}
	return nil
}

// Validate reports the first configuration problem.
func (c Client) Validate() error {
	u, err := url.Parse(c.APIEndpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api endpoint %q must be an absolute http(s) URL", c.APIEndpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	switch c.SessionBackend {
	case SessionBackendFile:
		if c.StateDir == "" {
			return fmt.Errorf("state dir is required for the file session backend")
		}
	case SessionBackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis url is required for the redis session backend")
		}
	case SessionBackendMemory:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	return nil
}

// SessionFile is where the file backend keeps the session snapshot.
func (c Client) SessionFile() string {
	return filepath.Join(c.StateDir, "auth.json")
}

// CookieFile is where the CLI keeps the auth cookies between invocations.
func (c Client) CookieFile() string {
	return filepath.Join(c.StateDir, "cookies.json")
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	JWTSigningKey   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
	Seed            bool
	SeedPassword    string
	LogLevel        string
}

var (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PULSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	env := os.Getenv("PULSE_ENV")
	if env == "" {
		env = "development"
	}

	accessTTL := AccessTokenTTL
	if v := os.Getenv("PULSE_ACCESS_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			accessTTL = d
		}
	}
	refreshTTL := RefreshTokenTTL
	if v := os.Getenv("PULSE_REFRESH_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			refreshTTL = d
		}
	}

	signingKey := os.Getenv("PULSE_JWT_SIGNING_KEY")
	if signingKey == "" {
		// Development default; production deployments set PULSE_JWT_SIGNING_KEY.
		signingKey = "dev-secret-key-change-in-production"
	}

	seedPassword := os.Getenv("PULSE_SEED_PASSWORD")
	if seedPassword == "" {
		seedPassword = "teampulse"
	}

	return Server{
		Addr:            addr,
		Environment:     env,
		JWTSigningKey:   signingKey,
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
		CookieSecure:    os.Getenv("PULSE_COOKIE_SECURE") == "true",
		Seed:            os.Getenv("PULSE_SEED") == "true",
		SeedPassword:    seedPassword,
		LogLevel:        os.Getenv("PULSE_LOG_LEVEL"),
	}
}
