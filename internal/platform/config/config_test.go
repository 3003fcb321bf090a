package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ClientConfigSuite struct {
	suite.Suite
	dir string
}

func TestClientConfigSuite(t *testing.T) {
	suite.Run(t, new(ClientConfigSuite))
}

func (s *ClientConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
	for _, key := range []string{
		"PULSE_CONFIG", "PULSE_API_ENDPOINT", "PULSE_TIMEOUT", "PULSE_SESSION_BACKEND",
		"PULSE_STATE_DIR", "PULSE_REDIS_URL", "PULSE_LOG_LEVEL", "PULSE_TRACING",
	} {
		s.T().Setenv(key, "")
	}
}

func (s *ClientConfigSuite) writeFile(name, body string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *ClientConfigSuite) TestDefaults() {
	cfg, err := LoadClient("")
	s.Require().NoError(err)
	s.Equal(DefaultAPIEndpoint, cfg.APIEndpoint)
	s.Equal(DefaultTimeout, cfg.Timeout)
	s.Equal(SessionBackendFile, cfg.SessionBackend)
	s.Equal("warn", cfg.LogLevel)
	s.Equal("auth.json", filepath.Base(cfg.SessionFile()))
}

func (s *ClientConfigSuite) TestYAMLThenEnv() {
	path := s.writeFile("pulse.yaml", `
api_endpoint: https://pulse.example.com
timeout: 3s
session_backend: memory
log_level: debug
redis:
  url: redis://localhost:6379/2
`)
	s.T().Setenv("PULSE_LOG_LEVEL", "error")

	cfg, err := LoadClient(path)
	s.Require().NoError(err)
	s.Equal("https://pulse.example.com", cfg.APIEndpoint)
	s.Equal(3*time.Second, cfg.Timeout)
	s.Equal(SessionBackendMemory, cfg.SessionBackend)
	s.Equal("redis://localhost:6379/2", cfg.Redis.URL)
	s.Equal("error", cfg.LogLevel, "env wins over file")
}

func (s *ClientConfigSuite) TestConfigPathFromEnv() {
	path := s.writeFile("env.yaml", "api_endpoint: http://10.0.0.1:9000\n")
	s.T().Setenv("PULSE_CONFIG", path)

	cfg, err := LoadClient("")
	s.Require().NoError(err)
	s.Equal("http://10.0.0.1:9000", cfg.APIEndpoint)
}

func (s *ClientConfigSuite) TestMissingExplicitFile() {
	_, err := LoadClient(filepath.Join(s.dir, "nope.yaml"))
	s.Error(err)
}

func (s *ClientConfigSuite) TestValidation() {
	s.T().Setenv("PULSE_API_ENDPOINT", "localhost:8080")
	_, err := LoadClient("")
	s.ErrorContains(err, "absolute http(s) URL")

	s.T().Setenv("PULSE_API_ENDPOINT", "")
	s.T().Setenv("PULSE_SESSION_BACKEND", "redis")
	_, err = LoadClient("")
	s.ErrorContains(err, "redis url is required")

	s.T().Setenv("PULSE_SESSION_BACKEND", "floppy")
	_, err = LoadClient("")
	s.ErrorContains(err, "unknown session backend")

	s.T().Setenv("PULSE_SESSION_BACKEND", "")
	s.T().Setenv("PULSE_TIMEOUT", "soon")
	_, err = LoadClient("")
	s.ErrorContains(err, "PULSE_TIMEOUT")
}

func (s *ClientConfigSuite) TestLoadDotEnv() {
	s.T().Setenv("PULSE_STATE_DIR", "")
	os.Unsetenv("PULSE_STATE_DIR")
	path := s.writeFile(".env", "PULSE_STATE_DIR="+s.dir+"\n")

	s.Require().NoError(LoadDotEnv(path, filepath.Join(s.dir, "missing.env")))
	cfg, err := LoadClient("")
	s.Require().NoError(err)
	s.Equal(s.dir, cfg.StateDir)
}

func TestServerFromEnv(t *testing.T) {
	t.Setenv("PULSE_ADDR", ":9999")
	t.Setenv("PULSE_ACCESS_TOKEN_TTL", "5m")
	t.Setenv("PULSE_REFRESH_TOKEN_TTL", "not-a-duration")
	t.Setenv("PULSE_COOKIE_SECURE", "true")
	t.Setenv("PULSE_JWT_SIGNING_KEY", "")
	t.Setenv("PULSE_ENV", "")
	t.Setenv("PULSE_SEED", "true")
	t.Setenv("PULSE_SEED_PASSWORD", "")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, RefreshTokenTTL, cfg.RefreshTokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "development", cfg.Environment)
	require.NotEmpty(t, cfg.JWTSigningKey)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "teampulse", cfg.SeedPassword)
}
