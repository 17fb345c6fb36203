package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telnet: TelnetConfig{
			Host:         "0.0.0.0",
			Port:         4000,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Generator: GeneratorConfig{
			MaxElementalRerolls: 100,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestAddrs(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "0.0.0.0:4000", cfg.Telnet.Addr())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
telnet:
  host: 127.0.0.1
  port: 4001
  read_timeout: 1m
http:
  port: 9090
  shutdown_timeout: 2s
logging:
  level: debug
  format: console
generator:
  seed: 42
  max_elemental_rerolls: 7
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4001, cfg.Telnet.Port)
	assert.Equal(t, time.Minute, cfg.Telnet.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Telnet.WriteTimeout, "default applies")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, 7, cfg.Generator.MaxElementalRerolls)
}

func TestLoadShippedDevConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "dev.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 100, cfg.Generator.MaxElementalRerolls)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Telnet.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, uint64(0), cfg.Generator.Seed)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BBGEN_HTTP_PORT", "9191")
	t.Setenv("BBGEN_GENERATOR_SEED", "7")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTP.Port)
	assert.Equal(t, uint64(7), cfg.Generator.Seed)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("http.port", 0)
	_, err := LoadFromViper(v)
	assert.ErrorContains(t, err, "http.port must be 1-65535")
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Telnet.Port = 0
	cfg.HTTP.ShutdownTimeout = -time.Second
	cfg.Generator.MaxElementalRerolls = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"logging.level must be one of",
		"telnet.port must be 1-65535",
		"http.shutdown_timeout must not be negative",
		"generator.max_elemental_rerolls must be >= 1",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateTimeouts(t *testing.T) {
	cfg := validConfig()
	cfg.Telnet.ReadTimeout = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.HTTP.WriteTimeout = -1
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyValidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		cfg := validConfig()
		cfg.HTTP.Port = port
		cfg.Telnet.Port = port
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid port %d rejected: %v", port, err)
		}
	})
}

func TestPropertyInvalidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid port %d accepted", port)
		}
	})
}

func TestPropertyRerollCapPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-100, 1000).Draw(t, "rerolls")
		cfg := validConfig()
		cfg.Generator.MaxElementalRerolls = n
		err := cfg.Validate()
		if (n >= 1) != (err == nil) {
			t.Fatalf("rerolls=%d err=%v", n, err)
		}
	})
}
