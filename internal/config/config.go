package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/caarlos0/env/v11"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "nextcareer"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
	EnvPrefix       = "NEXTCAREER_"
)

const (
	DefaultEndpoint       = "https://final-project-api-alpha.vercel.app/api/jobs"
	DefaultTimeoutSeconds = 30
)

// Config holds defaults for every page visit. Values come from
// config.json first and NEXTCAREER_* variables second.
type Config struct {
	Endpoint        string `json:"endpoint" env:"ENDPOINT"`
	TimeoutSeconds  int    `json:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	DefaultLocation string `json:"default_location" env:"DEFAULT_LOCATION"`
	DefaultType     string `json:"default_type" env:"DEFAULT_TYPE"`
}

func DefaultConfig() Config {
	return Config{
		Endpoint:        DefaultEndpoint,
		TimeoutSeconds:  DefaultTimeoutSeconds,
		DefaultLocation: "all",
		DefaultType:     "all",
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads path (a missing or blank file is fine) and then applies
// environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	case len(strings.TrimSpace(string(data))) > 0:
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}

func (c *Config) sanitize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if strings.TrimSpace(c.DefaultLocation) == "" {
		c.DefaultLocation = "all"
	}
	if strings.TrimSpace(c.DefaultType) == "" {
		c.DefaultType = "all"
	}
}

// InitDir writes default config.json and proxies.txt into dir if they don't
// already exist.
func InitDir(dir string) ([]string, error) {
	var created []string
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte("# one proxy URL per line\n"), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadProxies resolves the proxy list from the flag, NEXTCAREER_PROXIES or
// proxies.txt, in that order.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if value := strings.TrimSpace(os.Getenv(EnvPrefix + "PROXIES")); value != "" {
		return splitCSV(value), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}
	return readProxiesFile(path)
}

func readProxiesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
