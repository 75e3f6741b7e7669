// Package config loads server configuration. Values come from three
// layers, later ones winning: embedded defaults, an optional YAML file,
// and environment variables. Gameplay tuning constants live in
// internal/loop/config instead; this package only covers the serving
// processes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the full serving-process configuration.
type Config struct {
	SSH   SSH   `yaml:"ssh"`
	Web   Web   `yaml:"web"`
	Game  Game  `yaml:"game"`
	Stats Stats `yaml:"stats"`
}

// SSH configures the SSH game server.
type SSH struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
}

// Web configures the web server.
type Web struct {
	Host           string   `yaml:"host"`
	Port           string   `yaml:"port"`
	SSHDisplayHost string   `yaml:"ssh_display_host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Game configures session behavior shared by all front ends.
type Game struct {
	// CollisionMode selects the pair-detection strategy: "scalar",
	// "grid", "batch", or empty for auto.
	CollisionMode string `yaml:"collision_mode"`
	StrictFaults  bool   `yaml:"strict_faults"`
}

// Stats configures the game-over record sink.
type Stats struct {
	Path string `yaml:"path"`
}

// Load builds the configuration. The embedded defaults always apply;
// a YAML file at path overrides them field by field, and environment
// variables override both. An empty path skips the file layer; a
// non-empty path that does not exist is not an error, so a default
// path can be baked into the binaries.
func Load(path string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from the environment. Only variables that
// are set take effect.
func applyEnv(cfg *Config) error {
	cfg.SSH.Host = GetEnv("SSH_HOST", cfg.SSH.Host)
	cfg.SSH.Port = GetEnv("SSH_PORT", cfg.SSH.Port)
	cfg.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", cfg.SSH.HostKeyPath)

	cfg.Web.Host = GetEnv("WEB_HOST", cfg.Web.Host)
	cfg.Web.Port = GetEnv("WEB_PORT", cfg.Web.Port)
	cfg.Web.SSHDisplayHost = GetEnv("SSH_DISPLAY_HOST", cfg.Web.SSHDisplayHost)
	if v, ok := os.LookupEnv("WEB_ALLOWED_ORIGINS"); ok {
		cfg.Web.AllowedOrigins = splitList(v)
	}

	cfg.Game.CollisionMode = GetEnv("COLLISION_MODE", cfg.Game.CollisionMode)
	if v, ok := os.LookupEnv("STRICT_FAULTS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse STRICT_FAULTS=%q: %w", v, err)
		}
		cfg.Game.StrictFaults = b
	}

	cfg.Stats.Path = GetEnv("STATS_PATH", cfg.Stats.Path)
	return nil
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
