package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/foxboron/gpu-switch/efi/attributes"
)

const (
	EnvConfig         = "GPU_SWITCH_CONFIG"
	EnvEfivars        = "GPU_SWITCH_EFIVARS"
	EnvLegacy         = "GPU_SWITCH_LEGACY"
	EnvLogLevel       = "GPU_SWITCH_LOG_LEVEL"
	EnvLogTimestamp   = "GPU_SWITCH_LOG_TIMESTAMP"
	EnvLogNoColor     = "GPU_SWITCH_LOG_NOCOLOR"
	EnvUnsetImmutable = "GPU_SWITCH_UNSET_IMMUTABLE"
)

type Config struct {
	// Efivars is the efivarfs mount point.
	Efivars string `toml:"efivars"`
	// Legacy also edits gfx-saved-config-restore-status.
	Legacy bool `toml:"legacy"`
	// UnsetImmutable clears the immutable flag efivarfs sets on variable
	// files before writing them.
	UnsetImmutable bool `toml:"unset_immutable"`
	Verbosity      int  `toml:"verbosity"`
	// LogLevel overrides the level derived from Verbosity.
	LogLevel     string `toml:"log_level"`
	LogTimestamp bool   `toml:"log_timestamp"`
	LogNoColor   bool   `toml:"log_nocolor"`
}

func Default() Config {
	return Config{
		Efivars:        attributes.Efivars,
		UnsetImmutable: true,
	}
}

// Load returns the defaults overlaid with the TOML file at path, if any, and
// then with the environment. An empty path falls back to $GPU_SWITCH_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Efivars == "" || !filepath.IsAbs(c.Efivars) {
		return fmt.Errorf("efivars must be an absolute path, got %q", c.Efivars)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvEfivars)); v != "" {
		cfg.Efivars = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	for env, dst := range map[string]*bool{
		EnvLegacy:         &cfg.Legacy,
		EnvLogTimestamp:   &cfg.LogTimestamp,
		EnvLogNoColor:     &cfg.LogNoColor,
		EnvUnsetImmutable: &cfg.UnsetImmutable,
	} {
		v, ok, err := parseBool(os.Getenv(env))
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		if ok {
			*dst = v
		}
	}
	return nil
}

func parseBool(raw string) (bool, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, err
	}
	return v, true, nil
}
