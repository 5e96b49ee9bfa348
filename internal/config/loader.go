// Package config loads the service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML can carry values like "30m".
type Duration time.Duration

// UnmarshalYAML decodes either a Go duration string or a number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration in Go string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config captures the runtime configuration of the service.
type Config struct {
	HTTPPort          int      `yaml:"http_port"`
	SQLiteDSN         string   `yaml:"sqlite_dsn"`
	HolidayCSVPath    string   `yaml:"holiday_csv_path"`
	SessionTTL        Duration `yaml:"session_ttl"`
	SessionMaxEntries int      `yaml:"session_max_entries"`

	Log  LogConfig  `yaml:"log"`
	Auth AuthConfig `yaml:"auth"`
}

// LogConfig controls the structured log output. An empty file path logs to
// stderr only.
type LogConfig struct {
	FilePath   string `yaml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// AuthConfig holds the optional basic auth gate. Both fields empty disables
// the gate. The password is stored as an argon2id digest, never in clear.
type AuthConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// Default returns the configuration used when no file and no overrides exist.
func Default() Config {
	return Config{
		HTTPPort:          8080,
		SQLiteDSN:         "markdays.db",
		SessionTTL:        Duration(30 * time.Minute),
		SessionMaxEntries: 1024,
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load reads the configuration file at path when it exists, then applies
// MARKDAYS_* environment overrides. A missing file is not an error; an empty
// path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("設定ファイルの形式が不正です: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// First run, defaults apply.
		default:
			return Config{}, fmt.Errorf("設定ファイルを読み込めませんでした: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML via a same-directory temp file and
// rename, so a crash never leaves a half-written file behind.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func applyEnv(cfg *Config) error {
	invalid := make([]string, 0, 2)

	if value := strings.TrimSpace(os.Getenv("MARKDAYS_HTTP_PORT")); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "MARKDAYS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if value := strings.TrimSpace(os.Getenv("MARKDAYS_SQLITE_DSN")); value != "" {
		cfg.SQLiteDSN = value
	}

	if value := strings.TrimSpace(os.Getenv("MARKDAYS_HOLIDAY_CSV")); value != "" {
		cfg.HolidayCSVPath = value
	}

	if value := strings.TrimSpace(os.Getenv("MARKDAYS_SESSION_TTL")); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "MARKDAYS_SESSION_TTL")
		} else {
			cfg.SessionTTL = Duration(ttl)
		}
	}

	if value := strings.TrimSpace(os.Getenv("MARKDAYS_SESSION_MAX_ENTRIES")); value != "" {
		entries, err := strconv.Atoi(value)
		if err != nil || entries <= 0 {
			invalid = append(invalid, "MARKDAYS_SESSION_MAX_ENTRIES")
		} else {
			cfg.SessionMaxEntries = entries
		}
	}

	if value := strings.TrimSpace(os.Getenv("MARKDAYS_LOG_FILE")); value != "" {
		cfg.Log.FilePath = value
	}

	if value := strings.TrimSpace(os.Getenv("MARKDAYS_AUTH_USERNAME")); value != "" {
		cfg.Auth.Username = value
	}
	if value := strings.TrimSpace(os.Getenv("MARKDAYS_AUTH_PASSWORD_HASH")); value != "" {
		cfg.Auth.PasswordHash = value
	}

	if len(invalid) > 0 {
		return fmt.Errorf("環境変数の値が不正です: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func (c Config) validate() error {
	invalid := make([]string, 0, 2)
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		invalid = append(invalid, "http_port")
	}
	if strings.TrimSpace(c.SQLiteDSN) == "" {
		invalid = append(invalid, "sqlite_dsn")
	}
	if c.SessionTTL <= 0 {
		invalid = append(invalid, "session_ttl")
	}
	if c.SessionMaxEntries <= 0 {
		invalid = append(invalid, "session_max_entries")
	}
	// The gate needs both halves or neither.
	if (c.Auth.Username == "") != (c.Auth.PasswordHash == "") {
		invalid = append(invalid, "auth")
	}
	if len(invalid) > 0 {
		return fmt.Errorf("設定値が不正です: %s", strings.Join(invalid, ", "))
	}
	return nil
}
