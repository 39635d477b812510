package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"spark/internal/crypto"
	"spark/internal/store"
)

// Defaults.
const (
	DefaultDatabase = "SparkSecureStore"
	DefaultLogLevel = "warn"
	ConfigFileName  = "config.yaml"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home          string `yaml:"home"`           // data directory, e.g. $HOME/.spark
	Database      string `yaml:"database"`       // LevelDB directory under Home
	Store         string `yaml:"store"`          // namespace inside the database
	KeyBits       int    `yaml:"key_bits"`       // modulus for new identities
	PassphraseEnv string `yaml:"passphrase_env"` // env var holding the at-rest passphrase
	LogLevel      string `yaml:"log_level"`

	// Passphrase set directly (from a flag) wins over PassphraseEnv.
	Passphrase string `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	home := ".spark"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".spark")
	}
	return Config{
		Home:     home,
		Database: DefaultDatabase,
		Store:    store.DefaultStoreName,
		KeyBits:  crypto.DefaultKeyBits,
		LogLevel: DefaultLogLevel,
	}
}

// LoadConfig reads path over the defaults, then applies SPARK_* environment
// overrides. A non-empty home (from a flag) beats both. An empty path means
// <home>/config.yaml, which may be absent.
func LoadConfig(home, path string) (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv("SPARK_HOME"); v != "" {
		cfg.Home = v
	}
	if home != "" {
		cfg.Home = home
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.Home, ConfigFileName)
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if home != "" {
		cfg.Home = home
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SPARK_HOME"); v != "" {
		cfg.Home = v
	}
	if v := os.Getenv("SPARK_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("SPARK_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("SPARK_KEY_BITS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SPARK_KEY_BITS: %w", err)
		}
		cfg.KeyBits = n
	}
	if v := os.Getenv("SPARK_PASSPHRASE_ENV"); v != "" {
		cfg.PassphraseEnv = v
	}
	if v := os.Getenv("SPARK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// Validate checks the fields that cannot be defaulted later.
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("config: home is empty")
	}
	if c.Database == "" {
		return errors.New("config: database is empty")
	}
	if c.KeyBits < crypto.MinKeyBits {
		return fmt.Errorf("config: key_bits %d is below %d", c.KeyBits, crypto.MinKeyBits)
	}
	return nil
}

// ResolvePassphrase returns the at-rest passphrase, or "" for none.
func (c Config) ResolvePassphrase() string {
	if c.Passphrase != "" {
		return c.Passphrase
	}
	if c.PassphraseEnv != "" {
		return os.Getenv(c.PassphraseEnv)
	}
	return ""
}
