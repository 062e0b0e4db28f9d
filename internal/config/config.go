// Package config loads the application configuration.
//
// Precedence, lowest first: the embedded default.yaml, an external YAML file,
// FORESTFUNDS_* environment variables. DB_PATH is also honoured for the
// database path.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// EnvPrefix prefixes every environment override, e.g. FORESTFUNDS_STORAGE_PATH.
const EnvPrefix = "FORESTFUNDS"

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Avatar  AvatarConfig  `mapstructure:"avatar"`
	Report  ReportConfig  `mapstructure:"report"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type LedgerConfig struct {
	DefaultBudget   float64       `mapstructure:"default_budget"`
	DefaultCurrency string        `mapstructure:"default_currency"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// Budget returns DefaultBudget as a decimal.
func (c LedgerConfig) Budget() decimal.Decimal {
	return decimal.NewFromFloat(c.DefaultBudget)
}

type AuthConfig struct {
	MinPasswordLength int `mapstructure:"min_password_length"`
}

type AvatarConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type ReportConfig struct {
	Style string `mapstructure:"style"`
}

// Load reads the configuration. With an empty configPath, forestfunds.yaml is
// looked up in the working directory and in $HOME/.forestfunds; a missing file
// is not an error. An explicit configPath must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		external := viper.New()
		external.SetConfigName("forestfunds")
		external.SetConfigType("yaml")
		external.AddConfigPath(".")
		external.AddConfigPath("$HOME/.forestfunds")
		if err := external.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(external.AllSettings()); err != nil {
				log.Printf("Warning: failed to merge %s: %v", external.ConfigFileUsed(), err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// DB_PATH is shared with the other tools; the prefixed variable wins.
	if path := os.Getenv("DB_PATH"); path != "" && os.Getenv(EnvPrefix+"_STORAGE_PATH") == "" {
		cfg.Storage.Path = path
	}
	if cfg.Ledger.RefreshInterval <= 0 {
		cfg.Ledger.RefreshInterval = time.Minute
	}
	return &cfg, nil
}
