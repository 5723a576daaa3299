// Package config provides a reusable loader for MintGate configuration
// files and environment variables. It is versioned so that applications can
// depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/epam/mintgate/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the unified configuration for a MintGate node. It
// mirrors the structure of the YAML files under cmd/config.
type Config struct {
	Contract struct {
		AdminID       string `mapstructure:"admin_id" json:"admin_id"`
		FeeAccountID  string `mapstructure:"fee_account_id" json:"fee_account_id"`
		MintgateFee   string `mapstructure:"mintgate_fee" json:"mintgate_fee"`
		MinRoyalty    string `mapstructure:"min_royalty" json:"min_royalty"`
		MaxRoyalty    string `mapstructure:"max_royalty" json:"max_royalty"`
		Name          string `mapstructure:"name" json:"name"`
		Symbol        string `mapstructure:"symbol" json:"symbol"`
		BaseURI       string `mapstructure:"base_uri" json:"base_uri"`
		MarketAccount string `mapstructure:"market_account" json:"market_account"`
	} `mapstructure:"contract" json:"contract"`

	Storage struct {
		SnapshotPath string `mapstructure:"snapshot_path" json:"snapshot_path"`
	} `mapstructure:"storage" json:"storage"`

	Server struct {
		Bind string `mapstructure:"bind" json:"bind"`
	} `mapstructure:"server" json:"server"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and
// returned. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	applyEnvOverrides(&cfg)
	AppConfig = cfg
	return &cfg, nil
}

// LoadFromEnv builds a configuration from environment variables alone, used
// by tools that run without a config directory.
func LoadFromEnv() *Config {
	var cfg Config
	applyEnvOverrides(&cfg)
	AppConfig = cfg
	return &cfg
}

func applyEnvOverrides(cfg *Config) {
	cfg.Contract.AdminID = utils.EnvOrDefault("MINTGATE_ADMIN", cfg.Contract.AdminID)
	cfg.Contract.FeeAccountID = utils.EnvOrDefault("MINTGATE_FEE_ACCOUNT", cfg.Contract.FeeAccountID)
	cfg.Contract.MintgateFee = utils.EnvOrDefault("MINTGATE_FEE", cfg.Contract.MintgateFee)
	cfg.Contract.MinRoyalty = utils.EnvOrDefault("MINTGATE_MIN_ROYALTY", cfg.Contract.MinRoyalty)
	cfg.Contract.MaxRoyalty = utils.EnvOrDefault("MINTGATE_MAX_ROYALTY", cfg.Contract.MaxRoyalty)
	cfg.Contract.BaseURI = utils.EnvOrDefault("MINTGATE_BASE_URI", cfg.Contract.BaseURI)
	cfg.Contract.MarketAccount = utils.EnvOrDefault("MINTGATE_MARKET_ACCOUNT", cfg.Contract.MarketAccount)
	cfg.Storage.SnapshotPath = utils.EnvOrDefault("MINTGATE_SNAPSHOT", cfg.Storage.SnapshotPath)
	cfg.Server.Bind = utils.EnvOrDefault("MINTGATE_BIND", cfg.Server.Bind)
	cfg.Logging.Level = utils.EnvOrDefault("LOG_LEVEL", cfg.Logging.Level)
}
