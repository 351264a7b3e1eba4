package config

// Package config provides a reusable loader for the runtime's configuration
// files and environment variables. It is versioned so that applications can
// depend on a stable API contract.
//
// Version: v0.2.0

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/synnergy-labs/asset-runtime/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.2.0"

// Config represents the unified configuration for a runtime node. It mirrors
// the structure of the YAML files under config/.
type Config struct {
	Kernel struct {
		MaxSborDepth   int   `mapstructure:"max_sbor_depth" json:"max_sbor_depth"`
		MaxSizeBytes   int   `mapstructure:"max_size_bytes" json:"max_size_bytes"`
		CostUnitLimit  int64 `mapstructure:"cost_unit_limit" json:"cost_unit_limit"`
		MaxCallDepth   int   `mapstructure:"max_call_depth" json:"max_call_depth"`
	} `mapstructure:"kernel" json:"kernel"`

	Store struct {
		Backend string `mapstructure:"backend" json:"backend"` // "memory" | "badger"
		DataDir string `mapstructure:"data_dir" json:"data_dir"`
	} `mapstructure:"store" json:"store"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
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

	viper.AutomaticEnv() // also consults process environment variables

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the RUNTIME_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("RUNTIME_ENV", ""))
}
