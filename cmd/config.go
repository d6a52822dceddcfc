package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gowrivallaban/account-open-agenticAI/api"
	"github.com/gowrivallaban/account-open-agenticAI/logging"
	"github.com/gowrivallaban/account-open-agenticAI/orchestrator"
)

// appConfig aggregates every subsystem configuration section.
type appConfig struct {
	Orchestrator orchestrator.Config `mapstructure:"orchestrator"`
	Logging      logging.Config      `mapstructure:"logging"`
	Server       api.Config          `mapstructure:"server"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Orchestrator: orchestrator.DefaultConfig(),
		Logging:      logging.DefaultConfig(),
		Server:       api.DefaultConfig(),
	}
}

// loadConfig reads the config file (explicit path, working directory, or
// ~/.accountd), applies APEX_* environment overrides, and merges the result
// over defaults. A missing file is not an error; a malformed one is.
func loadConfig(path string) (*appConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("accountd")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.accountd")
		}
	}

	v.SetEnvPrefix("APEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var loaded appConfig
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := defaultAppConfig()
	cfg.Orchestrator.Merge(&loaded.Orchestrator)
	cfg.Logging.Merge(&loaded.Logging)
	cfg.Server.Merge(&loaded.Server)

	if cfg.Orchestrator.Engine.APIKey == "" {
		cfg.Orchestrator.Engine.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return &cfg, nil
}
