// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ava-labs/token-deployer/pkg/constants"
	"github.com/ava-labs/token-deployer/pkg/utils"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Keys lists the configuration keys that can be set
var Keys = []string{
	constants.ConfigRPCURLKey,
	constants.ConfigArtifactsDirKey,
	constants.ConfigKeyNameKey,
}

type Config struct{}

func New() *Config {
	return &Config{}
}

func (*Config) SetConfig(log logging.Logger, s string) {
	viper.SetConfigType("json")
	d := filepath.Dir(s)
	viper.AddConfigPath(d)
	viper.SetConfigFile(s)
	// TOKEN_DEPLOYER_RPC_URL overrides rpc-url
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info("Using config file", zap.String("config-file", s))
	} else {
		log.Info("No config file found", zap.String("config-file", s))
	}
}

func (*Config) GetConfigPath() string {
	return viper.ConfigFileUsed()
}

func (c *Config) ConfigFileExists() bool {
	return utils.FileExists(c.GetConfigPath())
}

func ValidateKey(key string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w %q, valid keys are: %s", constants.ErrUnsupportedKey, key, strings.Join(Keys, ", "))
	}
	return nil
}

// SetConfigValue sets the value of a configuration key.
func (c *Config) SetConfigValue(key string, value interface{}) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	viper.Set(key, value)
	if !c.ConfigFileExists() {
		return viper.WriteConfigAs(c.GetConfigPath())
	}
	return viper.WriteConfig()
}

func (*Config) ConfigValueIsSet(key string) bool {
	return viper.IsSet(key)
}

func (*Config) GetConfigStringValue(key string) string {
	return viper.GetString(key)
}

// StringValue returns [flagValue] if set, else the configured value for [key], else [defaultValue]
func (c *Config) StringValue(flagValue string, key string, defaultValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case c.ConfigValueIsSet(key) && c.GetConfigStringValue(key) != "":
		return c.GetConfigStringValue(key)
	}
	return defaultValue
}
