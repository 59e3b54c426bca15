/*
Package config manages the TOML config for addrdict.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/addrdict/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the default config file name.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// DictConfig holds dataset and trie options.
type DictConfig struct {
	KeyColumn      string   `toml:"key_column"`
	CoordColumns   []string `toml:"coord_columns"`
	CoordPrecision int      `toml:"coord_precision"`
	MaxKeyLength   int      `toml:"max_key_length"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxResults  int `toml:"max_results"`
	MaxComplete int `toml:"max_complete"`
}

// CliConfig holds query driver options.
type CliConfig struct {
	ShowCounters bool `toml:"show_counters"`
	Prompt       bool `toml:"prompt"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			KeyColumn:      "EZI_ADD",
			CoordColumns:   []string{"x", "y"},
			CoordPrecision: 5,
			MaxKeyLength:   512,
		},
		Server: ServerConfig{
			MaxResults:  0,
			MaxComplete: 24,
		},
		CLI: CliConfig{
			ShowCounters: true,
			Prompt:       true,
		},
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/addrdict/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, resolver *utils.PathResolver) (*Config, string) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	if resolver == nil {
		log.Warn("No config location available. Using built-in defaults...")
		return DefaultConfig(), ""
	}
	defaultPath := resolver.GetConfigPath(FileName)
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse keeps every section value that still decodes
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.normalize()
	return config, nil
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "key_column"); ok {
		dict.KeyColumn = val
	}
	if val, ok := utils.ExtractStringSlice(data, "coord_columns"); ok {
		dict.CoordColumns = val
	}
	if val, ok := utils.ExtractInt64(data, "coord_precision"); ok {
		dict.CoordPrecision = val
	}
	if val, ok := utils.ExtractInt64(data, "max_key_length"); ok {
		dict.MaxKeyLength = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		server.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "max_complete"); ok {
		server.MaxComplete = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "show_counters"); ok {
		cli.ShowCounters = val
	}
	if val, ok := utils.ExtractBool(data, "prompt"); ok {
		cli.Prompt = val
	}
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Dict.KeyColumn == "" {
		log.Warnf("Empty key_column, using %q", def.Dict.KeyColumn)
		c.Dict.KeyColumn = def.Dict.KeyColumn
	}
	if c.Dict.CoordPrecision < 0 {
		c.Dict.CoordPrecision = def.Dict.CoordPrecision
	}
	if c.Dict.MaxKeyLength <= 0 {
		c.Dict.MaxKeyLength = def.Dict.MaxKeyLength
	}
	if c.Server.MaxResults < 0 {
		c.Server.MaxResults = 0
	}
	if c.Server.MaxComplete <= 0 {
		c.Server.MaxComplete = def.Server.MaxComplete
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
