/*
Package config manages TOML config for DialServe services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/dialserve/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the config file name inside the config directory.
const FileName = "dialserve.toml"

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Index   IndexConfig   `toml:"index"`
	Source  SourceConfig  `toml:"source"`
	Ranking RankingConfig `toml:"ranking"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxEntries      int `toml:"max_entries"`
	MaxQuery        int `toml:"max_query"`
	MinQuery        int `toml:"min_query"`
	ResultCacheSize int `toml:"result_cache_size"`
}

// IndexConfig controls what keys the contact index holds.
type IndexConfig struct {
	NANP         bool `toml:"nanp"`
	Latinize     bool `toml:"latinize"`
	MaxKeyDigits int  `toml:"max_key_digits"`
	Initials     bool `toml:"initials"`
}

// SourceConfig selects and configures the contact source.
type SourceConfig struct {
	Kind   string `toml:"kind"`
	Path   string `toml:"path"`
	Format string `toml:"format"`

	RedisAddr      string `toml:"redis_addr"`
	RedisPassword  string `toml:"redis_password"`
	RedisDB        int    `toml:"redis_db"`
	RedisNamespace string `toml:"redis_namespace"`

	ESURLs     []string `toml:"es_urls"`
	ESIndex    string   `toml:"es_index"`
	ESPageSize int      `toml:"es_page_size"`
}

// RankingConfig orders contacts read from sources that carry raw usage data.
type RankingConfig struct {
	RecentWindowDays []int `toml:"recent_window_days"`
	PreferStarred    bool  `toml:"prefer_starred"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	Color        bool `toml:"color"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. the platform config dir (XDG on linux)
// 2. ~/.dialserve, the temp dir or the executable dir, whichever is writable
func GetConfigDir() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		log.Errorf("Failed to resolve paths: %v", err)
		return "", err
	}
	path, err := pr.GetConfigPath(FileName)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// GetDefaultConfigPath returns the default path for dialserve.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/dialserve/dialserve.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxEntries:      3,
			MaxQuery:        64,
			MinQuery:        1,
			ResultCacheSize: 256,
		},
		Index: IndexConfig{
			NANP:         true,
			Latinize:     true,
			MaxKeyDigits: 64,
			Initials:     true,
		},
		Source: SourceConfig{
			Kind:           "file",
			Path:           "contacts.toml",
			RedisAddr:      "localhost:6379",
			RedisNamespace: "dialserve",
			ESURLs:         []string{"http://localhost:9200"},
			ESIndex:        "contacts",
			ESPageSize:     500,
		},
		Ranking: RankingConfig{
			RecentWindowDays: []int{3, 7, 30},
			PreferStarred:    true,
		},
		CLI: CliConfig{
			DefaultLimit: 3,
			Color:        true,
		},
	}
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

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find and leaves the
// rest at their defaults.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "index"); ok {
		extractIndexConfig(section, &config.Index)
	}
	if section, ok := utils.ExtractSection(tempConfig, "source"); ok {
		extractSourceConfig(section, &config.Source)
	}
	if section, ok := utils.ExtractSection(tempConfig, "ranking"); ok {
		extractRankingConfig(section, &config.Ranking)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_entries"); ok {
		server.MaxEntries = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		server.MaxQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "min_query"); ok {
		server.MinQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "result_cache_size"); ok {
		server.ResultCacheSize = val
	}
}

func extractIndexConfig(data map[string]any, index *IndexConfig) {
	if val, ok := utils.ExtractBool(data, "nanp"); ok {
		index.NANP = val
	}
	if val, ok := utils.ExtractBool(data, "latinize"); ok {
		index.Latinize = val
	}
	if val, ok := utils.ExtractInt64(data, "max_key_digits"); ok {
		index.MaxKeyDigits = val
	}
	if val, ok := utils.ExtractBool(data, "initials"); ok {
		index.Initials = val
	}
}

func extractSourceConfig(data map[string]any, src *SourceConfig) {
	if val, ok := utils.ExtractString(data, "kind"); ok {
		src.Kind = val
	}
	if val, ok := utils.ExtractString(data, "path"); ok {
		src.Path = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		src.Format = val
	}
	if val, ok := utils.ExtractString(data, "redis_addr"); ok {
		src.RedisAddr = val
	}
	if val, ok := utils.ExtractString(data, "redis_password"); ok {
		src.RedisPassword = val
	}
	if val, ok := utils.ExtractInt64(data, "redis_db"); ok {
		src.RedisDB = val
	}
	if val, ok := utils.ExtractString(data, "redis_namespace"); ok {
		src.RedisNamespace = val
	}
	if val, ok := utils.ExtractStrings(data, "es_urls"); ok {
		src.ESURLs = val
	}
	if val, ok := utils.ExtractString(data, "es_index"); ok {
		src.ESIndex = val
	}
	if val, ok := utils.ExtractInt64(data, "es_page_size"); ok {
		src.ESPageSize = val
	}
}

func extractRankingConfig(data map[string]any, ranking *RankingConfig) {
	if val, ok := utils.ExtractInts(data, "recent_window_days"); ok {
		ranking.RecentWindowDays = val
	}
	if val, ok := utils.ExtractBool(data, "prefer_starred"); ok {
		ranking.PreferStarred = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// RebuildConfigFile force creates a new dialserve.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server values and saves to file
func (c *Config) Update(configPath string, maxEntries, maxQuery, minQuery *int) error {
	server := &c.Server
	if maxEntries != nil {
		server.MaxEntries = *maxEntries
	}
	if maxQuery != nil {
		server.MaxQuery = *maxQuery
	}
	if minQuery != nil {
		server.MinQuery = *minQuery
	}
	return SaveConfig(c, configPath)
}
