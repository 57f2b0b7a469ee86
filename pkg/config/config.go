package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/refdata/config"
	ConfigFileName    = "refdata.yml"
)

// Config holds all refdata server configuration settings
type Config struct {
	// APIListLimitMax is the maximum number of records returned by a
	// collection request
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// UserTokenTTL is the TTL for access tokens in seconds
	UserTokenTTL int `yaml:"user_token_ttl" json:"user_token_ttl"`

	// RememberMeTokenTTL is the TTL in seconds for tokens issued to
	// logins that set rememberme
	RememberMeTokenTTL int `yaml:"remember_me_token_ttl" json:"remember_me_token_ttl"`

	// DefaultRoles is the list of roles ensured to exist at server start
	DefaultRoles []string `yaml:"default_roles" json:"default_roles"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		APIListLimitMax:    1000,
		UserTokenTTL:       3600,
		RememberMeTokenTTL: 7 * 24 * 3600,
		DefaultRoles:       []string{"admin", "user"},
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*Config, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("REFDATA_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	// Override with environment variables
	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"api_list_limit_max", "user_token_ttl",
		"remember_me_token_ttl", "default_roles",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.UserTokenTTL != 0 {
		c.UserTokenTTL = file.UserTokenTTL
		c.sources["user_token_ttl"] = "file"
	}
	if file.RememberMeTokenTTL != 0 {
		c.RememberMeTokenTTL = file.RememberMeTokenTTL
		c.sources["remember_me_token_ttl"] = "file"
	}
	if len(file.DefaultRoles) > 0 {
		c.DefaultRoles = file.DefaultRoles
		c.sources["default_roles"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("REFDATA_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("REFDATA_USER_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.UserTokenTTL = i
			c.sources["user_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("REFDATA_REMEMBER_ME_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.RememberMeTokenTTL = i
			c.sources["remember_me_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("REFDATA_DEFAULT_ROLES"); val != "" {
		c.DefaultRoles = splitAndTrim(val)
		c.sources["default_roles"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the access token TTL as a duration
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.UserTokenTTL) * time.Second
}

// RememberMeTTL returns the remember-me token TTL as a duration
func (c *Config) RememberMeTTL() time.Duration {
	return time.Duration(c.RememberMeTokenTTL) * time.Second
}

// Attributes returns all configuration attributes with their sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "user_token_ttl", Value: strconv.Itoa(c.UserTokenTTL), Source: c.Source("user_token_ttl")},
		{Name: "remember_me_token_ttl", Value: strconv.Itoa(c.RememberMeTokenTTL), Source: c.Source("remember_me_token_ttl")},
		{Name: "default_roles", Value: strings.Join(c.DefaultRoles, ","), Source: c.Source("default_roles")},
	}
}

// FormatJSON renders the attributes as JSON
func (c *Config) FormatJSON() (string, error) {
	out, err := json.MarshalIndent(c.Attributes(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FormatText renders the attributes as an aligned text table
func (c *Config) FormatText() string {
	var b strings.Builder
	for _, attr := range c.Attributes() {
		fmt.Fprintf(&b, "%-24s %-12s (%s)\n", attr.Name, attr.Value, attr.Source)
	}
	return b.String()
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
