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
	DefaultConfigPath = "/etc/permiso/config"
	ConfigFileName    = "permiso.yml"
)

// Config holds all permiso configuration settings
type Config struct {
	// DatabaseURL is the postgres connection string for permission records
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// AuditDatabaseURL is the postgres connection string for audit messages.
	// Empty reuses DatabaseURL.
	AuditDatabaseURL string `yaml:"audit_database_url" json:"audit_database_url"`

	// AuditEnabled enables audit event emission
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// InvitationTTLHours is the default invitation lifetime in hours.
	// Zero means invitations never expire.
	InvitationTTLHours int `yaml:"invitation_ttl_hours" json:"invitation_ttl_hours"`

	// PolicyPath is the defaults policy file applied at startup
	PolicyPath string `yaml:"policy_path" json:"policy_path"`

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
		AuditEnabled:       true,
		InvitationTTLHours: 7 * 24,
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("PERMISO_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"database_url", "audit_database_url", "audit_enabled",
		"invitation_ttl_hours", "policy_path",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = "file"
	}
	if file.AuditDatabaseURL != "" {
		c.AuditDatabaseURL = file.AuditDatabaseURL
		c.sources["audit_database_url"] = "file"
	}
	if file.InvitationTTLHours != 0 {
		c.InvitationTTLHours = file.InvitationTTLHours
		c.sources["invitation_ttl_hours"] = "file"
	}
	if file.PolicyPath != "" {
		c.PolicyPath = file.PolicyPath
		c.sources["policy_path"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "environment"
	}
	if val := os.Getenv("PERMISO_AUDIT_DATABASE_URL"); val != "" {
		c.AuditDatabaseURL = val
		c.sources["audit_database_url"] = "environment"
	}
	if val := os.Getenv("PERMISO_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("PERMISO_INVITATION_TTL_HOURS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.InvitationTTLHours = i
			c.sources["invitation_ttl_hours"] = "environment"
		}
	}
	if val := os.Getenv("PERMISO_POLICY_PATH"); val != "" {
		c.PolicyPath = val
		c.sources["policy_path"] = "environment"
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

// InvitationTTL returns the default invitation lifetime as a duration.
// Zero means no expiry.
func (c *Config) InvitationTTL() time.Duration {
	return time.Duration(c.InvitationTTLHours) * time.Hour
}

// AuditURL returns the audit database connection string, falling back to
// the records database.
func (c *Config) AuditURL() string {
	if c.AuditDatabaseURL != "" {
		return c.AuditDatabaseURL
	}
	return c.DatabaseURL
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.InvitationTTLHours < 0 {
		return fmt.Errorf("invalid invitation_ttl_hours value: %d", c.InvitationTTLHours)
	}
	if c.PolicyPath != "" {
		if _, err := os.Stat(c.PolicyPath); err != nil {
			return fmt.Errorf("invalid policy_path value: %w", err)
		}
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "audit_database_url", Value: redactURL(c.AuditDatabaseURL), Source: c.Source("audit_database_url")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "invitation_ttl_hours", Value: strconv.Itoa(c.InvitationTTLHours), Source: c.Source("invitation_ttl_hours")},
		{Name: "policy_path", Value: c.PolicyPath, Source: c.Source("policy_path")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// redactURL hides the password portion of a connection string when shown
func redactURL(url string) string {
	at := strings.LastIndex(url, "@")
	if at < 0 {
		return url
	}
	scheme := strings.Index(url, "://")
	if scheme < 0 || scheme+3 > at {
		return url
	}
	creds := url[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return url[:scheme+3+colon+1] + "*****" + url[at:]
	}
	return url
}
