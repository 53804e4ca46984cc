package config

import (
	"errors"
	"time"
)

// ErrNoToken is returned when no access token has been persisted yet
var ErrNoToken = errors.New("no access token stored")

// ConfigManager handles configuration operations
type ConfigManager struct {
	now func() time.Time
}

// NewConfigManager creates a new config manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{now: time.Now}
}

// UpdateAuthConfig updates authentication-related configuration while preserving other settings
func (c *ConfigManager) UpdateAuthConfig(accessToken string) error {
	// Read existing config to preserve the API URL and other data
	cfg, err := readConfig()
	if err != nil {
		// If config doesn't exist, create new one
		cfg = Config{}
	}

	cfg.AccessToken = accessToken
	cfg.LastUpdated = c.now()

	return writeConfig(cfg)
}

// GetToken returns the persisted access token
func (c *ConfigManager) GetToken() (string, error) {
	cfg, err := readConfig()
	if err != nil {
		return "", err
	}
	if cfg.AccessToken == "" {
		return "", ErrNoToken
	}
	return cfg.AccessToken, nil
}

// GetAPIURL returns the API URL saved in the config file, if any
func (c *ConfigManager) GetAPIURL() string {
	cfg, err := readConfig()
	if err != nil {
		return ""
	}
	return cfg.APIURL
}

// SetAPIURL persists an API URL override
func (c *ConfigManager) SetAPIURL(url string) error {
	cfg, err := readConfig()
	if err != nil {
		cfg = Config{}
	}
	cfg.APIURL = url
	return writeConfig(cfg)
}
