package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

func init() {
	ConfigDir = defaultConfigDir()
	ConfigFilePath = filepath.Join(ConfigDir, "config.yml")
}

var (
	// ConfigDir holds the config file, logs and traces
	ConfigDir string

	// ConfigFilePath is the YAML file holding the persisted session
	ConfigFilePath string
)

// Config represents the persisted client configuration
type Config struct {
	AccessToken string    `yaml:"access_token"`
	LastUpdated time.Time `yaml:"last_updated"`
	APIURL      string    `yaml:"api_url,omitempty"`
}

func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".binotify")
	}
	return filepath.Join(homeDir, ".binotify")
}

// readConfig reads the configuration from the config file
// This is private - use ConfigManager methods instead
func readConfig() (Config, error) {
	var config Config
	data, err := os.ReadFile(ConfigFilePath)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(data, &config)
	return config, err
}

// writeConfig writes the configuration to the config file
// This is private - use ConfigManager methods instead
func writeConfig(config Config) error {
	data, err := yaml.Marshal(&config)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(ConfigFilePath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(ConfigFilePath, data, 0600)
}
