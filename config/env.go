package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Overridden via -ldflags in production builds.
var (
	embeddedBaseURL string
)

const (
	defaultBaseURL = "http://localhost:3000"
	defaultTimeout = 10 * time.Second
)

// Settings holds runtime options resolved from the environment
type Settings struct {
	BaseURL               string
	Timeout               time.Duration
	LogLevel              string
	LogFile               string
	TracingEnabled        bool
	NotifyTransportErrors bool
}

// LoadEnv loads a .env file from the working directory when one exists
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	return nil
}

// GetBaseURL resolves the authentication API base URL
func GetBaseURL() (string, error) {
	if embeddedBaseURL != "" {
		return embeddedBaseURL, nil
	}
	if err := LoadEnv(); err != nil {
		return "", err
	}
	var url string
	if os.Getenv("ENV") == "production" {
		url = os.Getenv("BASE_URL_PROD")
	} else {
		url = os.Getenv("BASE_URL_DEV")
	}
	if url == "" {
		url = defaultBaseURL
	}
	return url, nil
}

// LoadSettings resolves settings from the environment. The API URL saved in
// the config file takes precedence over the environment.
func LoadSettings(manager *ConfigManager) (Settings, error) {
	baseURL, err := GetBaseURL()
	if err != nil {
		return Settings{}, err
	}
	if saved := manager.GetAPIURL(); saved != "" && embeddedBaseURL == "" {
		baseURL = saved
	}

	settings := Settings{
		BaseURL:  baseURL,
		Timeout:  defaultTimeout,
		LogLevel: os.Getenv("LOG_LEVEL"),
		LogFile:  os.Getenv("BINOTIFY_LOG_FILE"),
	}
	if settings.LogFile == "" {
		settings.LogFile = filepath.Join(ConfigDir, "binotify.log")
	}

	if raw := os.Getenv("BINOTIFY_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid BINOTIFY_TIMEOUT %q: %w", raw, err)
		}
		settings.Timeout = timeout
	}
	if settings.TracingEnabled, err = envBool("BINOTIFY_TRACING", false); err != nil {
		return Settings{}, err
	}
	if settings.NotifyTransportErrors, err = envBool("BINOTIFY_NOTIFY_TRANSPORT_ERRORS", false); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

func envBool(name string, fallback bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}
