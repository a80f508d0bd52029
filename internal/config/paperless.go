package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/asnreport/internal/common"
	"github.com/Veraticus/asnreport/internal/paperless"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyPaperlessURL       = "paperless.url"
	KeyPaperlessToken     = "paperless.token"
	KeyPaperlessTimeout   = "paperless.timeout"
	KeyRequestsPerSecond  = "paperless.requests_per_second"
	KeyPageSize           = "paperless.page_size"
	KeyOutputDir          = "output.dir"
	KeyProgress           = "output.progress"
	defaultOutputDir      = "."
	envPaperlessURL       = "PAPERLESS_URL"
	envPaperlessToken     = "PAPERLESS_TOKEN"
	envPaperlessTokenFile = "PAPERLESS_TOKEN_FILE"
)

// LoadPaperlessConfig loads Paperless API configuration.
// It follows this precedence:
// 1. Viper configuration (from config file or ASNREPORT_ env vars)
// 2. Direct environment variables (PAPERLESS_URL, PAPERLESS_TOKEN, PAPERLESS_TOKEN_FILE)
// 3. Default values
func LoadPaperlessConfig() (*paperless.Config, error) {
	config := paperless.DefaultConfig()

	if v := viper.GetString(KeyPaperlessURL); v != "" {
		config.BaseURL = v
	}
	if v := viper.GetString(KeyPaperlessToken); v != "" {
		config.Token = v
	}
	if viper.IsSet(KeyPaperlessTimeout) {
		config.Timeout = viper.GetDuration(KeyPaperlessTimeout)
	}
	if viper.IsSet(KeyRequestsPerSecond) {
		config.RequestsPerSecond = viper.GetFloat64(KeyRequestsPerSecond)
	}
	if viper.IsSet(KeyPageSize) {
		config.PageSize = viper.GetInt(KeyPageSize)
	}

	if config.BaseURL == "" {
		config.BaseURL = os.Getenv(envPaperlessURL)
	}
	if config.Token == "" {
		config.Token = os.Getenv(envPaperlessToken)
	}
	if config.Token == "" {
		if path := os.Getenv(envPaperlessTokenFile); path != "" {
			token, err := readTokenFile(path)
			if err != nil {
				return nil, err
			}
			config.Token = token
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// OutputDir returns the directory reports are written to.
func OutputDir() string {
	if dir := viper.GetString(KeyOutputDir); dir != "" {
		return ExpandPath(dir)
	}
	return defaultOutputDir
}

// readTokenFile reads a token stored on disk, e.g. a container secret.
func readTokenFile(path string) (string, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read token file: %w", common.ErrInvalidConfig, err)
	}
	return strings.TrimSpace(string(data)), nil
}
