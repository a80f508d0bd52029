package paperless

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/asnreport/internal/common"
)

// Config holds Paperless API configuration.
type Config struct {
	BaseURL           string // API root, e.g. https://paperless.example.com/api
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables pacing
	PageSize          int     // 0 uses the server default
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: paperless URL is required", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w: paperless URL must start with http:// or https://: %s", common.ErrInvalidConfig, c.BaseURL)
	}
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: paperless API token is required", common.ErrMissingConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", common.ErrInvalidConfig)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second must not be negative", common.ErrInvalidConfig)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("%w: page size must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
