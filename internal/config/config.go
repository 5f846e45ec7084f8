// Package config reads engine settings from LABELQ_* environment variables.
package config

import (
	"fmt"
	"os"
)

// DefaultHTTPURL is the backend URL used when nothing else supplies one.
const DefaultHTTPURL = "http://localhost:6900"

type Config struct {
	HTTPURL   string // LABELQ_HTTP_URL
	AuthToken string // LABELQ_AUTH_TOKEN (optional, empty = no Authorization header)
	NATSURL   string // LABELQ_NATS_URL (optional, empty = no events)
	DatasetID string // LABELQ_DATASET_ID
}

// FromEnv reads the environment. Unset variables stay empty so callers can
// layer their own fallbacks (named remotes, flags) on top.
func FromEnv() *Config {
	return &Config{
		HTTPURL:   os.Getenv("LABELQ_HTTP_URL"),
		AuthToken: os.Getenv("LABELQ_AUTH_TOKEN"),
		NATSURL:   os.Getenv("LABELQ_NATS_URL"),
		DatasetID: os.Getenv("LABELQ_DATASET_ID"),
	}
}

// Load reads the environment, applies defaults, and validates. Use it when
// the environment is the only configuration source.
func Load() (*Config, error) {
	c := FromEnv()
	if c.HTTPURL == "" {
		c.HTTPURL = DefaultHTTPURL
	}
	if c.DatasetID == "" {
		return nil, fmt.Errorf("LABELQ_DATASET_ID is required")
	}
	return c, nil
}
