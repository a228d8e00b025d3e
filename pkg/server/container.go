package server

import (
	"errors"

	"homedesigns-gateway/internal/config"
	"homedesigns-gateway/internal/hdai"
	"homedesigns-gateway/internal/logging"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	HDAI   *hdai.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}

	if !cfg.HDAI.HasAPIKey() {
		logging.Base().Warn("HDAI_API_KEY is not set; redesign requests will be rejected")
	}

	client := hdai.NewClient(hdai.Options{
		BaseURL: cfg.HDAI.BaseURL,
		Timeout: cfg.HDAI.Timeout(),
		Logger:  logging.Base(),
	})

	return &Container{
		Config: cfg,
		HDAI:   client,
	}, nil
}

// APIKey returns the bearer token used for upstream calls
func (c *Container) APIKey() string {
	return c.Config.HDAI.APIKey
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.HDAI != nil {
		c.HDAI.CloseIdleConnections()
	}
	return nil
}
