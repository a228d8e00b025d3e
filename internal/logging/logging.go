package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"homedesigns-gateway/internal/config"
)

// Setup configures the global logrus logger from the application config
func Setup(cfg config.LogConfig) error {
	return configure(logrus.StandardLogger(), cfg, os.Stdout)
}

func configure(logger *logrus.Logger, cfg config.LogConfig, out io.Writer) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	logger.SetLevel(level)
	logger.SetOutput(out)

	switch cfg.Format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	return nil
}

// Base returns the entry every component logs through, tagged with the
// deployment mode so server and lambda logs can be told apart.
func Base() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"service":         "homedesigns-gateway",
		"deployment_mode": config.GetDeploymentMode(),
	})
}
