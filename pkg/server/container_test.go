package server

import (
	"testing"

	"homedesigns-gateway/internal/config"
)

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		Port:        "8080",
		HDAI: config.HDAIConfig{
			APIKey:         "test-key",
			BaseURL:        "http://127.0.0.1:1",
			TimeoutSeconds: 5,
		},
	}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.HDAI == nil {
		t.Error("HDAI client is nil")
	}
	if container.APIKey() != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", container.APIKey())
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestNewContainer_MissingAPIKey verifies that a missing key does not block startup
func TestNewContainer_MissingAPIKey(t *testing.T) {
	container, err := NewContainer(&config.Config{Environment: "test"})
	if err != nil {
		t.Fatalf("Missing API key should not fail container creation: %v", err)
	}
	if container.APIKey() != "" {
		t.Error("Expected empty API key")
	}
}

// TestNewContainer_NilConfig verifies that a nil configuration is rejected
func TestNewContainer_NilConfig(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Error("Expected error for nil configuration")
	}
}
