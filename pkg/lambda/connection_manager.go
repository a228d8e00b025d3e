package lambda

import (
	"context"
	"errors"
	"sync"
	"time"

	"homedesigns-gateway/internal/config"
	"homedesigns-gateway/pkg/server"
)

// ConnectionManager keeps the service container alive across warm invocations
type ConnectionManager struct {
	container   *server.Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	config      *config.Config
	loadConfig  func() (*config.Config, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that loads configuration lazily with loadConfig
func NewConnectionManager(loadConfig func() (*config.Config, error)) *ConnectionManager {
	return &ConnectionManager{loadConfig: loadConfig}
}

// Initialize builds the container from cfg. It is a no-op once initialized.
func (cm *ConnectionManager) Initialize(cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.initLocked(cfg)
}

func (cm *ConnectionManager) initLocked(cfg *config.Config) error {
	if cm.initialized {
		return nil
	}
	if cfg == nil {
		return errors.New("configuration is required")
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		return err
	}

	cm.config = cfg
	cm.container = container
	cm.lastUsed = time.Now()
	cm.initialized = true
	return nil
}

// GetContainer returns the service container, initializing it on first use
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.RLock()
	if cm.initialized && cm.container != nil {
		container := cm.container
		cm.mu.RUnlock()
		cm.UpdateLastUsed()
		return container, nil
	}
	cm.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.initialized {
		if cm.loadConfig == nil {
			return nil, errors.New("connection manager has no configuration loader")
		}
		cfg, err := cm.loadConfig()
		if err != nil {
			return nil, err
		}
		if err := cm.initLocked(cfg); err != nil {
			return nil, err
		}
	}

	cm.lastUsed = time.Now()
	return cm.container, nil
}

// IsHealthy checks if the container is initialized and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if !cm.initialized || cm.container == nil {
		return false
	}

	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup releases the container so the next invocation rebuilds it
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	cm.initialized = false
	return nil
}

// UpdateLastUsed updates the last used timestamp
func (cm *ConnectionManager) UpdateLastUsed() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.lastUsed = time.Now()
}
