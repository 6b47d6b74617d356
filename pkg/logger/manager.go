package logger

import (
	"fmt"
	"io"
	"sync"
)

// Manager owns the root diagnostic logger and the per-component entries
// derived from it
type Manager struct {
	rootLogger *Logger
	config     Config
	contexts   map[string]*Entry
	mu         sync.RWMutex
}

// NewManager creates a new logger manager
func NewManager(config Config) (*Manager, error) {
	rootLogger, err := NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create root logger: %w", err)
	}

	return &Manager{
		rootLogger: rootLogger,
		config:     config,
		contexts:   make(map[string]*Entry),
	}, nil
}

// GetRootLogger returns the root logger
func (m *Manager) GetRootLogger() *Logger {
	return m.rootLogger
}

// ForComponent returns the cached logger for a component
func (m *Manager) ForComponent(component string) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("component:%s", component)
	if entry, exists := m.contexts[key]; exists {
		return entry
	}

	entry := m.rootLogger.WithComponent(component)
	m.contexts[key] = entry
	return entry
}

// ForOperation creates a logger for a specific operation of a component
func (m *Manager) ForOperation(component, operation string) *Entry {
	return m.ForComponent(component).WithOperation(operation)
}

// Close releases the diagnostic log file, if any
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if closer, ok := m.rootLogger.Out.(io.Closer); ok && !isStdStream(m.config.Output) {
		return closer.Close()
	}
	return nil
}

func isStdStream(output string) bool {
	switch output {
	case "", "stdout", "stderr", "discard":
		return true
	}
	return false
}
