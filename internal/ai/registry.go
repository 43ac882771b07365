package ai

import (
	"sort"
	"sync"
)

// Registry manages available provider factories
type Registry interface {
	// Register adds a provider factory to the registry
	Register(name string, factory ProviderFactory) error

	// Unregister removes a provider factory from the registry
	Unregister(name string) error

	// Create builds a provider from the named factory. A nil config
	// uses the factory default.
	Create(name string, config *ProviderConfig) (Provider, error)

	// DefaultConfig returns the named factory's default configuration
	DefaultConfig(name string) (*ProviderConfig, error)

	// List returns all registered provider names, sorted
	List() []string

	// IsRegistered checks if a provider is registered
	IsRegistered(name string) bool
}

// ProviderFactory creates provider instances
type ProviderFactory interface {
	// Create creates a new provider instance with the given config
	Create(config *ProviderConfig) (Provider, error)

	// Type returns the provider type this factory creates
	Type() string

	// ValidateConfig validates configuration for this provider type
	ValidateConfig(config *ProviderConfig) error

	// DefaultConfig returns a default configuration
	DefaultConfig() *ProviderConfig
}

// defaultRegistry implements Registry interface
type defaultRegistry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates a new provider registry
func NewRegistry() Registry {
	return &defaultRegistry{
		factories: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory to the registry
func (r *defaultRegistry) Register(name string, factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return &ProviderError{
			Type:     ErrTypeRegistration,
			Message:  "provider already registered",
			Provider: name,
		}
	}

	r.factories[name] = factory
	return nil
}

// Unregister removes a provider factory from the registry
func (r *defaultRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; !exists {
		return notRegistered(name)
	}
	delete(r.factories, name)
	return nil
}

// Create builds a new provider from the named factory
func (r *defaultRegistry) Create(name string, config *ProviderConfig) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, notRegistered(name)
	}

	if config == nil {
		config = factory.DefaultConfig()
	}

	if err := factory.ValidateConfig(config); err != nil {
		return nil, err
	}

	return factory.Create(config)
}

// DefaultConfig returns the named factory's default configuration
func (r *defaultRegistry) DefaultConfig(name string) (*ProviderConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, notRegistered(name)
	}
	return factory.DefaultConfig(), nil
}

// List returns all registered provider names
func (r *defaultRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a provider is registered
func (r *defaultRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

func notRegistered(name string) *ProviderError {
	return &ProviderError{
		Type:     ErrTypeNotFound,
		Message:  "provider not registered",
		Provider: name,
	}
}

// Global registry instance
var globalRegistry = NewRegistry()

// GlobalRegistry returns the global provider registry
func GlobalRegistry() Registry {
	return globalRegistry
}

// RegisterProvider registers a provider in the global registry
func RegisterProvider(name string, factory ProviderFactory) error {
	return globalRegistry.Register(name, factory)
}
