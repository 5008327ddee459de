package observer

import (
	"errors"
	"sync"

	"github.com/telephony-observer/observer-go/pkg/gateway"
)

// ErrDefaultInitialized is returned by ConfigureDefault after Default has
// constructed the shared registry.
var ErrDefaultInitialized = errors.New("observer: default registry already initialized")

var (
	defaultMu      sync.Mutex
	defaultGateway Gateway
	defaultConfig  Config
	defaultBuilt   bool
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	gw := defaultGateway
	if gw == nil {
		gw = gateway.NewSlotGateway(gateway.NewMemoryStateManager(), gateway.DefaultConfig())
	}
	defaultBuilt = true
	return NewRegistryWithConfig(gw, defaultConfig)
})

// Default returns the process-wide registry, constructing it on first use.
// Without ConfigureDefault it runs over an in-memory state manager.
func Default() *Registry {
	return defaultRegistry()
}

// ConfigureDefault sets the gateway and configuration Default will use.
// It must be called before the first call to Default.
func ConfigureDefault(gw Gateway, config Config) error {
	if gw == nil {
		return errors.New("observer: nil Gateway")
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultBuilt {
		return ErrDefaultInitialized
	}
	defaultGateway = gw
	defaultConfig = config
	return nil
}
