package bridge

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a table of exported verification functions
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]VerifyFunc
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]VerifyFunc)}
}

// Register adds fn under name. A name can be registered only once.
func (r *Registry) Register(name string, fn VerifyFunc) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return fmt.Errorf("%s: %w", name, ErrNilFunction)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("%s: %w", name, ErrAlreadyRegistered)
	}
	r.funcs[name] = fn
	return nil
}

// Lookup returns the function registered under name
func (r *Registry) Lookup(name string) (VerifyFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]
	return fn, ok
}

// Call invokes the function registered under name
func (r *Registry) Call(name, sigHex, msgHex, pubHex string) (bool, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%s: %w", name, ErrUnknownFunction)
	}
	return fn(sigHex, msgHex, pubHex)
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
