package bridge

import (
	"sync"

	"github.com/Caqil/schnorr-verify/pkg/logger"
	"github.com/Caqil/schnorr-verify/pkg/schnorr"
)

// VerifyFunctionName is the name the verifier is exported under by default
const VerifyFunctionName = "verifySignature"

// Module installs the verification function into registries
type Module struct {
	name     string
	verifier schnorr.Verifier
	log      *logger.Logger

	mu        sync.Mutex
	installed map[*Registry]struct{}
}

// ModuleOption configures a Module
type ModuleOption func(*Module)

// WithFunctionName overrides the exported function name
func WithFunctionName(name string) ModuleOption {
	return func(m *Module) {
		m.name = name
	}
}

// WithVerifier replaces the BIP-340 verifier
func WithVerifier(v schnorr.Verifier) ModuleOption {
	return func(m *Module) {
		if v != nil {
			m.verifier = v
		}
	}
}

// WithLogger sets the logger used when installing
func WithLogger(l *logger.Logger) ModuleOption {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// NewModule creates a module exporting the verifier
func NewModule(opts ...ModuleOption) *Module {
	m := &Module{
		name:      VerifyFunctionName,
		verifier:  schnorr.BIP340{},
		log:       logger.Nop(),
		installed: make(map[*Registry]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.Component("bridge")
	return m
}

// Name returns the exported function name
func (m *Module) Name() string {
	return m.name
}

// Install registers the verification function in reg. Installing the same
// module into the same registry again is a no-op.
func (m *Module) Install(reg *Registry) error {
	if reg == nil {
		return ErrNilRegistry
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, done := m.installed[reg]; done {
		m.log.Debug().Str("function", m.name).Msg("module already installed")
		return nil
	}

	if err := reg.Register(m.name, HexVerifier(m.verifier)); err != nil {
		return err
	}
	m.installed[reg] = struct{}{}

	m.log.Info().Str("function", m.name).Msg("verification function installed")
	return nil
}
