package wasmhost

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/coreos/go-semver/semver"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/modident/catalog"
	"github.com/wippyai/modident/errors"
	"github.com/wippyai/modident/identity"
)

// Custom section names read at load time.
const (
	SectionPackage = "package" // WIT package ident, e.g. "acme:widgets@1.2.0"
	SectionVersion = "version" // dotted version, e.g. "1.2.0.0" or "1.2.0-rc.1"
)

// Host loads WebAssembly modules into a wazero runtime and exposes them as a
// module catalog. Host is safe for concurrent use.
type Host struct {
	runtime wazero.Runtime
	modules []*Module
	mu      sync.RWMutex
}

var (
	_ catalog.ModuleCatalog = (*Host)(nil)
	_ catalog.Module        = (*Module)(nil)
)

// Config holds configuration for host creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32
}

// NewHost creates a host with the default configuration
func NewHost(ctx context.Context) (*Host, error) {
	return NewHostWithConfig(ctx, nil)
}

// NewHostWithConfig creates a host with custom configuration
func NewHostWithConfig(ctx context.Context, cfg *Config) (*Host, error) {
	runtimeCfg := wazero.NewRuntimeConfig().WithCustomSections(true)
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Host{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}, nil
}

// Load compiles and instantiates wasm under name.
//
// The module identity comes from its custom sections: "package" holds a WIT
// package ident whose namespace:package becomes the name; otherwise
// "version" versions the load name. A module with neither is identified by
// its load name alone.
func (h *Host) Load(ctx context.Context, name string, wasm []byte) (*Module, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "module name is required")
	}

	compiled, err := h.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile "+name, err)
	}

	sections := make(map[string][]byte)
	for _, s := range compiled.CustomSections() {
		if _, ok := sections[s.Name()]; !ok {
			sections[s.Name()] = s.Data()
		}
	}

	id, err := moduleIdentity(name, sections)
	if err != nil {
		compiled.Close(ctx)
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	instance, err := h.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		compiled.Close(ctx)
		return nil, errors.Load("instantiate "+name, err)
	}

	m := &Module{instance: instance, sections: sections, id: id}
	h.modules = append(h.modules, m)

	Logger().Debug("module loaded",
		zap.String("name", name),
		zap.Stringer("identity", id),
		zap.Int("sections", len(sections)),
	)
	return m, nil
}

func moduleIdentity(name string, sections map[string][]byte) (identity.ModuleIdentity, error) {
	if data, ok := sections[SectionPackage]; ok {
		id, err := identity.ParseWITIdentity(strings.TrimSpace(string(data)))
		if err != nil {
			return identity.ModuleIdentity{}, errors.Load("package section of "+name, err)
		}
		return id, nil
	}

	data, ok := sections[SectionVersion]
	if !ok {
		return identity.NameOnly(name), nil
	}
	raw := strings.TrimSpace(string(data))
	if v, err := identity.ParseVersion(raw); err == nil {
		return identity.NewModuleIdentity(name, v), nil
	}
	// Semver with pre-release or build metadata keeps its core version.
	sv, err := semver.NewVersion(raw)
	if err != nil {
		return identity.ModuleIdentity{}, errors.Load("version section of "+name, err)
	}
	v, err := identity.ParseVersion(semverCore(sv))
	if err != nil {
		return identity.ModuleIdentity{}, errors.Load("version section of "+name, err)
	}
	return identity.NewModuleIdentity(name, v), nil
}

func semverCore(v *semver.Version) string {
	core := *v
	core.PreRelease = ""
	core.Metadata = ""
	return core.String()
}

// Modules implements catalog.ModuleCatalog. Closed modules are skipped.
func (h *Host) Modules() []catalog.Module {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]catalog.Module, 0, len(h.modules))
	for _, m := range h.modules {
		if m.instance.IsClosed() {
			continue
		}
		result = append(result, m)
	}
	return result
}

// Close closes the runtime and every module loaded into it.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modules = nil
	return h.runtime.Close(ctx)
}

// Module is a WebAssembly module instantiated by a Host.
type Module struct {
	instance api.Module
	sections map[string][]byte
	id       identity.ModuleIdentity
}

// Identity implements catalog.Module
func (m *Module) Identity() identity.ModuleIdentity {
	return m.id
}

// Name returns the name the module was loaded under.
func (m *Module) Name() string {
	return m.instance.Name()
}

// Resource implements catalog.Module. Resources are the module's custom
// sections.
func (m *Module) Resource(name string) (io.Reader, error) {
	data, ok := m.sections[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseRead, "custom section", name)
	}
	return strings.NewReader(string(data)), nil
}

// Close closes the module instance. The host stops listing it.
func (m *Module) Close(ctx context.Context) error {
	return m.instance.Close(ctx)
}
