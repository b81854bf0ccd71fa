package catalog

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/modident/errors"
	"github.com/wippyai/modident/identity"
)

// Constructor builds a concrete type from generic arguments.
// Go cannot instantiate generic types at runtime, so constructors compose
// types with reflect (SliceOf, MapOf, PointerTo) or switch over known
// instantiations.
type Constructor func(args []reflect.Type) (reflect.Type, error)

type genericDef struct {
	ctor  Constructor
	arity int
}

// typeRef locates a registered type for reverse lookups.
type typeRef struct {
	module *RegisteredModule
	key    string
}

// Registry is an in-memory host catalog populated explicitly at startup.
// Modules keep their registration order, which is also the search order for
// unqualified type names.
//
// Registry is safe for concurrent use.
type Registry struct {
	names       map[reflect.Type]typeRef
	builtin     *RegisteredModule
	modules     []*RegisteredModule
	defaults    []identity.ModuleIdentity
	mu          sync.RWMutex
	builtinOnce sync.Once
}

var (
	_ Catalog = (*Registry)(nil)
	_ Module  = (*RegisteredModule)(nil)
)

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[reflect.Type]typeRef),
	}
}

// RegisteredModule is a module entry in a Registry.
type RegisteredModule struct {
	registry  *Registry
	types     map[string]reflect.Type
	generics  map[string]genericDef
	resources map[string][]byte
	id        identity.ModuleIdentity
}

// RegisterModule returns the module registered under exactly this identity,
// creating it on first use.
func (r *Registry) RegisterModule(id identity.ModuleIdentity) *RegisteredModule {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.modules {
		if sameExact(m.id, id) {
			return m
		}
	}

	m := &RegisteredModule{
		registry:  r,
		id:        id,
		types:     make(map[string]reflect.Type),
		generics:  make(map[string]genericDef),
		resources: make(map[string][]byte),
	}
	r.modules = append(r.modules, m)
	Logger().Debug("module registered", zap.Stringer("module", id))
	return m
}

func sameExact(a, b identity.ModuleIdentity) bool {
	if !strings.EqualFold(a.Name, b.Name) {
		return false
	}
	if a.Version == nil || b.Version == nil {
		return a.Version == nil && b.Version == nil
	}
	return *a.Version == *b.Version
}

// SetDefaultModules sets the search path for unqualified type names.
// With no defaults every module is searched in registration order.
func (r *Registry) SetDefaultModules(ids ...identity.ModuleIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults = append([]identity.ModuleIdentity(nil), ids...)
}

// Modules returns a snapshot of the registered modules in registration order.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, len(r.modules))
	for i, m := range r.modules {
		result[i] = m
	}
	return result
}

// LookupType resolves a qualified, canonical or bare type name.
// Unknown names return (nil, nil); malformed names return an error.
func (r *Registry) LookupType(name string) (reflect.Type, error) {
	tn, err := identity.ParseTypeName(name)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, err := r.resolve(tn)
	if err != nil {
		return nil, err
	}
	Logger().Debug("type lookup",
		zap.String("name", name),
		zap.Bool("found", t != nil),
	)
	return t, nil
}

func (r *Registry) resolve(tn *identity.TypeName) (reflect.Type, error) {
	if n := len(tn.Suffixes); n > 0 {
		elem, err := r.resolve(tn.Element())
		if err != nil || elem == nil {
			return nil, err
		}
		switch suffix := tn.Suffixes[n-1]; suffix {
		case "[]":
			return reflect.SliceOf(elem), nil
		case "*", "&":
			return reflect.PointerTo(elem), nil
		default:
			return nil, errors.Unsupported(errors.PhaseResolve, tn.String(), "array rank suffix "+suffix)
		}
	}

	mods, err := r.candidates(tn.Module)
	if err != nil {
		return nil, err
	}

	key := tn.Canonical()
	for _, m := range mods {
		if t, ok := m.types[key]; ok {
			return t, nil
		}
	}

	if !tn.IsGeneric() {
		return nil, nil
	}
	for _, m := range mods {
		def, ok := m.generics[tn.Name]
		if !ok {
			continue
		}
		if def.arity != len(tn.Args) {
			return nil, errors.Malformed(errors.PhaseResolve, tn.String(),
				"%s expects %d type arguments, got %d", tn.Name, def.arity, len(tn.Args))
		}
		args := make([]reflect.Type, len(tn.Args))
		for i, a := range tn.Args {
			at, err := r.resolve(a)
			if err != nil || at == nil {
				return nil, err
			}
			args[i] = at
		}
		return def.ctor(args)
	}
	return nil, nil
}

// candidates returns the modules a name may resolve in: the modules matching
// its module reference, or the default search path when unqualified.
func (r *Registry) candidates(ref *identity.ModuleRef) ([]*RegisteredModule, error) {
	if ref == nil {
		if len(r.defaults) == 0 {
			return r.modules, nil
		}
		var mods []*RegisteredModule
		for _, m := range r.modules {
			for _, d := range r.defaults {
				if identity.IsSameAs(m.id, d) {
					mods = append(mods, m)
					break
				}
			}
		}
		return mods, nil
	}

	want, err := ref.Identity()
	if err != nil {
		return nil, err
	}
	var mods []*RegisteredModule
	for _, m := range r.modules {
		if identity.IsSameAs(m.id, want) {
			mods = append(mods, m)
		}
	}
	return mods, nil
}

// NameOf returns the fully qualified name of a registered type, including
// its module and version: "Acme.Widget, Acme, Version=1.0.0.0".
// Slices and pointers of registered types are named with "[]" and "*".
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tn, ok := r.typeName(t)
	if !ok {
		return "", false
	}
	return tn.String(), true
}

// CanonicalNameOf returns the canonical name of a registered type.
func (r *Registry) CanonicalNameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tn, ok := r.typeName(t)
	if !ok {
		return "", false
	}
	return tn.Canonical(), true
}

func (r *Registry) typeName(t reflect.Type) (*identity.TypeName, bool) {
	if t == nil {
		return nil, false
	}
	if ref, ok := r.names[t]; ok {
		tn, err := identity.ParseTypeName(ref.key)
		if err != nil {
			return nil, false
		}
		mod := &identity.ModuleRef{Name: ref.module.id.Name}
		if v := ref.module.id.Version; v != nil {
			mod.Properties = []identity.Property{{Key: "Version", Value: v.String()}}
		}
		tn.Module = mod
		return tn, true
	}

	var suffix string
	switch t.Kind() {
	case reflect.Slice:
		suffix = "[]"
	case reflect.Pointer:
		suffix = "*"
	default:
		return nil, false
	}
	tn, ok := r.typeName(t.Elem())
	if !ok {
		return nil, false
	}
	tn.Suffixes = append(append([]string(nil), tn.Suffixes...), suffix)
	return tn, true
}

// Identity implements Module
func (m *RegisteredModule) Identity() identity.ModuleIdentity {
	return m.id
}

// Register associates a canonical type name with t.
// Re-registering the same pair is a no-op; a different type under an
// existing name is an error. The first name registered for t is the one
// reported by NameOf.
func (m *RegisteredModule) Register(name string, t reflect.Type) error {
	if t == nil {
		return errors.Registration(m.id.String(), name, "nil type")
	}
	tn, err := identity.ParseTypeName(name)
	if err != nil {
		return err
	}
	if tn.Module != nil || len(tn.Suffixes) > 0 {
		return errors.Registration(m.id.String(), name, "name must be unqualified and without array or pointer suffixes")
	}
	key := tn.Canonical()

	r := m.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := m.types[key]; ok {
		if existing == t {
			return nil
		}
		return errors.Registration(m.id.String(), key, "already registered as "+existing.String())
	}
	m.types[key] = t
	if _, ok := r.names[t]; !ok {
		r.names[t] = typeRef{module: m, key: key}
	}

	Logger().Debug("type registered",
		zap.Stringer("module", m.id),
		zap.String("name", key),
		zap.Stringer("type", t),
	)
	return nil
}

// MustRegister is like Register but panics on error.
func (m *RegisteredModule) MustRegister(name string, t reflect.Type) *RegisteredModule {
	if err := m.Register(name, t); err != nil {
		panic(err)
	}
	return m
}

// RegisterGeneric registers a constructor for a generic definition such as
// "List`1". Lookups of "List`1[[T, M]]" resolve T and call ctor unless that
// exact instantiation was registered with Register.
func (m *RegisteredModule) RegisterGeneric(name string, arity int, ctor Constructor) error {
	if arity < 1 {
		return errors.Registration(m.id.String(), name, "generic arity must be positive")
	}
	if ctor == nil {
		return errors.Registration(m.id.String(), name, "nil constructor")
	}

	r := m.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := m.generics[name]; ok {
		return errors.Registration(m.id.String(), name, "generic already registered")
	}
	m.generics[name] = genericDef{ctor: ctor, arity: arity}
	return nil
}

func (m *RegisteredModule) hasGeneric(name string) bool {
	r := m.registry
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := m.generics[name]
	return ok
}

// AddResource embeds a named resource in the module. The data is copied.
func (m *RegisteredModule) AddResource(name string, data []byte) {
	r := m.registry
	r.mu.Lock()
	defer r.mu.Unlock()
	m.resources[name] = append([]byte(nil), data...)
}

// Resource implements Module
func (m *RegisteredModule) Resource(name string) (io.Reader, error) {
	r := m.registry
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := m.resources[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseRead, "resource", name)
	}
	return bytes.NewReader(data), nil
}
