package catalog

import (
	"io"
	"reflect"

	"github.com/wippyai/modident/identity"
)

// Module is a loaded code module as seen by resolution.
type Module interface {
	// Identity returns the module's name and version as reported by the host.
	Identity() identity.ModuleIdentity
	// Resource opens an embedded resource by name.
	Resource(name string) (io.Reader, error)
}

// ModuleCatalog enumerates the modules currently loaded by the host.
// The order is host-defined and may change between calls.
type ModuleCatalog interface {
	Modules() []Module
}

// TypeCatalog looks up types by qualified or canonical name.
// A nil type with a nil error means the name is well formed but unknown.
type TypeCatalog interface {
	LookupType(name string) (reflect.Type, error)
}

// Catalog is a host that exposes both modules and types.
type Catalog interface {
	ModuleCatalog
	TypeCatalog
}
