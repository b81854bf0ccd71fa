package catalog

import (
	"fmt"
	"reflect"

	"github.com/wippyai/modident/identity"
)

// BuiltinModule identifies the module holding Go's predeclared types.
var BuiltinModule = identity.NewModuleIdentity("builtin", identity.NewVersion(1, 0, 0, 0))

var builtinTypes = []struct {
	name string
	t    reflect.Type
}{
	{"bool", reflect.TypeFor[bool]()},
	{"string", reflect.TypeFor[string]()},
	{"int", reflect.TypeFor[int]()},
	{"int8", reflect.TypeFor[int8]()},
	{"int16", reflect.TypeFor[int16]()},
	{"int32", reflect.TypeFor[int32]()},
	{"int64", reflect.TypeFor[int64]()},
	{"uint", reflect.TypeFor[uint]()},
	{"uint8", reflect.TypeFor[uint8]()},
	{"uint16", reflect.TypeFor[uint16]()},
	{"uint32", reflect.TypeFor[uint32]()},
	{"uint64", reflect.TypeFor[uint64]()},
	{"uintptr", reflect.TypeFor[uintptr]()},
	{"float32", reflect.TypeFor[float32]()},
	{"float64", reflect.TypeFor[float64]()},
	{"complex64", reflect.TypeFor[complex64]()},
	{"complex128", reflect.TypeFor[complex128]()},
	{"byte", reflect.TypeFor[byte]()},
	{"rune", reflect.TypeFor[rune]()},
	{"error", reflect.TypeFor[error]()},
	{"any", reflect.TypeFor[any]()},
}

// RegisterBuiltins registers the predeclared Go types in BuiltinModule,
// along with the generic constructors:
//
//	List`1     []T
//	Map`2      map[K]V
//	Pointer`1  *T
//
// Repeated and concurrent calls on the same registry register once and
// return the same module.
func RegisterBuiltins(r *Registry) *RegisteredModule {
	r.builtinOnce.Do(func() {
		r.builtin = registerBuiltins(r)
	})
	return r.builtin
}

func registerBuiltins(r *Registry) *RegisteredModule {
	m := r.RegisterModule(BuiltinModule)
	if m.hasGeneric("List`1") {
		return m
	}
	for _, b := range builtinTypes {
		m.MustRegister(b.name, b.t)
	}

	mustGeneric(m, "List`1", 1, func(args []reflect.Type) (reflect.Type, error) {
		return reflect.SliceOf(args[0]), nil
	})
	mustGeneric(m, "Map`2", 2, func(args []reflect.Type) (reflect.Type, error) {
		if !args[0].Comparable() {
			return nil, fmt.Errorf("map key type %s is not comparable", args[0])
		}
		return reflect.MapOf(args[0], args[1]), nil
	})
	mustGeneric(m, "Pointer`1", 1, func(args []reflect.Type) (reflect.Type, error) {
		return reflect.PointerTo(args[0]), nil
	})
	return m
}

func mustGeneric(m *RegisteredModule, name string, arity int, ctor Constructor) {
	if err := m.RegisterGeneric(name, arity, ctor); err != nil {
		panic(err)
	}
}
