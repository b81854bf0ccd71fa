package resolve

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/modident/catalog"
	"github.com/wippyai/modident/errors"
)

// TypeResolver turns type identity strings into type handles through a
// host type catalog. It holds no state of its own beyond the catalog.
type TypeResolver struct {
	catalog catalog.TypeCatalog
}

// NewTypeResolver creates a resolver over c
func NewTypeResolver(c catalog.TypeCatalog) *TypeResolver {
	return &TypeResolver{catalog: c}
}

// TryResolveType resolves s exactly as the catalog understands it:
// decorated, canonical, bare, generic, array and nested names all pass
// through unchanged.
//
// Any lookup fault becomes a malformed_identity error carrying s. A name the
// catalog does not know becomes a type_not_found error whose message
// contains s and whose reason is errors.TypeNotDefined.
func (r *TypeResolver) TryResolveType(s string) (reflect.Type, error) {
	t, err := r.lookup(s)
	if err != nil {
		Logger().Debug("type lookup failed", zap.String("name", s), zap.Error(err))
		return nil, errors.Wrap(errors.PhaseResolve, errors.KindMalformedIdentity, s, err, "type lookup failed")
	}
	if t == nil {
		Logger().Debug("type not found", zap.String("name", s))
		return nil, errors.TypeNotFound(s)
	}

	Logger().Debug("type resolved", zap.String("name", s), zap.Stringer("type", t))
	return t, nil
}

func (r *TypeResolver) lookup(s string) (t reflect.Type, err error) {
	if r.catalog == nil {
		return nil, errors.InvalidInput(errors.PhaseResolve, "nil type catalog")
	}
	defer func() {
		if p := recover(); p != nil {
			t = nil
			if e, ok := p.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("type catalog panicked: %v", p)
		}
	}()
	return r.catalog.LookupType(s)
}
