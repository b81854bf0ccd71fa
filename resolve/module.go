package resolve

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/modident/catalog"
	"github.com/wippyai/modident/errors"
	"github.com/wippyai/modident/identity"
)

// TiePolicy selects among several loaded modules matching one identity.
type TiePolicy int

const (
	// FirstMatch returns the first match in catalog order.
	FirstMatch TiePolicy = iota
	// PreferHighest returns the match with the highest version. Modules
	// without a version rank lowest; equal versions keep catalog order.
	PreferHighest
)

// String implements fmt.Stringer
func (p TiePolicy) String() string {
	switch p {
	case FirstMatch:
		return "first-match"
	case PreferHighest:
		return "prefer-highest"
	default:
		return fmt.Sprintf("TiePolicy(%d)", int(p))
	}
}

// Config holds configuration for module resolution
type Config struct {
	Policy TiePolicy
}

// ModuleResolver finds loaded modules by identity.
type ModuleResolver struct {
	catalog catalog.ModuleCatalog
	policy  TiePolicy
}

// NewModuleResolver creates a resolver with the default FirstMatch policy
func NewModuleResolver(c catalog.ModuleCatalog) *ModuleResolver {
	return NewModuleResolverWithConfig(c, nil)
}

// NewModuleResolverWithConfig creates a resolver with custom configuration
func NewModuleResolverWithConfig(c catalog.ModuleCatalog, cfg *Config) *ModuleResolver {
	r := &ModuleResolver{catalog: c}
	if cfg != nil {
		r.policy = cfg.Policy
	}
	return r
}

// Resolve returns the loaded module matching id. Absence is reported as
// (nil, false); a catalog that fails to enumerate also yields (nil, false).
func (r *ModuleResolver) Resolve(id identity.ModuleIdentity) (catalog.Module, bool) {
	m, err := r.find(id)
	if err != nil {
		Logger().Debug("module catalog failed", zap.Stringer("module", id), zap.Error(err))
		return nil, false
	}
	return m, m != nil
}

// ResolveString parses s as "Name/Major.Minor[.Build[.Revision]]" and
// resolves it. Only a malformed s is an error.
func (r *ModuleResolver) ResolveString(s string) (catalog.Module, bool, error) {
	id, err := identity.ParseModuleIdentity(s)
	if err != nil {
		return nil, false, err
	}
	m, ok := r.Resolve(id)
	return m, ok, nil
}

// Require is like Resolve but reports absence as a module_not_found error.
func (r *ModuleResolver) Require(id identity.ModuleIdentity) (catalog.Module, error) {
	m, err := r.find(id)
	if err != nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindModuleNotFound).
			Input(id.String()).
			Reason(errors.ModuleNotLoaded{Identity: id.String()}).
			Cause(err).
			Detail("module catalog failed").
			Build()
	}
	if m == nil {
		return nil, errors.ModuleNotFound(id.String())
	}
	return m, nil
}

func (r *ModuleResolver) find(id identity.ModuleIdentity) (found catalog.Module, err error) {
	if r.catalog == nil {
		return nil, errors.InvalidInput(errors.PhaseResolve, "nil module catalog")
	}
	defer func() {
		if p := recover(); p != nil {
			found = nil
			err = errors.New(errors.PhaseResolve, errors.KindInvalidInput).
				Input(id.String()).
				Detail("module catalog panicked: %v", p).
				Build()
		}
	}()

	for _, m := range r.catalog.Modules() {
		if m == nil || !identity.IsSameAs(m.Identity(), id) {
			continue
		}
		if r.policy != PreferHighest {
			found = m
			break
		}
		if found == nil || higher(m.Identity().Version, found.Identity().Version) {
			found = m
		}
	}

	Logger().Debug("module resolution",
		zap.Stringer("module", id),
		zap.Stringer("policy", r.policy),
		zap.Bool("found", found != nil),
	)
	return found, nil
}

func higher(a, b *identity.Version) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Compare(*b) > 0
	}
}
