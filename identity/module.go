package identity

import (
	"math"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/modident/errors"
)

// ModuleIdentity names a loaded code module: a case-insensitive name and an
// optional version. A nil Version means "any version" when matching.
type ModuleIdentity struct {
	Version *Version
	Name    string
}

// NewModuleIdentity returns an identity with the given name and version.
func NewModuleIdentity(name string, v Version) ModuleIdentity {
	return ModuleIdentity{Name: name, Version: &v}
}

// NameOnly returns a version-less identity.
func NameOnly(name string) ModuleIdentity {
	return ModuleIdentity{Name: name}
}

// ParseModuleIdentity parses the persistable form "Name/Major.Minor[.Build[.Revision]]".
// The name is everything before the first "/".
func ParseModuleIdentity(s string) (ModuleIdentity, error) {
	name, ver, found := strings.Cut(s, "/")
	if !found {
		return ModuleIdentity{}, errors.Malformed(errors.PhaseParse, s, `missing "/" separator`)
	}
	if name == "" {
		return ModuleIdentity{}, errors.Malformed(errors.PhaseParse, s, "empty module name")
	}

	v, err := ParseVersion(ver)
	if err != nil {
		return ModuleIdentity{}, errors.Wrap(errors.PhaseParse, errors.KindMalformedIdentity, s, err, "invalid version")
	}
	return ModuleIdentity{Name: name, Version: &v}, nil
}

// FormatModuleIdentity renders m in the persistable form accepted by
// ParseModuleIdentity. A version-less identity renders as its bare name.
func FormatModuleIdentity(m ModuleIdentity) string {
	if m.Version == nil {
		return m.Name
	}
	return m.Name + "/" + m.Version.String()
}

// String implements fmt.Stringer
func (m ModuleIdentity) String() string {
	return FormatModuleIdentity(m)
}

// ParseWITIdentity maps a WIT package identifier such as "wasi:io@0.2.0" to a
// module identity named "wasi:io" with version 0.2.0 and an undefined
// revision. Pre-release and build metadata are dropped.
func ParseWITIdentity(s string) (ModuleIdentity, error) {
	id, err := wit.ParseIdent(s)
	if err != nil {
		return ModuleIdentity{}, errors.Wrap(errors.PhaseParse, errors.KindMalformedIdentity, s, err, "invalid WIT identifier")
	}

	m := ModuleIdentity{Name: id.Namespace + ":" + id.Package}
	if id.Version != nil {
		if id.Version.Major > math.MaxInt32 || id.Version.Minor > math.MaxInt32 || id.Version.Patch > math.MaxInt32 {
			return ModuleIdentity{}, errors.Malformed(errors.PhaseParse, s, "version component overflows")
		}
		v := NewVersion(int(id.Version.Major), int(id.Version.Minor), int(id.Version.Patch))
		m.Version = &v
	}
	return m, nil
}
