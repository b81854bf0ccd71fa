package identity

import "strings"

// IsSameAs reports whether a and b denote the same module.
//
// Names compare case-insensitively. When either side has no version the
// names decide alone. Otherwise major, minor and build must be equal, and the
// revision is compared only when both sides define it: persisted versions
// often carry fewer components than the version reported at load time.
func IsSameAs(a, b ModuleIdentity) bool {
	if !strings.EqualFold(a.Name, b.Name) {
		return false
	}
	if a.Version == nil || b.Version == nil {
		return true
	}

	av, bv := a.Version, b.Version
	if av.Major != bv.Major || av.Minor != bv.Minor || av.Build != bv.Build {
		return false
	}
	if av.HasRevision() && bv.HasRevision() {
		return av.Revision == bv.Revision
	}
	return true
}

// IsSameAs reports whether m and other denote the same module. See IsSameAs.
func (m ModuleIdentity) IsSameAs(other ModuleIdentity) bool {
	return IsSameAs(m, other)
}
