package identity

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/modident/errors"
)

// Undefined marks a Build or Revision component that was not specified.
// It is distinct from zero: an undefined revision acts as a wildcard
// during matching.
const Undefined = -1

// Version is a 2 to 4 component numeric version (major.minor[.build[.revision]]).
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// NewVersion builds a version from major, minor and up to two optional
// components (build, revision). Missing components are Undefined.
func NewVersion(major, minor int, rest ...int) Version {
	v := Version{Major: major, Minor: minor, Build: Undefined, Revision: Undefined}
	if len(rest) > 0 {
		v.Build = rest[0]
	}
	if len(rest) > 1 {
		v.Revision = rest[1]
	}
	return v
}

// ParseVersion parses "1.2", "1.2.3" or "1.2.3.4".
// Components must be non-negative decimal integers that fit in 32 bits.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, errors.Malformed(errors.PhaseParse, s,
			"version must have 2 to 4 components, got %d", len(parts))
	}

	comps := [4]int{Undefined, Undefined, Undefined, Undefined}
	for i, p := range parts {
		n, ok := parseComponent(p)
		if !ok {
			return Version{}, errors.Malformed(errors.PhaseParse, s,
				"invalid version component %q", p)
		}
		comps[i] = n
	}
	return Version{Major: comps[0], Minor: comps[1], Build: comps[2], Revision: comps[3]}, nil
}

func parseComponent(p string) (int, bool) {
	if p == "" {
		return 0, false
	}
	for _, c := range p {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(p, 10, 64)
	if err != nil || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// HasBuild reports whether the build component is defined.
func (v Version) HasBuild() bool { return v.Build != Undefined }

// HasRevision reports whether the revision component is defined.
func (v Version) HasRevision() bool { return v.Revision != Undefined }

// String renders the defined components joined by dots.
func (v Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(v.Major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Minor))
	if v.HasBuild() {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(v.Build))
		if v.HasRevision() {
			b.WriteByte('.')
			b.WriteString(strconv.Itoa(v.Revision))
		}
	}
	return b.String()
}

// Compare orders versions component by component.
// An undefined component sorts before any defined one.
func (v Version) Compare(o Version) int {
	pairs := [4][2]int{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Build, o.Build},
		{v.Revision, o.Revision},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}
