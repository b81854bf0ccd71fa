package identity

import (
	"strings"

	"github.com/wippyai/modident/errors"
)

// TypeIdentity is a type's canonical qualified name and the module that
// declares it.
type TypeIdentity struct {
	QualifiedName string
	Module        ModuleIdentity
}

// CanonicalizeTypeIdentity strips Version, Culture and PublicKeyToken
// decoration from a fully qualified type name at every nesting level and
// drops the top-level module name:
//
//	List`1[[Int32, Core, Version=1.0.0.0]], Core, Version=1.0.0.0  ->  List`1[[Int32, Core]]
//
// A name without any comma is already unqualified and is returned unchanged.
// Names the parser rejects are canonicalized lexically: decoration segments
// are removed and the text is cut at the last comma outside brackets.
// For parseable names the result is a fixed point.
func CanonicalizeTypeIdentity(s string) (string, error) {
	if !strings.Contains(s, ",") {
		return s, nil
	}
	tn, err := ParseTypeName(s)
	if err != nil {
		return canonicalizeLexically(s), nil
	}
	return tn.Canonical(), nil
}

// canonicalizeLexically drops volatile ", Key[=value]" segments and cuts at
// the last unescaped comma at bracket depth zero. Without such a comma the
// stripped text is returned whole.
func canonicalizeLexically(s string) string {
	var b strings.Builder
	depth, cut := 0, -1
	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '\\':
			end := min(i+2, len(s))
			b.WriteString(s[i:end])
			i = end
			continue
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			end := segmentEnd(s, i+1)
			key, _, _ := strings.Cut(s[i+1:end], "=")
			if isVolatile(strings.TrimSpace(key)) {
				i = end
				continue
			}
			if depth == 0 {
				cut = b.Len()
			}
		}
		b.WriteByte(c)
		i++
	}

	out := b.String()
	if cut < 0 {
		return out
	}
	return strings.TrimSpace(out[:cut])
}

// segmentEnd returns the index of the next unescaped ",", "[" or "]" at or
// after i, or len(s).
func segmentEnd(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case ',', '[', ']':
			return i
		}
		i++
	}
	return len(s)
}

// ParseTypeIdentity splits a qualified type name into its canonical name and
// declaring module. An unqualified name yields a zero Module.
func ParseTypeIdentity(s string) (TypeIdentity, error) {
	tn, err := ParseTypeName(s)
	if err != nil {
		return TypeIdentity{}, err
	}

	ti := TypeIdentity{QualifiedName: tn.Canonical()}
	if tn.Module != nil {
		m, err := tn.Module.Identity()
		if err != nil {
			return TypeIdentity{}, errors.Wrap(errors.PhaseParse, errors.KindMalformedIdentity, s, err, "invalid module version")
		}
		ti.Module = m
	}
	return ti, nil
}

// String renders "QualifiedName, Module" with the module version kept as a
// Version decoration, or the bare name when the module is unknown.
func (t TypeIdentity) String() string {
	if t.Module.Name == "" {
		return t.QualifiedName
	}
	if t.Module.Version == nil {
		return t.QualifiedName + ", " + t.Module.Name
	}
	return t.QualifiedName + ", " + t.Module.Name + ", Version=" + t.Module.Version.String()
}
