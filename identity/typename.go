package identity

import (
	"strings"

	"github.com/wippyai/modident/errors"
)

// Decoration keys removed by canonicalization. They vary between builds and
// environments of the same logical module.
var volatileKeys = []string{"Version", "Culture", "PublicKeyToken"}

func isVolatile(key string) bool {
	for _, k := range volatileKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// Property is a key=value decoration following a module name.
type Property struct {
	Key   string
	Value string
}

// ModuleRef is the module part of a qualified type name.
type ModuleRef struct {
	Name       string
	Properties []Property
}

// Property returns the value of the named decoration, if present.
func (m *ModuleRef) Property(key string) (string, bool) {
	for _, p := range m.Properties {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// Identity converts the reference to a module identity, reading the version
// from the Version decoration when present.
func (m *ModuleRef) Identity() (ModuleIdentity, error) {
	id := ModuleIdentity{Name: m.Name}
	if raw, ok := m.Property("Version"); ok {
		v, err := ParseVersion(raw)
		if err != nil {
			return ModuleIdentity{}, err
		}
		id.Version = &v
	}
	return id, nil
}

func (m *ModuleRef) write(b *strings.Builder, stripVolatile bool) {
	b.WriteString(m.Name)
	for _, p := range m.Properties {
		if stripVolatile && isVolatile(p.Key) {
			continue
		}
		b.WriteString(", ")
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
}

// TypeName is a parsed qualified type name:
//
//	Acme.Collections.Map`2[[System.String, Core],[Acme.Item+Part, Acme]][], Acme, Version=1.0.0.0
//
// Name holds the namespace-qualified name with nested types joined by "+".
// Suffixes holds array ("[]", "[*]", "[,]") and pointer ("*", "&") markers in order.
type TypeName struct {
	Module   *ModuleRef
	Name     string
	Args     []*TypeName
	Suffixes []string
}

// ParseTypeName parses a qualified or unqualified type name.
func ParseTypeName(s string) (*TypeName, error) {
	p := &typeNameParser{src: s}
	tn, err := p.parseQualified()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.fail("unexpected %q", string(p.peek()))
	}
	return tn, nil
}

// IsGeneric reports whether the name carries generic arguments.
func (t *TypeName) IsGeneric() bool { return len(t.Args) > 0 }

// Element returns a copy of t without its last suffix.
func (t *TypeName) Element() *TypeName {
	if len(t.Suffixes) == 0 {
		return t
	}
	c := *t
	c.Suffixes = t.Suffixes[:len(t.Suffixes)-1]
	return &c
}

// Unqualified returns a copy of t without its module reference.
func (t *TypeName) Unqualified() *TypeName {
	c := *t
	c.Module = nil
	return &c
}

// String renders the full name including every decoration.
func (t *TypeName) String() string {
	var b strings.Builder
	t.write(&b, false, true)
	return b.String()
}

// Canonical renders the name without volatile decoration at any nesting
// level and without the top-level module. Generic arguments keep their
// module names so they stay resolvable.
func (t *TypeName) Canonical() string {
	var b strings.Builder
	t.write(&b, true, false)
	return b.String()
}

func (t *TypeName) write(b *strings.Builder, stripVolatile, withModule bool) {
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			if a.Module != nil {
				b.WriteByte('[')
				a.write(b, stripVolatile, true)
				b.WriteByte(']')
			} else {
				a.write(b, stripVolatile, false)
			}
		}
		b.WriteByte(']')
	}
	for _, s := range t.Suffixes {
		b.WriteString(s)
	}
	if withModule && t.Module != nil {
		b.WriteString(", ")
		t.Module.write(b, stripVolatile)
	}
}

type typeNameParser struct {
	src string
	pos int
}

func (p *typeNameParser) done() bool { return p.pos >= len(p.src) }

func (p *typeNameParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeNameParser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeNameParser) fail(msg string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindMalformedIdentity).
		Input(p.src).
		Detail("offset %d: "+msg, append([]any{p.pos}, args...)...).
		Build()
}

// parseQualified parses a type spec and an optional ", module" tail.
func (p *typeNameParser) parseQualified() (*TypeName, error) {
	tn, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == ',' {
		p.pos++
		mod, err := p.parseModule()
		if err != nil {
			return nil, err
		}
		tn.Module = mod
	}
	return tn, nil
}

func (p *typeNameParser) parseTypeSpec() (*TypeName, error) {
	p.skipSpace()
	name := p.readUntil(",[]*&")
	if name == "" {
		return nil, p.fail("empty type name")
	}
	tn := &TypeName{Name: name}

	for {
		p.skipSpace()
		switch p.peek() {
		case '*', '&':
			tn.Suffixes = append(tn.Suffixes, string(p.peek()))
			p.pos++
		case '[':
			if p.isArraySuffix() {
				suffix, err := p.readArraySuffix()
				if err != nil {
					return nil, err
				}
				tn.Suffixes = append(tn.Suffixes, suffix)
				continue
			}
			if len(tn.Args) > 0 || len(tn.Suffixes) > 0 {
				return nil, p.fail("unexpected generic argument list")
			}
			args, err := p.parseGenericArgs()
			if err != nil {
				return nil, err
			}
			tn.Args = args
		default:
			return tn, nil
		}
	}
}

// isArraySuffix looks past "[" for "]", "," or the "*" rank marker.
func (p *typeNameParser) isArraySuffix() bool {
	i := p.pos + 1
	for i < len(p.src) && p.src[i] == ' ' {
		i++
	}
	return i < len(p.src) && (p.src[i] == ']' || p.src[i] == ',' || p.src[i] == '*')
}

func (p *typeNameParser) readArraySuffix() (string, error) {
	var b strings.Builder
	b.WriteByte('[')
	p.pos++
	for !p.done() {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case ' ':
		case ',', '*':
			b.WriteByte(c)
		case ']':
			b.WriteByte(']')
			return b.String(), nil
		default:
			return "", p.fail("invalid array rank %q", string(c))
		}
	}
	return "", p.fail("unterminated array suffix")
}

func (p *typeNameParser) parseGenericArgs() ([]*TypeName, error) {
	p.pos++ // '['
	var args []*TypeName
	for {
		p.skipSpace()
		var (
			arg *TypeName
			err error
		)
		if p.peek() == '[' {
			p.pos++
			arg, err = p.parseQualified()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.peek() != ']' {
				return nil, p.fail("unterminated generic argument")
			}
			p.pos++
		} else {
			arg, err = p.parseTypeSpec()
			if err != nil {
				return nil, err
			}
		}
		args = append(args, arg)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return args, nil
		default:
			return nil, p.fail("unterminated generic argument list")
		}
	}
}

// parseModule reads a module name and its properties. The tail ends at "]"
// inside a bracketed generic argument; at top level a "]" is left for the
// caller to reject.
func (p *typeNameParser) parseModule() (*ModuleRef, error) {
	const stops = ",[]"
	p.skipSpace()
	name := p.readUntil(stops)
	if name == "" {
		return nil, p.fail("empty module name")
	}
	mod := &ModuleRef{Name: name}

	for {
		p.skipSpace()
		if p.peek() != ',' {
			return mod, nil
		}
		p.pos++
		p.skipSpace()
		kv := p.readUntil(stops)
		key, value, ok := strings.Cut(kv, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" {
			return nil, p.fail("invalid module property %q", kv)
		}
		mod.Properties = append(mod.Properties, Property{Key: key, Value: value})
	}
}

// readUntil consumes characters up to an unescaped stop byte and returns
// them trimmed. Escapes are kept verbatim so rendering round-trips.
func (p *typeNameParser) readUntil(stops string) string {
	start := p.pos
	for !p.done() {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) {
			p.pos += 2
			continue
		}
		if strings.IndexByte(stops, c) >= 0 {
			break
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}
