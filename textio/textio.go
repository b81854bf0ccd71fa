// Package textio reads byte streams to text.
package textio

import (
	"io"
	"reflect"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/wippyai/modident/errors"
)

// ReadAllText reads r to the end and decodes it as text. A leading byte
// order mark selects UTF-8, UTF-16LE or UTF-16BE and is removed; without
// one the content is UTF-8 and returned byte for byte.
func ReadAllText(r io.Reader) (string, error) {
	if isNil(r) {
		return "", errors.InvalidInput(errors.PhaseRead, "cannot read from a nil stream")
	}

	dec := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	var b strings.Builder
	if _, err := io.Copy(&b, dec); err != nil {
		return "", errors.IO("read stream", err)
	}
	return b.String(), nil
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(r io.Reader) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
