package resolve

import (
	"go.uber.org/zap"

	"github.com/wippyai/modident/catalog"
	"github.com/wippyai/modident/errors"
	"github.com/wippyai/modident/textio"
)

// ReadResource reads the named resource of m as text.
func ReadResource(m catalog.Module, name string) (string, error) {
	if m == nil {
		return "", errors.InvalidInput(errors.PhaseRead, "nil module")
	}

	rd, err := m.Resource(name)
	if err != nil {
		return "", errors.Wrap(errors.PhaseRead, errors.KindNotFound, name, err,
			"resource unavailable in "+m.Identity().String())
	}

	text, err := textio.ReadAllText(rd)
	if err != nil {
		return "", err
	}
	Logger().Debug("resource read",
		zap.Stringer("module", m.Identity()),
		zap.String("resource", name),
		zap.Int("length", len(text)),
	)
	return text, nil
}
