package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindTypeNotFound,
				Input:  "Acme.Widget, Acme.Core",
				Detail: "no type registered",
				Reason: TypeNotDefined{Name: "Acme.Widget, Acme.Core"},
			},
			contains: []string{"[resolve]", "type_not_found", `"Acme.Widget, Acme.Core"`, "no type registered", "Undefined type: Acme.Widget, Acme.Core"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindMalformedIdentity,
			},
			contains: []string{"[parse]", "malformed_identity"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRead,
				Kind:   KindIO,
				Detail: "read stream",
				Cause:  errors.New("file already closed"),
			},
			contains: []string{"[read]", "io", "read stream", "caused by", "file already closed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := IO("read", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Malformed(PhaseParse, "x", "bad")

	if !errors.Is(err, &Error{Phase: PhaseParse, Kind: KindMalformedIdentity}) {
		t.Error("Is should match same phase and kind")
	}
	if !errors.Is(err, &Error{Kind: KindMalformedIdentity}) {
		t.Error("Is should match kind when target phase is empty")
	}
	if errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindMalformedIdentity}) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, &Error{Kind: KindTypeNotFound}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, &Error{Kind: KindMalformedIdentity}) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestIsKindAndReasonOf(t *testing.T) {
	err := fmt.Errorf("lookup: %w", TypeNotFound("Acme.Missing"))

	if !IsKind(err, KindTypeNotFound) {
		t.Error("IsKind should find wrapped type_not_found")
	}
	if IsKind(err, KindModuleNotFound) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindTypeNotFound) {
		t.Error("IsKind matched a plain error")
	}

	reason, ok := ReasonOf(err).(TypeNotDefined)
	if !ok {
		t.Fatalf("ReasonOf = %T, want TypeNotDefined", ReasonOf(err))
	}
	if reason.Name != "Acme.Missing" {
		t.Errorf("reason.Name = %q, want %q", reason.Name, "Acme.Missing")
	}
	if ReasonOf(errors.New("plain")) != nil {
		t.Error("ReasonOf on a plain error should be nil")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindModuleNotFound).
		Input("Acme/1.0").
		Reason(ModuleNotLoaded{Identity: "Acme/1.0"}).
		Cause(cause).
		Detail("searched %d modules", 3).
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindModuleNotFound {
		t.Errorf("Kind = %v, want %v", err.Kind, KindModuleNotFound)
	}
	if err.Input != "Acme/1.0" {
		t.Errorf("Input = %q, want %q", err.Input, "Acme/1.0")
	}
	if err.Detail != "searched 3 modules" {
		t.Errorf("Detail = %q, want %q", err.Detail, "searched 3 modules")
	}
	if err.Cause != cause {
		t.Error("Cause not set")
	}
	if err.Reason.Message() != "Module not loaded: Acme/1.0" {
		t.Errorf("Reason.Message() = %q", err.Reason.Message())
	}
}

func TestBuilder_BuildReturnsIndependentCopies(t *testing.T) {
	b := New(PhaseParse, KindMalformedIdentity).Input("a")
	first := b.Build()
	b.Input("b")
	second := b.Build()

	if first.Input != "a" {
		t.Errorf("first.Input = %q, want %q", first.Input, "a")
	}
	if second.Input != "b" {
		t.Errorf("second.Input = %q, want %q", second.Input, "b")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeNotFound", func(t *testing.T) {
		err := TypeNotFound("Acme.Widget")
		if err.Kind != KindTypeNotFound || err.Phase != PhaseResolve {
			t.Errorf("got %s/%s", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Error(), "Acme.Widget") {
			t.Errorf("message %q does not contain input", err.Error())
		}
	})

	t.Run("ModuleNotFound", func(t *testing.T) {
		err := ModuleNotFound("Acme/1.0")
		if err.Kind != KindModuleNotFound {
			t.Errorf("Kind = %v", err.Kind)
		}
		if _, ok := err.Reason.(ModuleNotLoaded); !ok {
			t.Errorf("Reason = %T, want ModuleNotLoaded", err.Reason)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		err := Malformed(PhaseParse, "Acme", "missing %q separator", "/")
		if err.Detail != `missing "/" separator` {
			t.Errorf("Detail = %q", err.Detail)
		}
		if err.Input != "Acme" {
			t.Errorf("Input = %q", err.Input)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseRead, "cannot read from a nil stream")
		if err.Kind != KindInvalidInput || err.Phase != PhaseRead {
			t.Errorf("got %s/%s", err.Phase, err.Kind)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseRead, "resource", "config.json")
		if err.Detail != `resource "config.json" not found` {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		err := Registration("Acme/1.0", "Acme.Widget", "already registered")
		if err.Kind != KindRegistration {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Detail, "already registered") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseResolve, "int[,]", "multi-dimensional arrays")
		if err.Kind != KindUnsupported || err.Input != "int[,]" {
			t.Errorf("got %s %q", err.Kind, err.Input)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseResolve, KindMalformedIdentity, "x", cause, "lookup failed")
		if !errors.Is(err, cause) {
			t.Error("Wrap lost the cause")
		}
	})

	t.Run("Load", func(t *testing.T) {
		err := Load("compile module", errors.New("bad magic"))
		if err.Phase != PhaseLoad {
			t.Errorf("Phase = %v", err.Phase)
		}
	})
}
