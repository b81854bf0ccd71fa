package identity

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/modident/errors"
)

func TestParseModuleIdentity(t *testing.T) {
	tests := []struct {
		input string
		name  string
		ver   Version
	}{
		{"MyAssembly/1.2.3.4", "MyAssembly", NewVersion(1, 2, 3, 4)},
		{"TestAssembly/1.0", "TestAssembly", NewVersion(1, 0)},
		{"AnotherAssembly/2.1.5", "AnotherAssembly", NewVersion(2, 1, 5)},
		{"wasi:io/0.2.0", "wasi:io", NewVersion(0, 2, 0)},
	}

	for _, tt := range tests {
		id, err := ParseModuleIdentity(tt.input)
		if err != nil {
			t.Errorf("ParseModuleIdentity(%q) error: %v", tt.input, err)
			continue
		}
		if id.Name != tt.name {
			t.Errorf("ParseModuleIdentity(%q).Name = %q, want %q", tt.input, id.Name, tt.name)
		}
		if id.Version == nil || *id.Version != tt.ver {
			t.Errorf("ParseModuleIdentity(%q).Version = %v, want %v", tt.input, id.Version, tt.ver)
		}
	}
}

func TestParseModuleIdentity_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"NoSeparator",
		"/1.0",
		"Name/",
		"Name/1",
		"Name/1.0/2.0",
		"Name/1.x",
		"Name/1.0.0.0.0",
	}

	for _, in := range inputs {
		_, err := ParseModuleIdentity(in)
		if err == nil {
			t.Errorf("ParseModuleIdentity(%q) should fail", in)
			continue
		}
		if !errors.IsKind(err, errors.KindMalformedIdentity) {
			t.Errorf("ParseModuleIdentity(%q) kind = %v, want malformed_identity", in, err)
		}
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Input != in {
			t.Errorf("ParseModuleIdentity(%q) error does not carry the input: %v", in, err)
		}
	}
}

func TestFormatModuleIdentity(t *testing.T) {
	tests := []struct {
		id   ModuleIdentity
		want string
	}{
		{NewModuleIdentity("Acme", NewVersion(1, 0)), "Acme/1.0"},
		{NewModuleIdentity("Acme", NewVersion(1, 0, 3)), "Acme/1.0.3"},
		{NewModuleIdentity("Acme", NewVersion(1, 0, 3, 9)), "Acme/1.0.3.9"},
		{NameOnly("Acme"), "Acme"},
	}
	for _, tt := range tests {
		if got := FormatModuleIdentity(tt.id); got != tt.want {
			t.Errorf("FormatModuleIdentity(%v) = %q, want %q", tt.id, got, tt.want)
		}
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestModuleIdentityRoundTrip(t *testing.T) {
	names := []string{"A", "Acme.Core", "wasi:io", "x-y_z"}
	versions := []Version{
		NewVersion(0, 0),
		NewVersion(1, 2),
		NewVersion(10, 20, 30),
		NewVersion(1, 2, 3, 4),
		NewVersion(2147483647, 2147483647),
	}

	for _, name := range names {
		for _, v := range versions {
			want := NewModuleIdentity(name, v)
			got, err := ParseModuleIdentity(FormatModuleIdentity(want))
			if err != nil {
				t.Errorf("round trip %v: %v", want, err)
				continue
			}
			if got.Name != want.Name || *got.Version != *want.Version {
				t.Errorf("round trip = %v, want %v", got, want)
			}
		}
	}
}

func TestParseWITIdentity(t *testing.T) {
	id, err := ParseWITIdentity("wasi:io@0.2.1")
	if err != nil {
		t.Fatalf("ParseWITIdentity error: %v", err)
	}
	if id.Name != "wasi:io" {
		t.Errorf("Name = %q, want %q", id.Name, "wasi:io")
	}
	if id.Version == nil || *id.Version != NewVersion(0, 2, 1) {
		t.Errorf("Version = %v, want 0.2.1", id.Version)
	}
	if id.Version.HasRevision() {
		t.Error("WIT versions have no revision")
	}

	unversioned, err := ParseWITIdentity("acme:billing")
	if err != nil {
		t.Fatalf("ParseWITIdentity error: %v", err)
	}
	if unversioned.Version != nil {
		t.Errorf("Version = %v, want nil", unversioned.Version)
	}

	if _, err := ParseWITIdentity("wasi:io@not-a-version"); !errors.IsKind(err, errors.KindMalformedIdentity) {
		t.Errorf("ParseWITIdentity bad version err = %v, want malformed_identity", err)
	}
}
