package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		prefix    string
		suffix    string
		wildcards int
	}{
		{name: "literal", source: "tests.py", prefix: "tests.py", suffix: "", wildcards: 0},
		{name: "leading wildcard", source: "%.py", prefix: "", suffix: ".py", wildcards: 1},
		{name: "directory prefix", source: "tests/test_%.py", prefix: "tests/test_", suffix: ".py", wildcards: 1},
		{name: "repeated wildcard", source: "%/tests/test_%.py", prefix: "", suffix: "/tests/test_%.py", wildcards: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.source)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.source, err)
			}

			if tmpl.String() != tt.source {
				t.Errorf("String() = %q, want %q", tmpl.String(), tt.source)
			}

			if tmpl.Prefix() != tt.prefix {
				t.Errorf("Prefix() = %q, want %q", tmpl.Prefix(), tt.prefix)
			}

			if tmpl.Suffix() != tt.suffix {
				t.Errorf("Suffix() = %q, want %q", tmpl.Suffix(), tt.suffix)
			}

			if tmpl.Wildcards() != tt.wildcards {
				t.Errorf("Wildcards() = %d, want %d", tmpl.Wildcards(), tt.wildcards)
			}

			if tmpl.HasWildcard() != (tt.wildcards > 0) {
				t.Errorf("HasWildcard() = %v, want %v", tmpl.HasWildcard(), tt.wildcards > 0)
			}
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	for _, source := range []string{"", "/abs/%.py", "tests/", "tests//test_%.py"} {
		t.Run(source, func(t *testing.T) {
			_, err := Compile(source)
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("Compile(%q) error = %v, want ErrInvalidTemplate", source, err)
			}
		})
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on an empty template")
		}
	}()

	if MustCompile("%.py") == nil {
		t.Fatal("MustCompile returned nil for a valid template")
	}

	MustCompile("")
}

func TestTemplate_Match(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    string
		want     bool
		start    int
		capture  string
	}{
		{name: "basename wildcard", template: "%.py", input: "/proj/foo.py", want: true, start: 6, capture: "foo"},
		{name: "relative input", template: "%.py", input: "foo.py", want: true, start: 0, capture: "foo"},
		{name: "dot is literal", template: "%.py", input: "/proj/fooxpy", want: false},
		{name: "wildcard needs at least one char", template: "%.py", input: "/proj/.py", want: false},
		{name: "directory wildcard", template: "%/__init__.py", input: "/proj/pkg/__init__.py", want: true, start: 6, capture: "pkg"},
		{name: "back reference", template: "%/tests/test_%.py", input: "/proj/pkg/tests/test_pkg.py", want: true, start: 6, capture: "pkg"},
		{name: "back reference mismatch", template: "%/tests/test_%.py", input: "/proj/pkg/tests/test_other.py", want: false},
		{name: "literal directory", template: "controllers/%.py", input: "/app/controllers/users.py", want: true, start: 5, capture: "users"},
		{name: "segment boundary", template: "tests.py", input: "/proj/mytests.py", want: false},
		{name: "whole literal", template: "tests.py", input: "tests.py", want: true, start: 0},
		{name: "anchored at end", template: "%.py", input: "/proj/foo.py.orig", want: false},
		{name: "wildcard stays in one segment", template: "lib/%.py", input: "/proj/lib/sub/mod.py", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := MustCompile(tt.template).Match(tt.input)
			if ok != tt.want {
				t.Fatalf("Match(%q) matched=%v, want %v", tt.input, ok, tt.want)
			}

			if !tt.want {
				return
			}

			if diff := cmp.Diff(Match{Start: tt.start, Capture: tt.capture}, m); diff != "" {
				t.Errorf("Match mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTemplate_Expand(t *testing.T) {
	tests := []struct {
		template string
		capture  string
		want     string
	}{
		{template: "tests/test_%.py", capture: "foo", want: "tests/test_foo.py"},
		{template: "%/tests/test_%.py", capture: "pkg", want: "pkg/tests/test_pkg.py"},
		{template: "tests.py", capture: "ignored", want: "tests.py"},
	}

	for _, tt := range tests {
		if got := MustCompile(tt.template).Expand(tt.capture); got != tt.want {
			t.Errorf("Expand(%q) on %q = %q, want %q", tt.capture, tt.template, got, tt.want)
		}
	}
}
