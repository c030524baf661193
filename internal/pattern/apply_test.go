package pattern

import (
	"errors"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		from    string
		to      string
		want    string
		outcome Outcome
	}{
		{
			name:    "module to tests directory",
			input:   "/proj/foo.py",
			from:    "%.py",
			to:      "tests/test_%.py",
			want:    "/proj/tests/test_foo.py",
			outcome: Rewritten,
		},
		{
			name:    "package init to package tests",
			input:   "/proj/pkg/__init__.py",
			from:    "%/__init__.py",
			to:      "%/tests/test_%.py",
			want:    "/proj/pkg/tests/test_pkg.py",
			outcome: Rewritten,
		},
		{
			name:    "package tests back to init",
			input:   "/proj/pkg/tests/test_pkg.py",
			from:    "%/tests/test_%.py",
			to:      "%/__init__.py",
			want:    "/proj/pkg/__init__.py",
			outcome: Rewritten,
		},
		{
			name:    "literal rule",
			input:   "/proj/model/__init__.py",
			from:    "model/__init__.py",
			to:      "tests/test_models.py",
			want:    "/proj/tests/test_models.py",
			outcome: Rewritten,
		},
		{
			name:    "mako translation",
			input:   "/site/index-en.html.mako",
			from:    "%-en.html.mako",
			to:      "%-lt.html.mako",
			want:    "/site/index-lt.html.mako",
			outcome: Rewritten,
		},
		{
			name:    "no match",
			input:   "/proj/foo.js",
			from:    "%.py",
			to:      "tests/test_%.py",
			outcome: NoMatch,
		},
		{
			name:    "wildcard cannot be synthesized",
			input:   "/proj/tests.py",
			from:    "tests.py",
			to:      "test_%.py",
			outcome: Unsynthesizable,
		},
		{
			name:    "rewrite to itself is rejected",
			input:   "/proj/tests.py",
			from:    "%.py",
			to:      "tests.py",
			outcome: SameAsInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome, err := ApplySource(tt.input, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ApplySource failed: %v", err)
			}

			if outcome != tt.outcome {
				t.Errorf("outcome = %v, want %v", outcome, tt.outcome)
			}

			if got != tt.want {
				t.Errorf("candidate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_RoundTrip(t *testing.T) {
	rules := [][2]string{
		{"%.py", "tests/test_%.py"},
		{"%.py", "test_%.py"},
		{"%/__init__.py", "%/tests/test_%.py"},
		{"controllers/%.py", "tests/functional/test_%.py"},
		{"%-en.html.mako", "%-lt.html.mako"},
		{"%.go", "%_test.go"},
	}
	inputs := []string{
		"/proj/foo.py",
		"/proj/pkg/__init__.py",
		"/app/controllers/users.py",
		"site/index-en.html.mako",
		"/src/server.go",
	}

	for _, rule := range rules {
		from := MustCompile(rule[0])
		to := MustCompile(rule[1])

		for _, input := range inputs {
			forward, outcome := Apply(input, from, to)
			if outcome != Rewritten {
				continue
			}

			back, outcome := Apply(forward, to, from)
			if outcome != Rewritten {
				t.Errorf("%s -> %s: reverse of %v gave %v", input, forward, rule, outcome)
				continue
			}

			if back != input {
				t.Errorf("round trip of %v: %s -> %s -> %s", rule, input, forward, back)
			}
		}
	}
}

func TestApplySource_InvalidTemplate(t *testing.T) {
	if _, _, err := ApplySource("/proj/foo.py", "%.py", "tests//%.py"); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate for bad replacement, got %v", err)
	}

	if _, _, err := ApplySource("/proj/foo.py", "", "%.py"); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("expected ErrInvalidTemplate for empty source, got %v", err)
	}
}

func TestOutcome_String(t *testing.T) {
	for outcome, want := range map[Outcome]string{
		NoMatch:         "no-match",
		Rewritten:       "rewritten",
		SameAsInput:     "same-as-input",
		Unsynthesizable: "unsynthesizable",
		Outcome(42):     "outcome(42)",
	} {
		if got := outcome.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(outcome), got, want)
		}
	}
}
