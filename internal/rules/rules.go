// Package rules holds counterpart rules and the built-in rule set.
package rules

import (
	"errors"
	"fmt"

	"github.com/sivchari/counterpart/internal/pattern"
)

// ErrInvalidRule indicates a rule that cannot be parsed or compiled.
var ErrInvalidRule = errors.New("invalid rule")

// Rule pairs two filename templates that name each other's counterpart.
// Either side may be the form of the file being edited.
type Rule struct {
	Pattern     string `yaml:"pattern" json:"pattern" toml:"pattern"`
	Counterpart string `yaml:"counterpart" json:"counterpart" toml:"counterpart"`
}

// Set is an ordered list of rules. Earlier rules win ties.
type Set []Rule

// Compiled is a rule with both templates compiled.
type Compiled struct {
	Rule  Rule
	Index int
	From  *pattern.Template
	To    *pattern.Template
}

// String formats the rule as it appears in a rules file.
func (r Rule) String() string {
	return r.Pattern + " => " + r.Counterpart
}

// Default returns the built-in rule set.
func Default() Set {
	return Set{
		{Pattern: "%/__init__.py", Counterpart: "%/tests/test_%.py"},
		{Pattern: "%.py", Counterpart: "tests/test_%.py"},
		{Pattern: "%.py", Counterpart: "test/test_%.py"},
		{Pattern: "%.py", Counterpart: "test_%.py"},
		{Pattern: "%.py", Counterpart: "%.txt"},
		{Pattern: "%.py", Counterpart: "tests/tests.py"},
		{Pattern: "%.py", Counterpart: "tests.py"},
		{Pattern: "__init__.py", Counterpart: "tests.py"},
		// Pylons
		{Pattern: "controllers/%.py", Counterpart: "tests/functional/test_%.py"},
		{Pattern: "controllers/%.py", Counterpart: "tests/test_%.py"},
		{Pattern: "lib/%.py", Counterpart: "tests/test_%.py"},
		{Pattern: "model/__init__.py", Counterpart: "tests/test_models.py"},
		{Pattern: "public/js/ControlPanel/%.js", Counterpart: "tests/js/test_%.js"},
		{Pattern: "resources/%.js", Counterpart: "tests/test_%.js"},
		// translated templates
		{Pattern: "%-en.html.mako", Counterpart: "%-lt.html.mako"},
		{Pattern: "%.go", Counterpart: "%_test.go"},
	}
}

// Merge concatenates sets, keeping their order.
func Merge(sets ...Set) Set {
	var merged Set
	for _, s := range sets {
		merged = append(merged, s...)
	}

	return merged
}

// Compile compiles every rule of the set.
func Compile(set Set) ([]Compiled, error) {
	compiled := make([]Compiled, 0, len(set))

	for i, rule := range set {
		from, err := pattern.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%s): %w", ErrInvalidRule, i, rule, err)
		}

		to, err := pattern.Compile(rule.Counterpart)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%s): %w", ErrInvalidRule, i, rule, err)
		}

		compiled = append(compiled, Compiled{
			Rule:  rule,
			Index: i,
			From:  from,
			To:    to,
		})
	}

	return compiled, nil
}

// Validate reports the first rule that fails to compile.
func Validate(set Set) error {
	_, err := Compile(set)

	return err
}
