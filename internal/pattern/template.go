package pattern

import (
	"fmt"
	"strings"
)

// Template is a compiled filename template.
type Template struct {
	// source is the template text as written in the rule.
	source string
	// literals holds the text around wildcards, len(literals) == wildcards+1.
	literals []string
	// literalLen is the summed length of literals.
	literalLen int
}

// Match describes where a template matched a filename.
type Match struct {
	// Start is the index in the filename where the matched suffix begins.
	Start int
	// Capture is the text captured by the wildcard, empty for literal templates.
	Capture string
}

// Compile parses template source into a reusable Template.
func Compile(source string) (*Template, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTemplate)
	}

	if strings.HasPrefix(source, "/") || strings.HasSuffix(source, "/") {
		return nil, fmt.Errorf("%w: %q must not start or end with a slash", ErrInvalidTemplate, source)
	}

	if strings.Contains(source, "//") {
		return nil, fmt.Errorf("%w: %q contains an empty path segment", ErrInvalidTemplate, source)
	}

	literals := strings.Split(source, Wildcard)
	literalLen := 0

	for _, lit := range literals {
		literalLen += len(lit)
	}

	return &Template{
		source:     source,
		literals:   literals,
		literalLen: literalLen,
	}, nil
}

// MustCompile is like Compile but panics on malformed input.
func MustCompile(source string) *Template {
	t, err := Compile(source)
	if err != nil {
		panic(err)
	}

	return t
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}

// Wildcards returns the number of placeholders in the template.
func (t *Template) Wildcards() int {
	return len(t.literals) - 1
}

// HasWildcard reports whether the template contains a placeholder.
func (t *Template) HasWildcard() bool {
	return t.Wildcards() > 0
}

// Prefix returns the literal text before the first wildcard.
func (t *Template) Prefix() string {
	return t.literals[0]
}

// Suffix returns the literal text after the first wildcard, with any later
// wildcards left in place.
func (t *Template) Suffix() string {
	if !t.HasWildcard() {
		return ""
	}

	return strings.Join(t.literals[1:], Wildcard)
}

// Match finds the leftmost segment-bounded suffix of name matched by the template.
func (t *Template) Match(name string) (Match, bool) {
	for start := 0; start <= len(name); {
		if capture, ok := t.matchRest(name[start:]); ok {
			return Match{Start: start, Capture: capture}, true
		}

		next := strings.IndexByte(name[start:], '/')
		if next < 0 {
			return Match{}, false
		}

		// Shift to the next segment boundary, emulating "(^|/)" before the template.
		start += next + 1
	}

	return Match{}, false
}

// matchRest reports whether rest is exactly the template with every wildcard
// replaced by the same non-empty, slash-free capture.
func (t *Template) matchRest(rest string) (string, bool) {
	wildcards := t.Wildcards()
	if wildcards == 0 {
		return "", rest == t.literals[0]
	}

	extra := len(rest) - t.literalLen
	if extra < wildcards || extra%wildcards != 0 {
		return "", false
	}

	width := extra / wildcards
	capture := ""
	pos := 0

	for i, lit := range t.literals {
		if !strings.HasPrefix(rest[pos:], lit) {
			return "", false
		}

		pos += len(lit)
		if i == wildcards {
			break
		}

		segment := rest[pos : pos+width]
		if i == 0 {
			if strings.Contains(segment, "/") {
				return "", false
			}

			capture = segment
		} else if segment != capture {
			return "", false
		}

		pos += width
	}

	return capture, true
}

// Expand substitutes every wildcard with capture.
func (t *Template) Expand(capture string) string {
	if !t.HasWildcard() {
		return t.source
	}

	return strings.Join(t.literals, capture)
}
