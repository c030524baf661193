package pattern

import "fmt"

// Outcome tells how a rewrite attempt ended.
type Outcome int

const (
	// NoMatch means the source template did not match the filename.
	NoMatch Outcome = iota
	// Rewritten means a new candidate filename was produced.
	Rewritten
	// SameAsInput means the rewrite reproduced the input filename and was rejected.
	SameAsInput
	// Unsynthesizable means the replacement needs a wildcard the source cannot capture.
	Unsynthesizable
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case Rewritten:
		return "rewritten"
	case SameAsInput:
		return "same-as-input"
	case Unsynthesizable:
		return "unsynthesizable"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Apply rewrites name from the form described by from into the form described by to.
// The candidate is only meaningful when the outcome is Rewritten.
func Apply(name string, from, to *Template) (string, Outcome) {
	if to.HasWildcard() && !from.HasWildcard() {
		return "", Unsynthesizable
	}

	m, ok := from.Match(name)
	if !ok {
		return "", NoMatch
	}

	candidate := name[:m.Start] + to.Expand(m.Capture)
	if candidate == name {
		return "", SameAsInput
	}

	return candidate, Rewritten
}

// ApplySource compiles both templates and applies them to name.
func ApplySource(name, from, to string) (string, Outcome, error) {
	src, err := Compile(from)
	if err != nil {
		return "", NoMatch, err
	}

	dst, err := Compile(to)
	if err != nil {
		return "", NoMatch, err
	}

	candidate, outcome := Apply(name, src, dst)

	return candidate, outcome, nil
}
