package pattern

import "errors"

// Wildcard is the placeholder character of a template.
const Wildcard = "%"

// ErrInvalidTemplate indicates malformed or unsupported template input.
var ErrInvalidTemplate = errors.New("invalid template")
