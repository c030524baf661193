// Package finder ranks counterpart candidates for a file.
package finder

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/sivchari/counterpart/internal/pattern"
	"github.com/sivchari/counterpart/internal/rules"
)

// Direction tells which side of a rule matched the input.
type Direction string

const (
	// Forward means the rule's pattern matched and its counterpart was produced.
	Forward Direction = "forward"
	// Reverse means the rule's counterpart matched and its pattern was produced.
	Reverse Direction = "reverse"
)

// Candidate is one counterpart produced by one rule.
type Candidate struct {
	Path      string     `json:"path" yaml:"path"`
	Rule      rules.Rule `json:"rule" yaml:"rule"`
	RuleIndex int        `json:"ruleIndex" yaml:"ruleIndex"`
	Direction Direction  `json:"direction" yaml:"direction"`
	Exists    bool       `json:"exists" yaml:"exists"`
	DirExists bool       `json:"dirExists" yaml:"dirExists"`
}

// Options controls a single lookup.
type Options struct {
	// Verbose promotes trace records from debug to info level.
	Verbose bool
	// Logger receives trace records. The zero value discards them.
	Logger zerolog.Logger
}

// Finder applies compiled rules to filenames.
type Finder struct {
	rules   []rules.Compiled
	fs      afero.Fs
	verbose bool
	logger  zerolog.Logger
}

// New creates a finder. A nil fs means the OS filesystem.
func New(compiled []rules.Compiled, fs afero.Fs, opts Options) *Finder {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Finder{
		rules:   compiled,
		fs:      fs,
		verbose: opts.Verbose,
		logger:  opts.Logger,
	}
}

// FindAllMatches returns every candidate the rules produce for filename, in
// rule order, trying each rule forward then reverse. Duplicates are kept.
func (f *Finder) FindAllMatches(filename string) []string {
	matches := f.match(filename)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, m.Path)
	}

	return paths
}

// Candidates returns the same sequence as FindAllMatches with rule and
// filesystem details attached.
func (f *Finder) Candidates(filename string) []Candidate {
	matches := f.match(filename)

	for i := range matches {
		matches[i].Exists = f.exists(matches[i].Path)
		matches[i].DirExists = f.dirExists(matches[i].Path)
	}

	return matches
}

// FindBestMatch returns the nth best candidate for filename.
//
// Candidates that exist rank first, then candidates whose parent directory
// exists. When fewer than n candidates qualify, the last qualifying one is
// returned. The boolean is false when nothing qualifies. n below 1 is
// treated as 1.
func (f *Finder) FindBestMatch(filename string, n int) (string, bool) {
	if n < 1 {
		n = 1
	}

	f.trace().Str("file", filename).Int("n", n).Msg("Finding counterpart")

	matches := f.FindAllMatches(filename)
	last := ""
	found := false

	for _, m := range matches {
		if !f.exists(m) {
			continue
		}

		n--
		if n == 0 {
			f.trace().Str("result", m).Msg("Resolved existing counterpart")
			return m, true
		}

		last, found = m, true
	}

	for _, m := range matches {
		if !f.dirExists(m) {
			continue
		}

		n--
		if n == 0 {
			f.trace().Str("result", m).Msg("Resolved creatable counterpart")
			return m, true
		}

		last, found = m, true
	}

	if found {
		f.trace().Str("result", last).Msg("Fewer matches than requested, using last")
	} else {
		f.trace().Msg("No counterpart found")
	}

	return last, found
}

func (f *Finder) match(filename string) []Candidate {
	name := filepath.ToSlash(filename)

	var candidates []Candidate

	for _, r := range f.rules {
		if c, ok := f.apply(name, r, r.From, r.To, Forward); ok {
			candidates = append(candidates, c)
		}

		if c, ok := f.apply(name, r, r.To, r.From, Reverse); ok {
			candidates = append(candidates, c)
		}
	}

	return candidates
}

func (f *Finder) apply(name string, r rules.Compiled, from, to *pattern.Template, dir Direction) (Candidate, bool) {
	f.trace().Str("pattern", from.String()).Str("replacement", to.String()).Msg("Trying")

	candidate, outcome := pattern.Apply(name, from, to)

	switch outcome {
	case pattern.Rewritten:
		f.trace().Str("pattern", from.String()).Str("replacement", to.String()).Str("candidate", candidate).Msg("Match")
	case pattern.SameAsInput:
		f.trace().Str("pattern", from.String()).Str("replacement", to.String()).Msg("Rejecting rewrite: same as original")

		return Candidate{}, false
	default:
		return Candidate{}, false
	}

	return Candidate{
		Path:      filepath.FromSlash(candidate),
		Rule:      r.Rule,
		RuleIndex: r.Index,
		Direction: dir,
	}, true
}

func (f *Finder) exists(path string) bool {
	_, err := f.fs.Stat(path)

	return err == nil
}

// dirExists reports whether the directory holding path exists. A bare
// filename names no directory.
func (f *Finder) dirExists(path string) bool {
	if !strings.Contains(filepath.ToSlash(path), "/") {
		return false
	}

	info, err := f.fs.Stat(filepath.Dir(path))

	return err == nil && info.IsDir()
}

func (f *Finder) trace() *zerolog.Event {
	if f.verbose {
		return f.logger.Info()
	}

	return f.logger.Debug()
}
