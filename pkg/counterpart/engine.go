// Package counterpart provides the main API for switching between a file and
// its counterpart.
package counterpart

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sivchari/counterpart/internal/config"
	"github.com/sivchari/counterpart/internal/finder"
	"github.com/sivchari/counterpart/internal/host"
	"github.com/sivchari/counterpart/internal/logging"
	"github.com/sivchari/counterpart/internal/report"
	"github.com/sivchari/counterpart/internal/rules"
)

// Host is the editor-facing contract of the engine.
type Host = host.Host

// Result is the outcome of a switch.
type Result struct {
	File      string
	Candidate string
	Found     bool
	RulesFile string
}

// Engine resolves counterparts with a fixed rule configuration.
type Engine struct {
	config *config.Config
	fs     afero.Fs
	// static rules are config extras plus the built-in set.
	static rules.Set
}

// NewEngine creates an engine. A nil fs means the OS filesystem.
func NewEngine(cfg *config.Config, fs afero.Fs) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if fs == nil {
		fs = afero.NewOsFs()
	}

	static := cfg.Rules.Extra
	if cfg.Rules.Builtin {
		static = rules.Merge(static, rules.Default())
	}

	if err := rules.Validate(static); err != nil {
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	return &Engine{
		config: cfg,
		fs:     fs,
		static: static,
	}, nil
}

// Rules returns the effective rule set for file, in the order they are tried,
// and the project rules file that contributed to it, if any.
func (e *Engine) Rules(file string) (rules.Set, string, error) {
	var project rules.Set

	rulesFile := ""

	if e.config.Rules.ProjectFile && file != "" {
		var err error

		project, rulesFile, err = rules.LoadProject(e.fs, file)
		if err != nil {
			return nil, rulesFile, fmt.Errorf("failed to load project rules: %w", err)
		}
	}

	return rules.Merge(project, e.static), rulesFile, nil
}

// Switch resolves the count-th counterpart of the host's current file and
// asks the host to open it. Finding nothing is not an error.
func (e *Engine) Switch(h Host, count int, verbose bool) (*Result, error) {
	file, err := h.CurrentFile()
	if err != nil {
		return nil, fmt.Errorf("failed to get current file: %w", err)
	}

	f, rulesFile, err := e.finder(file, verbose)
	if err != nil {
		return nil, err
	}

	result := &Result{File: file, RulesFile: rulesFile}

	candidate, ok := f.FindBestMatch(file, count)
	if !ok {
		return result, nil
	}

	if err := h.OpenFile(candidate); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", candidate, err)
	}

	result.Candidate = candidate
	result.Found = true

	return result, nil
}

// Candidates lists every candidate for file along with the one Switch would pick.
// A relative file is resolved against the working directory.
func (e *Engine) Candidates(file string, count int, verbose bool) (*report.Listing, error) {
	if file == "" {
		return nil, errors.New("file is required")
	}

	file, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	f, _, err := e.finder(file, verbose)
	if err != nil {
		return nil, err
	}

	if count < 1 {
		count = 1
	}

	best, found := f.FindBestMatch(file, count)

	return &report.Listing{
		File:       file,
		Count:      count,
		Best:       best,
		Found:      found,
		Candidates: f.Candidates(file),
	}, nil
}

func (e *Engine) finder(file string, verbose bool) (*finder.Finder, string, error) {
	set, rulesFile, err := e.Rules(file)
	if err != nil {
		return nil, rulesFile, err
	}

	compiled, err := rules.Compile(set)
	if err != nil {
		if rulesFile != "" {
			return nil, rulesFile, fmt.Errorf("%s: %w", rulesFile, err)
		}

		return nil, "", err
	}

	logger := logging.GetLogger("finder")
	if rulesFile != "" {
		logger = logger.With().Str("rulesFile", rulesFile).Logger()
	}

	return finder.New(compiled, e.fs, finder.Options{
		Verbose: verbose,
		Logger:  logger,
	}), rulesFile, nil
}
