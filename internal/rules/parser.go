package rules

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileName is the name of a project-local rules file.
const FileName = ".counterpart"

const arrow = "=>"

// Parser handles .counterpart rules file parsing.
type Parser struct {
	rules Set
}

// NewParser creates a new rules parser.
func NewParser() *Parser {
	return &Parser{
		rules: make(Set, 0),
	}
}

// LoadFromFile loads rules from a .counterpart file.
func (p *Parser) LoadFromFile(fs afero.Fs, filePath string) error {
	file, err := fs.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// A missing rules file is not an error.
			return nil
		}

		return fmt.Errorf("failed to open rules file: %w", err)
	}
	defer file.Close()

	return p.LoadFromReader(file)
}

// LoadFromReader loads rules from a reader.
//
// Each non-empty line holds two templates separated by whitespace, optionally
// with "=>" between them. Lines starting with '#' are comments.
func (p *Parser) LoadFromReader(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields, ok := splitRule(line)
		if !ok {
			return fmt.Errorf("%w: line %d: expected two templates, got %q", ErrInvalidRule, lineNo, line)
		}

		p.rules = append(p.rules, Rule{Pattern: fields[0], Counterpart: fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read rules: %w", err)
	}

	return nil
}

// splitRule returns the two templates of a rule line, either "a b" or "a => b".
func splitRule(line string) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 3 && fields[1] == arrow {
		fields = []string{fields[0], fields[2]}
	}

	if len(fields) != 2 {
		return nil, false
	}

	for _, f := range fields {
		if f == arrow {
			return nil, false
		}
	}

	return fields, true
}

// Rules returns all loaded rules.
func (p *Parser) Rules() Set {
	return p.rules
}

// FindRulesFile finds the .counterpart file starting from the given path
// and walking up to parent directories until found or reaching the root.
func FindRulesFile(fs afero.Fs, startPath string) (string, error) {
	dir, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	// The edited file itself may not exist yet.
	if stat, err := fs.Stat(dir); err != nil || !stat.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		rulesFile := filepath.Join(dir, FileName)
		if stat, err := fs.Stat(rulesFile); err == nil && !stat.IsDir() {
			return rulesFile, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return "", nil
}

// LoadProject finds and parses the rules file governing filePath.
// It returns an empty set and path when there is none.
func LoadProject(fs afero.Fs, filePath string) (Set, string, error) {
	rulesFile, err := FindRulesFile(fs, filePath)
	if err != nil || rulesFile == "" {
		return nil, "", err
	}

	p := NewParser()
	if err := p.LoadFromFile(fs, rulesFile); err != nil {
		return nil, rulesFile, fmt.Errorf("%s: %w", rulesFile, err)
	}

	return p.Rules(), rulesFile, nil
}
