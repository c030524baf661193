// Package report provides candidate listing output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/sivchari/counterpart/internal/config"
	"github.com/sivchari/counterpart/internal/finder"
)

// Generator handles listing output.
type Generator struct {
	format string
	out    io.Writer
}

// Listing describes every candidate considered for one file.
type Listing struct {
	File       string             `json:"file" yaml:"file"`
	Count      int                `json:"count" yaml:"count"`
	Best       string             `json:"best,omitempty" yaml:"best,omitempty"`
	Found      bool               `json:"found" yaml:"found"`
	Candidates []finder.Candidate `json:"candidates" yaml:"candidates"`
}

// Statistics summarizes a listing.
type Statistics struct {
	Total     int `json:"total" yaml:"total"`
	Existing  int `json:"existing" yaml:"existing"`
	Creatable int `json:"creatable" yaml:"creatable"`
}

const textTemplate = `{{.File}}
{{- range $i, $c := .Candidates}}
  {{status $c}} {{$c.Path}}  [rule {{$c.RuleIndex}} {{$c.Direction}}: {{$c.Rule}}]
{{- end}}
{{- if .Found}}
=> {{.Best}}
{{- else}}
=> no counterpart
{{- end}}
{{with stats .}}{{.Total}} candidates, {{.Existing}} existing, {{.Creatable}} creatable{{end}}
`

// New creates a new report generator writing to out, or stdout when out is nil.
func New(format string, out io.Writer) (*Generator, error) {
	switch format {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	if out == nil {
		out = os.Stdout
	}

	return &Generator{
		format: format,
		out:    out,
	}, nil
}

// Generate writes the listing in the configured format.
func (g *Generator) Generate(listing *Listing) error {
	switch g.format {
	case config.FormatJSON:
		return g.generateJSON(listing)
	case config.FormatYAML:
		return g.generateYAML(listing)
	default:
		return g.generateText(listing)
	}
}

// CalculateStatistics counts existing and creatable candidates.
func CalculateStatistics(listing *Listing) Statistics {
	stats := Statistics{Total: len(listing.Candidates)}

	for _, c := range listing.Candidates {
		switch {
		case c.Exists:
			stats.Existing++
		case c.DirExists:
			stats.Creatable++
		}
	}

	return stats
}

func (g *Generator) generateJSON(listing *Listing) error {
	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	if _, err := fmt.Fprintln(g.out, string(data)); err != nil {
		return fmt.Errorf("failed to write listing: %w", err)
	}

	return nil
}

func (g *Generator) generateYAML(listing *Listing) error {
	enc := yaml.NewEncoder(g.out)
	enc.SetIndent(2)

	if err := enc.Encode(listing); err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush listing: %w", err)
	}

	return nil
}

func (g *Generator) generateText(listing *Listing) error {
	funcs := template.FuncMap{
		"status": func(c finder.Candidate) string {
			switch {
			case c.Exists:
				return "exists "
			case c.DirExists:
				return "create "
			default:
				return "missing"
			}
		},
		"stats": CalculateStatistics,
	}

	tmpl, err := template.New("listing").Funcs(funcs).Parse(textTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse text template: %w", err)
	}

	if err := tmpl.Execute(g.out, listing); err != nil {
		return fmt.Errorf("failed to execute text template: %w", err)
	}

	return nil
}
