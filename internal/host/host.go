// Package host provides the editor capabilities counterpart depends on.
package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoCurrentFile indicates the host has no file open.
var ErrNoCurrentFile = errors.New("no current file")

// ErrNoEditor indicates no command is configured to open files.
var ErrNoEditor = errors.New("no editor command configured")

// Host is what the matching engine needs from an editor.
type Host interface {
	// CurrentFile returns the absolute path of the file being edited.
	CurrentFile() (string, error)
	// OpenFile switches the editor to path.
	OpenFile(path string) error
}

// Opener is the OpenFile half of a Host.
type Opener interface {
	OpenFile(path string) error
}

// Static is a Host whose current file is fixed up front, typically from a
// command-line argument.
type Static struct {
	file   string
	opener Opener
}

// NewStatic creates a host for file that opens counterparts with opener.
func NewStatic(file string, opener Opener) *Static {
	return &Static{file: file, opener: opener}
}

// CurrentFile returns the file as an absolute path.
func (s *Static) CurrentFile() (string, error) {
	if s.file == "" {
		return "", ErrNoCurrentFile
	}

	abs, err := filepath.Abs(s.file)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return abs, nil
}

// OpenFile delegates to the configured opener.
func (s *Static) OpenFile(path string) error {
	return s.opener.OpenFile(path)
}

// Printer opens a file by writing its path on its own line, leaving the
// actual buffer switch to the calling editor plugin.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w, or stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}

	return &Printer{w: w}
}

// OpenFile prints path.
func (p *Printer) OpenFile(path string) error {
	if _, err := fmt.Fprintln(p.w, path); err != nil {
		return fmt.Errorf("failed to write path: %w", err)
	}

	return nil
}

// Editor opens a file by running an editor command with the path appended.
type Editor struct {
	args   []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewEditor creates an editor opener from command, falling back to $VISUAL
// and then $EDITOR when command is empty.
func NewEditor(command string) (*Editor, error) {
	for _, c := range []string{command, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if args := strings.Fields(c); len(args) > 0 {
			return &Editor{
				args:   args,
				stdin:  os.Stdin,
				stdout: os.Stdout,
				stderr: os.Stderr,
			}, nil
		}
	}

	return nil, ErrNoEditor
}

// Command returns the command line used for path.
func (e *Editor) Command(path string) []string {
	args := make([]string, 0, len(e.args)+1)
	args = append(args, e.args...)

	return append(args, path)
}

// OpenFile runs the editor command and waits for it to exit.
func (e *Editor) OpenFile(path string) error {
	argv := e.Command(path)

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // command comes from user configuration
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	return nil
}
