package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// Prompter implements domain.Prompter on a terminal. Every question is a
// single blocking read of one line.
// Fields are ordered to minimize memory padding.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	editor string
}

// New creates a Prompter reading stdin and writing stdout. editor overrides
// the $EDITOR lookup when non-empty.
func New(editor string) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		editor: editor,
	}
}

// NewWithStreams creates a Prompter over explicit streams. This is useful
// for testing.
func NewWithStreams(in io.Reader, out io.Writer, editor string) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		editor: editor,
	}
}

// Ensure Prompter implements domain.Prompter interface.
var _ domain.Prompter = (*Prompter)(nil)

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", domain.ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Input asks for a line of text, returning fallback on empty input.
func (p *Prompter) Input(prompt, fallback string) (string, error) {
	if fallback != "" {
		fmt.Fprintf(p.out, "%s %s ", promptStyle.Render(prompt+":"), optionStyle.Render("["+fallback+"]"))
	} else {
		fmt.Fprintf(p.out, "%s ", promptStyle.Render(prompt+":"))
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(prompt string, dflt bool) (bool, error) {
	hint := "[y/N]"
	if dflt {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(p.out, "%s %s ", promptStyle.Render(prompt), optionStyle.Render(hint))
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return dflt, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, errorStyle.Render("Please answer y or n."))
	}
}

// Select asks the user to pick one of the options by number.
func (p *Prompter) Select(prompt string, options []string) (int, error) {
	fmt.Fprintln(p.out, promptStyle.Render(prompt))
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %s\n", optionStyle.Render(fmt.Sprintf("%d) %s", i+1, opt)))
	}
	for {
		fmt.Fprintf(p.out, "%s ", promptStyle.Render(fmt.Sprintf("Choice [1-%d]:", len(options))))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintln(p.out, errorStyle.Render("Invalid choice."))
	}
}

// EditDraft writes the initial content to a temp file, opens it in the
// user's editor, and returns the edited content.
func (p *Prompter) EditDraft(initial string) (string, error) {
	f, err := os.CreateTemp("", "scopeplan-*.md")
	if err != nil {
		return "", fmt.Errorf("create draft file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.WriteString(initial); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write draft file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close draft file: %w", err)
	}

	if err := p.openEditor(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) //nolint:gosec // Path comes from CreateTemp above
	if err != nil {
		return "", fmt.Errorf("read draft file: %w", err)
	}
	return string(content), nil
}

// getEditor returns the user's preferred editor. It checks the configured
// override, then EDITOR, then VISUAL, and defaults to vim.
func (p *Prompter) getEditor() string {
	if p.editor != "" {
		return p.editor
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vim"
	}
	return editor
}

// openEditor opens the specified file in the user's editor.
func (p *Prompter) openEditor(filePath string) error {
	editor := p.getEditor()

	cmd := exec.Command(editor, filePath) //nolint:gosec // Editor is the user's own configuration
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}
	return nil
}
