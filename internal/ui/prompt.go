package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// LinePrompt reads a single line of text. On a terminal it runs an inline
// Bubble Tea text input; otherwise it reads a plain line from in.
type LinePrompt struct {
	in  io.Reader
	out io.Writer
}

// NewLinePrompt returns a prompt reading from in and drawing on out.
func NewLinePrompt(in io.Reader, out io.Writer) *LinePrompt {
	return &LinePrompt{in: in, out: out}
}

// ReadLine asks for a line of text, pre-filled with initial. ok is false
// when the user cancelled with Esc or Ctrl+C, or input ended before a line
// was entered.
func (p *LinePrompt) ReadLine(prompt, initial string) (string, bool, error) {
	if p.isTerminal() {
		return p.readInteractive(prompt, initial)
	}
	return p.readPlain(prompt)
}

func (p *LinePrompt) isTerminal() bool {
	in, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return false
	}
	out, ok := p.out.(*os.File)
	return ok && term.IsTerminal(int(out.Fd()))
}

func (p *LinePrompt) readInteractive(prompt, initial string) (string, bool, error) {
	model := newPromptModel(prompt, initial)
	prog := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out))

	final, err := prog.Run()
	if err != nil {
		return "", false, fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", false, errors.New("prompt failed: unexpected model")
	}
	if m.cancelled {
		return "", false, nil
	}
	return m.input.Value(), true, nil
}

func (p *LinePrompt) readPlain(prompt string) (string, bool, error) {
	fmt.Fprintf(p.out, "%s: ", prompt)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				fmt.Fprintln(p.out)
				return "", false, nil
			}
			return strings.TrimRight(line, "\r\n"), true, nil
		}
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// promptModel is a one-field Bubble Tea form.
type promptModel struct {
	title     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPromptModel(title, initial string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 7890"
	ti.CharLimit = 5
	ti.Width = 10
	ti.Prompt = "› "
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return promptModel{title: title, input: ti}
}

// Init implements tea.Model
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return TitleStyle.Render(m.title) + "\n" +
		m.input.View() + "\n" +
		MutedStyle.Render("enter confirm • esc cancel • empty clears") + "\n"
}
