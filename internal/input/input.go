// Package input provides interactive terminal input for easy-pybind.
//
// Prompts run as small bubbletea programs, so they only make sense on a
// terminal; callers check IsInteractive first and fall back to requiring
// flags otherwise.
package input

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt with Esc or Ctrl+C.
var ErrAborted = errors.New("input aborted")

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// Validator checks a candidate answer. A nil error accepts it.
type Validator func(string) error

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompt asks the user for a single line of text.
// The answer is validated on every keystroke and Enter is refused until
// validate accepts it.
//
// Example:
//
//	name, err := input.Prompt(ctx, "Module name", "my_module", planner.ValidateModuleName)
//	// Displays: Module name: my_module_
func Prompt(ctx context.Context, message, placeholder string, validate Validator, opts ...tea.ProgramOption) (string, error) {
	m := newPromptModel(message, placeholder, validate)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}

	pm := final.(*promptModel)
	if pm.aborted {
		return "", ErrAborted
	}
	return pm.value(), nil
}

type promptModel struct {
	input    textinput.Model
	message  string
	validate Validator
	err      error
	done     bool
	aborted  bool
}

func newPromptModel(message, placeholder string, validate Validator) *promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Focus()

	if validate == nil {
		validate = func(string) error { return nil }
	}

	return &promptModel{
		input:    ti,
		message:  message,
		validate: validate,
	}
}

func (m *promptModel) value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m *promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.err = m.validate(m.value())
			if m.err != nil {
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Don't nag before the user has typed anything.
	if m.value() == "" {
		m.err = nil
	} else {
		m.err = m.validate(m.value())
	}

	return m, cmd
}

func (m *promptModel) View() string {
	label := promptStyle.Render(m.message) + ": "

	if m.done {
		return label + m.value() + "\n"
	}
	if m.aborted {
		return ""
	}

	view := label + m.input.View() + "\n"
	if m.err != nil {
		view += errStyle.Render(firstLine(m.err.Error())) + "\n"
	} else {
		view += hintStyle.Render("enter to confirm, esc to cancel") + "\n"
	}
	return view
}

// firstLine drops hints and other detail after the first line of an error.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
