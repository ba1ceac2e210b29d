package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// NameModel is the bubbletea model for the branch name prompt
type NameModel struct {
	input     textinput.Model
	prompt    string
	cancelled bool
	done      bool
}

// NewNamePrompt creates a text prompt pre-filled with a suggested name
func NewNamePrompt(prompt, suggested string) NameModel {
	ti := textinput.New()
	ti.SetValue(suggested)
	ti.CursorEnd()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return NameModel{input: ti, prompt: prompt}
}

func (m NameModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m NameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m NameModel) View() string {
	if m.done {
		return ""
	}
	return titleStyle.Render(m.prompt) + "\n" + m.input.View() + "\n" +
		helpStyle.Render("[enter] Accept  [esc] Cancel")
}

// Value returns the entered text and whether the prompt was cancelled
func (m NameModel) Value() (string, bool) {
	return m.input.Value(), m.cancelled
}

// RunNamePrompt asks the user to confirm or edit a suggested name.
// It returns the entered name, or cancelled=true if the user aborted.
func RunNamePrompt(prompt, suggested string) (string, bool, error) {
	m := NewNamePrompt(prompt, suggested)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	value, cancelled := finalModel.(NameModel).Value()
	return value, cancelled, nil
}
