// Package tui provides terminal user interface components for gitpick
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgewood/gitpick/internal/catalog"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionCancel Action = iota
	ActionCheckout
	ActionWorktree
)

// PickerResult holds the result of the branch picker
type PickerResult struct {
	Action Action
	Branch string
}

// branchItem implements list.Item for ranked branch display
type branchItem struct {
	catalog.BranchItem
}

func (i branchItem) Title() string {
	return i.Name
}

func (i branchItem) Description() string {
	switch i.Count {
	case 0:
		return "never used"
	case 1:
		return "used once"
	default:
		return fmt.Sprintf("used %d times", i.Count)
	}
}

func (i branchItem) FilterValue() string {
	return i.Name
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the branch picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
}

// NewPicker creates a new branch picker over a ranked catalog
func NewPicker(items []catalog.BranchItem, remote string) Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = branchItem{item}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(listItems, delegate, 80, 20)
	l.Title = fmt.Sprintf("gitpick - branches on %s", remote)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(branchItem); ok {
				m.result = PickerResult{Action: ActionCheckout, Branch: item.Name}
				m.quitting = true
				return m, tea.Quit
			}

		case "w":
			if item, ok := m.list.SelectedItem().(branchItem); ok {
				m.result = PickerResult{Action: ActionWorktree, Branch: item.Name}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc", "ctrl+c":
			m.result = PickerResult{Action: ActionCancel}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Checkout  [w] Worktree  [/] Filter  [q] Cancel")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive branch picker
func RunPicker(items []catalog.BranchItem, remote string) (PickerResult, error) {
	if len(items) == 0 {
		return PickerResult{Action: ActionCancel}, nil
	}

	m := NewPicker(items, remote)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
