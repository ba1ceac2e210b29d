package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgewood/gitpick/internal/git"
)

// WorktreeAction is the action chosen in the worktree picker
type WorktreeAction int

const (
	WorktreeQuit WorktreeAction = iota
	WorktreeOpen
	WorktreeDelete
)

// WorktreeResult holds the outcome of the worktree picker
type WorktreeResult struct {
	Action   WorktreeAction
	Worktree git.WorktreeInfo
}

type worktreeItem struct {
	git.WorktreeInfo
}

func (i worktreeItem) Title() string {
	if i.IsDetached() {
		return "(detached)"
	}
	return i.BranchShort()
}

func (i worktreeItem) Description() string {
	return i.Path
}

func (i worktreeItem) FilterValue() string {
	return i.BranchShort() + " " + i.Path
}

// WorktreeModel is the bubbletea model for the worktree picker
type WorktreeModel struct {
	list     list.Model
	result   WorktreeResult
	quitting bool
}

// NewWorktreePicker creates a picker over the linked worktrees of a repository
func NewWorktreePicker(worktrees []git.WorktreeInfo) WorktreeModel {
	listItems := make([]list.Item, len(worktrees))
	for i, wt := range worktrees {
		listItems[i] = worktreeItem{wt}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(listItems, delegate, 80, 20)
	l.Title = fmt.Sprintf("gitpick - %d worktrees", len(worktrees))
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return WorktreeModel{list: l}
}

func (m WorktreeModel) Init() tea.Cmd {
	return nil
}

func (m WorktreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(worktreeItem); ok {
				m.result = WorktreeResult{Action: WorktreeOpen, Worktree: item.WorktreeInfo}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(worktreeItem); ok {
				m.result = WorktreeResult{Action: WorktreeDelete, Worktree: item.WorktreeInfo}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc", "ctrl+c":
			m.result = WorktreeResult{Action: WorktreeQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m WorktreeModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Open shell  [d] Delete  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the worktree picker result
func (m WorktreeModel) Result() WorktreeResult {
	return m.result
}

// RunWorktreePicker runs the interactive worktree picker
func RunWorktreePicker(worktrees []git.WorktreeInfo) (WorktreeResult, error) {
	if len(worktrees) == 0 {
		return WorktreeResult{Action: WorktreeQuit}, nil
	}

	m := NewWorktreePicker(worktrees)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return WorktreeResult{}, err
	}

	return finalModel.(WorktreeModel).Result(), nil
}
