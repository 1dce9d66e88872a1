package cli

import (
	"context"

	"backlog/internal/cli/formatter"
	"backlog/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type boardKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Move  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev issue"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next issue"),
		),
		Move: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "move issue right"),
		),
		Back: key.NewBinding(
			key.WithKeys("M", "backspace"),
			key.WithHelp("M", "move issue left"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type boardLoadedMsg struct {
	columns map[domain.IssueStatus][]*domain.Issue
}

type boardErrMsg struct{ err error }

// boardModel is the bubbletea model for the interactive kanban board.
type boardModel struct {
	app       *App
	projectID string
	keys      boardKeyMap

	columns  map[domain.IssueStatus][]*domain.Issue
	focusCol int
	focusRow int

	quitting bool
	err      error
}

func newBoardModel(app *App, projectID string) boardModel {
	return boardModel{
		app:       app,
		projectID: projectID,
		keys:      defaultBoardKeyMap(),
		columns:   map[domain.IssueStatus][]*domain.Issue{},
	}
}

func (m boardModel) loadBoard() tea.Msg {
	res := m.app.Actions.ListProjectIssues(context.Background(), m.app.Identity, m.projectID)
	if err := resultErr(res); err != nil {
		return boardErrMsg{err: err}
	}
	return boardLoadedMsg{columns: groupByColumn(res.Issues)}
}

func groupByColumn(issues []*domain.Issue) map[domain.IssueStatus][]*domain.Issue {
	columns := make(map[domain.IssueStatus][]*domain.Issue, len(domain.BoardColumns))
	for _, is := range issues {
		columns[is.Status] = append(columns[is.Status], is)
	}
	return columns
}

func (m boardModel) Init() tea.Cmd {
	return m.loadBoard
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case boardLoadedMsg:
		m.columns = msg.columns
		m.clampFocus()
		return m, nil

	case boardErrMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Left):
			if m.focusCol > 0 {
				m.focusCol--
				m.clampFocus()
			}
			return m, nil

		case key.Matches(msg, m.keys.Right):
			if m.focusCol < len(domain.BoardColumns)-1 {
				m.focusCol++
				m.clampFocus()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.focusRow > 0 {
				m.focusRow--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.focusRow < len(m.focusedColumn())-1 {
				m.focusRow++
			}
			return m, nil

		case key.Matches(msg, m.keys.Move):
			return m, m.moveFocused(1)

		case key.Matches(msg, m.keys.Back):
			return m, m.moveFocused(-1)
		}
	}

	return m, nil
}

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}

	view := formatter.FormatBoard(m.columns, m.focusCol, m.focusRow)
	view += "\n" + formatter.Dim("←/→ column  ↑/↓ issue  m/M move  q quit")
	return view + "\n"
}

func (m *boardModel) focusedColumn() []*domain.Issue {
	return m.columns[domain.BoardColumns[m.focusCol]]
}

func (m *boardModel) clampFocus() {
	if n := len(m.focusedColumn()); m.focusRow >= n {
		m.focusRow = n - 1
	}
	if m.focusRow < 0 {
		m.focusRow = 0
	}
}

// moveFocused shifts the selected issue one column in the given direction
// and reloads the board.
func (m *boardModel) moveFocused(direction int) tea.Cmd {
	column := m.focusedColumn()
	if len(column) == 0 {
		return nil
	}
	target := m.focusCol + direction
	if target < 0 || target >= len(domain.BoardColumns) {
		return nil
	}

	issue := column[m.focusRow]
	status := domain.BoardColumns[target]

	return func() tea.Msg {
		res := m.app.Actions.UpdateIssue(context.Background(), m.app.Identity, issue.ID, domain.IssuePatch{
			Status: &status,
		})
		if err := resultErr(res); err != nil {
			return boardErrMsg{err: err}
		}
		return m.loadBoard()
	}
}
