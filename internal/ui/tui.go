// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ltodo/internal/logging"
	"ltodo/internal/store"
	"ltodo/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	dueStyle    = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type mode int

const (
	modeList mode = iota
	modeText
	modeDue
)

// Run starts the TUI over st until the user quits or ctx is cancelled.
func Run(ctx context.Context, st *store.Store) error {
	defer silence(st)()

	program := tea.NewProgram(NewModel(ctx, st), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*Model); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

// silence stops store logging while the alt screen owns the terminal.
// The returned func restores the previous logger.
func silence(st *store.Store) func() {
	prev := st.SetLogger(logging.Discard())
	return func() { st.SetLogger(prev) }
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx context.Context
	st  *store.Store
	loc *time.Location

	tasks  []task.Task
	cursor int

	mode  mode
	text  string
	input string

	err     error
	saveErr error
}

// NewModel creates a model showing the tasks already loaded into st.
func NewModel(ctx context.Context, st *store.Store) *Model {
	return &Model{
		ctx:   ctx,
		st:    st,
		loc:   time.Local,
		tasks: st.Tasks(),
	}
}

// SetLocation sets the time zone used for due dates (for testing).
func (m *Model) SetLocation(loc *time.Location) {
	m.loc = loc
}

// Cursor returns the selected row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Err returns the last error shown in the status line.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode != modeList {
		return m.updateInput(key)
	}

	m.err = nil
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeText
		m.input = ""
	case " ", "x":
		if t, ok := m.selected(); ok {
			m.apply(m.st.Toggle(m.ctx, t.ID))
		}
	case "d":
		if t, ok := m.selected(); ok {
			m.apply(m.st.Delete(m.ctx, t.ID))
		}
	}
	return m, nil
}

func (m *Model) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.input = ""
		m.text = ""
		m.err = nil
	case tea.KeyEnter:
		m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

// submit advances from text entry to due entry, then adds the task.
func (m *Model) submit() {
	if m.mode == modeText {
		if strings.TrimSpace(m.input) == "" {
			m.mode = modeList
			m.input = ""
			return
		}
		m.text = m.input
		m.input = ""
		m.mode = modeDue
		return
	}

	var due string
	if strings.TrimSpace(m.input) != "" {
		var err error
		due, err = task.ParseDue(m.input, m.loc)
		if err != nil {
			m.err = err
			return
		}
	}

	_, _, err := m.st.Add(m.ctx, m.text, due)
	m.mode = modeList
	m.text = ""
	m.input = ""
	m.apply(err)
	m.cursor = len(m.tasks) - 1
}

// apply refreshes the view after a store mutation.
func (m *Model) apply(err error) {
	m.tasks = m.st.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if err != nil {
		m.err = err
		m.saveErr = err
	}
}

func (m *Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return task.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("  no tasks\n")
	}
	for i, t := range m.tasks {
		pointer := "  "
		if i == m.cursor && m.mode == modeList {
			pointer = cursorStyle.Render("> ")
		}
		check := "[ ]"
		text := t.Text
		if t.Completed {
			check = "[x]"
			text = doneStyle.Render(text)
		}
		fmt.Fprintf(&b, "%s%s %s", pointer, check, text)
		if t.HasDue() {
			b.WriteString("  " + dueStyle.Render("due "+task.FormatDue(t.DueDate, m.loc)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeText:
		fmt.Fprintf(&b, "New task: %s_\n", m.input)
		b.WriteString(helpStyle.Render("enter: next  esc: cancel"))
	case modeDue:
		fmt.Fprintf(&b, "Due (YYYY-MM-DD HH:MM, optional): %s_\n", m.input)
		b.WriteString(helpStyle.Render("enter: add  esc: cancel"))
	default:
		b.WriteString(helpStyle.Render("a: add  space/x: toggle  d: delete  j/k: move  q: quit"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
	}
	return b.String()
}
