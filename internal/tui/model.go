// Package tui is the interactive terminal front end over a board.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GoSim-25-26J-441/project-tracker/internal/board"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldCount
)

// Message types
type loadedMsg struct{ err error }
type savedMsg struct{ err error }
type deletedMsg struct {
	id  int64
	err error
}

// Model is the bubbletea model. Board operations run as commands so the
// UI keeps rendering while requests are in flight.
type Model struct {
	board   *board.Board
	timeout time.Duration

	mode     mode
	cursor   int
	editing  int64
	form     board.Form
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	status   string
	err      error
	quitting bool
}

func New(b *board.Board, timeout time.Duration) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 255
		inputs[i] = in
	}
	inputs[fieldTitle].Placeholder = "Title"
	inputs[fieldDescription].Placeholder = "Description"
	inputs[fieldDueDate].Placeholder = "YYYY-MM-DD"
	inputs[fieldDueDate].CharLimit = len(domain.DateLayout)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		board:   b,
		timeout: timeout,
		form:    board.NewForm(),
		inputs:  inputs,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return loadedMsg{err: m.board.Load(ctx)}
	}
}

func (m Model) setFilter(f board.Filter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return loadedMsg{err: m.board.SetFilter(ctx, f)}
	}
}

func (m Model) setSort(o board.SortOption) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return loadedMsg{err: m.board.SetSort(ctx, o)}
	}
}

func (m Model) save(id int64, f board.Form) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		var err error
		if id == 0 {
			_, err = m.board.Create(ctx, f)
		} else {
			_, err = m.board.Update(ctx, id, f.Patch())
		}
		return savedMsg{err: err}
	}
}

func (m Model) remove(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		return deletedMsg{id: id, err: m.board.ConfirmDelete(ctx, id)}
	}
}

func (m Model) selected() (domain.Project, bool) {
	items := m.board.Projects()
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.Project{}, false
	}
	return items[m.cursor], true
}

func (m Model) clampCursor() Model {
	n := len(m.board.Projects())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}

	case loadedMsg:
		m.err = msg.err
		return m.clampCursor(), nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if m.editing == 0 {
			m.status = "Project created"
		} else {
			m.status = "Project updated"
		}
		m.err = nil
		m.mode = modeList
		m.editing = 0
		m.form.Reset()
		return m.clampCursor(), nil

	case deletedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.status = "Project deleted"
		}
		return m.clampCursor(), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.board.Projects())-1 {
			m.cursor++
		}
	case "r":
		m.status = ""
		return m, m.load()
	case "f":
		m.status = ""
		return m, m.setFilter(next(board.Filters, m.board.Filter()))
	case "s":
		m.status = ""
		return m, m.setSort(next(board.SortOptions, m.board.Sort()))
	case "n":
		m.editing = 0
		m.form = board.NewForm()
		return m.openForm()
	case "e", "enter":
		p, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editing = p.ID
		m.form = board.FromProject(p)
		return m.openForm()
	case "d":
		p, ok := m.selected()
		if !ok || m.board.Deleting(p.ID) {
			return m, nil
		}
		m.board.RequestDelete(p.ID)
		m.editing = p.ID
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.editing
	m.editing = 0
	m.mode = modeList
	switch msg.String() {
	case "y", "Y":
		m.status = ""
		return m, m.remove(id)
	default:
		m.board.CancelDelete(id)
		return m, nil
	}
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.err = nil
	m.status = ""
	m.inputs[fieldTitle].SetValue(m.form.Title)
	m.inputs[fieldDescription].SetValue(m.form.Description)
	m.inputs[fieldDueDate].SetValue(m.form.DueDate)
	return m.focusField(fieldTitle), textinput.Blink
}

func (m Model) focusField(i int) Model {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.editing = 0
		m.err = nil
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m.focusField((m.focus + 1) % fieldCount), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusField((m.focus + fieldCount - 1) % fieldCount), nil
	case tea.KeyCtrlT:
		m.form.ToggleStatus()
		return m, nil
	case tea.KeyEnter:
		m.form.Title = m.inputs[fieldTitle].Value()
		m.form.Description = m.inputs[fieldDescription].Value()
		m.form.DueDate = m.inputs[fieldDueDate].Value()
		return m, m.save(m.editing, m.form)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func next[T comparable](options []T, current T) T {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Projects"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Filter: ") + m.board.Filter().Label())
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Sort: ") + m.board.Sort().Label())
	if m.board.Loading() {
		b.WriteString("  " + m.spinner.View() + dimStyle.Render(" Loading..."))
	}
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.formView())
	default:
		b.WriteString(m.listView())
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()))
	} else if m.status != "" {
		b.WriteString("\n" + completedStyle.Render(m.status))
	}
	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m Model) listView() string {
	items := m.board.Projects()
	if len(items) == 0 {
		return dimStyle.Render("No projects yet. Press n to create one.") + "\n"
	}

	var b strings.Builder
	for i, p := range items {
		cursor := "  "
		line := p.Title
		if i == m.cursor {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		due := "no due date"
		if p.DueDate != nil {
			due = "due " + p.DueDate.String()
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s", cursor, statusBadge(p.Status), line, dimStyle.Render(due)))
		switch {
		case m.board.Deleting(p.ID):
			b.WriteString(" " + dimStyle.Render("deleting..."))
		case m.mode == modeConfirm && m.editing == p.ID:
			b.WriteString(" " + errorStyle.Render("delete? (y/N)"))
		}
		b.WriteString("\n")
		if i == m.cursor && p.Description != nil {
			b.WriteString("    " + dimStyle.Render(*p.Description) + "\n")
		}
	}
	return containerStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (m Model) formView() string {
	title := "New project"
	if m.editing != 0 {
		title = "Edit project"
	}
	labels := []string{"Title", "Description", "Due date"}

	var b strings.Builder
	b.WriteString(labelStyle.Render(title) + "\n\n")
	for i, in := range m.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", labels[i], in.View()))
	}
	b.WriteString(fmt.Sprintf("%-12s %s\n", "Status", statusBadge(m.form.Status)))
	return containerStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (m Model) footer() string {
	var keys [][2]string
	switch m.mode {
	case modeForm:
		keys = [][2]string{{"tab", "next field"}, {"ctrl+t", "status"}, {"enter", "save"}, {"esc", "cancel"}}
	case modeConfirm:
		keys = [][2]string{{"y", "delete"}, {"any", "cancel"}}
	default:
		keys = [][2]string{{"n", "new"}, {"e", "edit"}, {"d", "delete"}, {"f", "filter"}, {"s", "sort"}, {"r", "reload"}, {"q", "quit"}}
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = footerKeyStyle.Render(k[0]) + " " + k[1]
	}
	return footerStyle.Render(strings.Join(parts, "  "))
}

func statusBadge(s domain.Status) string {
	if s == domain.StatusCompleted {
		return completedStyle.Render("[done]")
	}
	return progressStyle.Render("[todo]")
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(b *board.Board, timeout time.Duration) error {
	_, err := tea.NewProgram(New(b, timeout), tea.WithAltScreen()).Run()
	return err
}
