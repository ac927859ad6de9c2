package day

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	programdto "liftlog/internal/modules/program/dto"
	workoutdto "liftlog/internal/modules/workout/dto"
	"liftlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the workout use-case.
type Port interface {
	ShowDay(ctx context.Context, dayKey string) (workoutdto.DayViewOutput, error)
	SetEntry(ctx context.Context, dayKey, exercise string, set int, weight, reps *string) (workoutdto.ExerciseLogOutput, error)
	Autofill(ctx context.Context, dayKey, exercise string) (workoutdto.ExerciseLogOutput, error)
	SetNotes(ctx context.Context, dayKey, notes string) error
	ClearDay(ctx context.Context, dayKey string) error
	SaveHistory(ctx context.Context, dayKey string) (workoutdto.HistoryEntryOutput, error)
	Video(ctx context.Context, dayKey, exercise string, open bool) (workoutdto.VideoOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────
// Every message carries its DayKey; the three day tabs share message types.

type LoadedMsg struct {
	DayKey string
	Day    workoutdto.DayViewOutput
	Err    error
}

type ExerciseUpdatedMsg struct {
	DayKey string
	Log    workoutdto.ExerciseLogOutput
	Err    error
}

type NotesSavedMsg struct {
	DayKey string
	Notes  string
	Err    error
}

type ClearedMsg struct {
	DayKey string
	Err    error
}

type SavedMsg struct {
	DayKey string
	Entry  workoutdto.HistoryEntryOutput
	Err    error
}

type VideoMsg struct {
	DayKey string
	Video  workoutdto.VideoOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	colWeight = iota
	colReps
)

type cell struct {
	exercise int
	set      int
}

// Model is the Bubble Tea model for one program day.
type Model struct {
	port    Port
	dayKey  string
	rules   programdto.RulesOutput
	day     workoutdto.DayViewOutput
	cells   []cell
	cursor  int
	column  int
	input   textinput.Model
	notes   textarea.Model
	body    viewport.Model
	spinner spinner.Model
	editing bool
	writing bool
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port, dayKey string, rules programdto.RulesOutput) Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 10

	ta := textarea.New()
	ta.Placeholder = "How did it feel? Anything to remember next time…"
	ta.ShowLineNumbers = false
	ta.SetHeight(4)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		port:    port,
		dayKey:  dayKey,
		rules:   rules,
		input:   ti,
		notes:   ta,
		body:    viewport.New(0, 0),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Editing reports whether a text field has focus, in which case the parent
// must not interpret keys as global bindings.
func (m Model) Editing() bool { return m.editing || m.writing }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		if msg.DayKey != m.dayKey {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.day = msg.Day
			m.rebuildCells()
		}

	case ExerciseUpdatedMsg:
		if msg.DayKey != m.dayKey || msg.Err != nil {
			return m, nil
		}
		for i, ex := range m.day.Exercises {
			if ex.Name == msg.Log.Name {
				m.day.Exercises[i] = msg.Log
			}
		}

	case NotesSavedMsg:
		if msg.DayKey == m.dayKey && msg.Err == nil {
			m.day.Notes = msg.Notes
		}

	case ClearedMsg:
		if msg.DayKey == m.dayKey && msg.Err == nil {
			return m, m.Reload()
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch {
		case m.editing:
			return m.updateCellEditor(msg)
		case m.writing:
			return m.updateNotesEditor(msg)
		}
		cmds = append(cmds, m.handleKey(msg))
	}

	m.body.SetContent(m.renderBody())
	m.keepCursorVisible()
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading day…")
	}
	if m.err != nil {
		return theme.Hot.Render("Error: " + m.err.Error())
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	vp := m.body
	vp.Height = max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left, header, vp.View(), footer)
}

// Reload fetches the day again, reconciling its log with the program.
func (m Model) Reload() tea.Cmd {
	dayKey := m.dayKey
	return func() tea.Msg {
		day, err := m.port.ShowDay(context.Background(), dayKey)
		return LoadedMsg{DayKey: dayKey, Day: day, Err: err}
	}
}

// SaveToHistory snapshots the day. The parent routes the result to history.
func (m Model) SaveToHistory() tea.Cmd {
	dayKey := m.dayKey
	return func() tea.Msg {
		entry, err := m.port.SaveHistory(context.Background(), dayKey)
		return SavedMsg{DayKey: dayKey, Entry: entry, Err: err}
	}
}

func (m Model) Autofill() tea.Cmd {
	name, ok := m.selectedExercise()
	if !ok {
		return nil
	}
	dayKey := m.dayKey
	return func() tea.Msg {
		log, err := m.port.Autofill(context.Background(), dayKey, name)
		return ExerciseUpdatedMsg{DayKey: dayKey, Log: log, Err: err}
	}
}

func (m Model) Clear() tea.Cmd {
	dayKey := m.dayKey
	return func() tea.Msg {
		return ClearedMsg{DayKey: dayKey, Err: m.port.ClearDay(context.Background(), dayKey)}
	}
}

// OpenVideo resolves the selected exercise's link and, when launch is set,
// opens it with the system handler.
func (m Model) OpenVideo(launch bool) tea.Cmd {
	name, ok := m.selectedExercise()
	if !ok {
		return nil
	}
	dayKey := m.dayKey
	return func() tea.Msg {
		video, err := m.port.Video(context.Background(), dayKey, name, launch)
		return VideoMsg{DayKey: dayKey, Video: video, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cells)-1 {
			m.cursor++
		}
	case "left", "h":
		m.column = colWeight
	case "right", "l":
		m.column = colReps
	case "enter", "e":
		if len(m.cells) == 0 {
			return nil
		}
		m.editing = true
		m.input.SetValue(m.selectedValue())
		m.input.CursorEnd()
		return m.input.Focus()
	case "n":
		m.writing = true
		m.notes.SetValue(m.day.Notes)
		return m.notes.Focus()
	case "a":
		return m.Autofill()
	case "v":
		return m.OpenVideo(true)
	case "S":
		return m.SaveToHistory()
	case "r":
		return m.Reload()
	}
	return nil
}

func (m Model) updateCellEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter", "tab":
		m.editing = false
		m.input.Blur()
		cmd := m.commitCell(m.input.Value())
		if msg.String() == "tab" {
			m.advance()
		}
		m.body.SetContent(m.renderBody())
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.body.SetContent(m.renderBody())
	return m, cmd
}

func (m Model) updateNotesEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.writing = false
		m.notes.Blur()
		notes := m.notes.Value()
		dayKey := m.dayKey
		m.body.SetContent(m.renderBody())
		return m, func() tea.Msg {
			err := m.port.SetNotes(context.Background(), dayKey, notes)
			return NotesSavedMsg{DayKey: dayKey, Notes: notes, Err: err}
		}
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	m.body.SetContent(m.renderBody())
	return m, cmd
}

// advance moves weight → reps → next set's weight.
func (m *Model) advance() {
	if m.column == colWeight {
		m.column = colReps
		return
	}
	if m.cursor < len(m.cells)-1 {
		m.cursor++
		m.column = colWeight
	}
}

func (m Model) commitCell(value string) tea.Cmd {
	if len(m.cells) == 0 {
		return nil
	}
	c := m.cells[m.cursor]
	name := m.day.Exercises[c.exercise].Name
	set := c.set + 1
	dayKey := m.dayKey
	var weight, reps *string
	if m.column == colWeight {
		weight = &value
	} else {
		reps = &value
	}
	return func() tea.Msg {
		log, err := m.port.SetEntry(context.Background(), dayKey, name, set, weight, reps)
		return ExerciseUpdatedMsg{DayKey: dayKey, Log: log, Err: err}
	}
}

func (m *Model) rebuildCells() {
	m.cells = nil
	for i, ex := range m.day.Exercises {
		for s := range ex.Entries {
			m.cells = append(m.cells, cell{exercise: i, set: s})
		}
	}
	if m.cursor >= len(m.cells) {
		m.cursor = max(0, len(m.cells)-1)
	}
}

func (m Model) selectedExercise() (string, bool) {
	if len(m.cells) == 0 {
		return "", false
	}
	return m.day.Exercises[m.cells[m.cursor].exercise].Name, true
}

func (m Model) selectedValue() string {
	c := m.cells[m.cursor]
	entry := m.day.Exercises[c.exercise].Entries[c.set]
	if m.column == colWeight {
		return entry.Weight
	}
	return entry.Reps
}

func (m *Model) resize() {
	m.body.Width = m.width
	m.body.Height = max(1, m.height-6)
	m.notes.SetWidth(max(20, m.width-4))
}

// cursorLine is the body line of the selected set, used for scrolling.
func (m Model) cursorLine() int {
	line := 0
	for i, ex := range m.day.Exercises {
		line += 2 // title + link
		for s := range ex.Entries {
			if len(m.cells) > 0 && m.cells[m.cursor] == (cell{exercise: i, set: s}) {
				return line
			}
			line++
		}
		line++ // spacer
	}
	return line
}

func (m *Model) keepCursorVisible() {
	line := m.cursorLine()
	switch {
	case line < m.body.YOffset:
		m.body.SetYOffset(max(0, line-2))
	case line >= m.body.YOffset+m.body.Height:
		m.body.SetYOffset(line - m.body.Height + 1)
	}
}

func (m Model) renderHeader() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.day.Title) + "  " + theme.Muted.Render(m.day.Date) + "\n")
	sb.WriteString(theme.Muted.Render(m.day.Note) + "\n")
	sb.WriteString(theme.Badge.Render("Rule: "+m.rules.Progression) + "  " + theme.Hot.Render("Intensity: "+m.rules.Intensity) + "\n")
	return sb.String()
}

func (m Model) renderBody() string {
	var sb strings.Builder
	for i, ex := range m.day.Exercises {
		sb.WriteString(theme.Title.Render(ex.Name) + "  " + theme.Badge.Render(ex.TargetText) + "\n")
		sb.WriteString(theme.Muted.Render("  "+ex.Link) + "\n")
		for s, set := range ex.Entries {
			selected := len(m.cells) > 0 && m.cells[m.cursor] == (cell{exercise: i, set: s})
			weight := m.renderCell(set.Weight, "lb", selected && m.column == colWeight)
			reps := m.renderCell(set.Reps, "reps", selected && m.column == colReps)
			sb.WriteString(fmt.Sprintf("  Set %d  %s %s\n", set.Number, weight, reps))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(theme.Title.Render("Notes") + "\n")
	if m.writing {
		sb.WriteString(m.notes.View() + "\n")
	} else if strings.TrimSpace(m.day.Notes) == "" {
		sb.WriteString(theme.Muted.Render("(none)  n: write notes") + "\n")
	} else {
		sb.WriteString(m.day.Notes + "\n")
	}
	return sb.String()
}

func (m Model) renderCell(value, placeholder string, selected bool) string {
	if selected && m.editing {
		return theme.Cell.Render(m.input.View())
	}
	if selected {
		if value == "" {
			value = placeholder
		}
		return theme.CellSelected.Render(value)
	}
	if value == "" {
		return theme.Cell.Render(theme.Muted.Render(placeholder))
	}
	return theme.Cell.Render(value)
}

func (m Model) renderFooter() string {
	if m.editing {
		return theme.Muted.Render("enter: save  tab: save + next  esc: cancel")
	}
	if m.writing {
		return theme.Muted.Render("esc: save notes")
	}
	return theme.Muted.Render("↑/↓ set  ←/→ field  enter: edit  a: autofill  n: notes  v: video  S: save to history")
}
