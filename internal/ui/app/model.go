package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	programdto "liftlog/internal/modules/program/dto"
	workoutdto "liftlog/internal/modules/workout/dto"
	apperrors "liftlog/internal/platform/errors"
	"liftlog/internal/ui/components"
	"liftlog/internal/ui/theme"
	dayview "liftlog/internal/ui/views/day"
	historyview "liftlog/internal/ui/views/history"
	profileview "liftlog/internal/ui/views/profile"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type programPort interface {
	Rules(ctx context.Context) programdto.RulesOutput
}

type workoutPort interface {
	dayview.Port
	profileview.Port
	historyview.Port
	Overview(ctx context.Context) (workoutdto.StateOutput, error)
	SetView(ctx context.Context, view string) error
	SetDate(ctx context.Context, date string) (string, error)
	ExportHistory(ctx context.Context, dir string) (workoutdto.ExportOutput, error)
	ResetAll(ctx context.Context) (workoutdto.StateOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDayOne tabID = iota
	tabDayTwo
	tabDayThree
	tabProfile
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{
	"Day 1", "Day 2", "Day 3", "Profile", "History",
}

// tabViews are the persisted view names, index-aligned with the tabs.
var tabViews = [tabCount]string{
	"day1", "day2", "day3", "profile", "history",
}

func tabForView(view string) tabID {
	for i, v := range tabViews {
		if v == view {
			return tabID(i)
		}
	}
	return tabDayOne
}

// ─── async messages ───────────────────────────────────────────────────────────

type overviewLoadedMsg struct {
	state workoutdto.StateOutput
	err   error
}

type viewSavedMsg struct{ err error }

type dateSetMsg struct {
	date string
	err  error
}

type exportedMsg struct {
	out workoutdto.ExportOutput
	err error
}

type resetMsg struct {
	state workoutdto.StateOutput
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Edit     key.Binding
	Autofill key.Binding
	Notes    key.Binding
	Video    key.Binding
	Save     key.Binding
	Delete   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/1-5", "switch tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit field")),
		Autofill: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autofill targets")),
		Notes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "day notes")),
		Video:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "open video")),
		Save:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save to history")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Edit, k.Autofill, k.Notes},
		{k.Video, k.Save, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay and the command palette. Workout rules live behind the ports; all
// rendering is delegated to sub-views.
type Model struct {
	workout workoutPort

	days        [3]dayview.Model
	profileView profileview.Model
	historyView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	date      string
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(program programPort, workout workoutPort) Model {
	rules := program.Rules(context.Background())
	return Model{
		workout: workout,
		days: [3]dayview.Model{
			dayview.New(workout, tabViews[tabDayOne], rules),
			dayview.New(workout, tabViews[tabDayTwo], rules),
			dayview.New(workout, tabViews[tabDayThree], rules),
		},
		profileView: profileview.New(workout),
		historyView: historyview.New(workout),
		activeTab:   tabDayOne,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadOverviewCmd(),
		m.days[0].Init(),
		m.days[1].Init(),
		m.days[2].Init(),
		m.profileView.Init(),
		m.historyView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all key input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case overviewLoadedMsg:
		if msg.err != nil {
			m.status = "load: " + msg.err.Error()
			return m, nil
		}
		m.activeTab = tabForView(msg.state.ActiveView)
		m.date = msg.state.SelectedDate
		return m, nil

	case viewSavedMsg:
		if msg.err != nil {
			m.status = "save tab: " + msg.err.Error()
		}
		return m, nil

	case dateSetMsg:
		if msg.err != nil {
			m.status = "date: " + msg.err.Error()
			return m, nil
		}
		m.date = msg.date
		m.status = "workout date " + msg.date
		return m, m.reloadDays()

	case exportedMsg:
		if msg.err != nil {
			m.status = "export: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d notes to %s", len(msg.out.Paths), msg.out.Dir)
		}
		return m, nil

	case resetMsg:
		if msg.err != nil {
			m.status = "reset: " + msg.err.Error()
			return m, nil
		}
		m.activeTab = tabForView(msg.state.ActiveView)
		m.date = msg.state.SelectedDate
		m.status = "all data reset"
		return m, tea.Batch(m.reloadDays(), m.profileView.Reload(), m.historyView.Reload())

	case spinner.TickMsg:
		return m, m.updateDays(msg)

	// Day messages are shared by the three day tabs; each view ignores keys
	// that are not its own.
	case dayview.LoadedMsg, dayview.ExerciseUpdatedMsg, dayview.NotesSavedMsg, dayview.ClearedMsg:
		m.status = dayStatus(msg, m.status)
		return m, m.updateDays(msg)

	case dayview.SavedMsg:
		switch {
		case errors.Is(msg.Err, apperrors.ErrNothingToSave):
			m.status = "Nothing to save yet: log at least one set or a note."
		case msg.Err != nil:
			m.status = "save: " + msg.Err.Error()
		default:
			m.status = "Saved to history: " + msg.Entry.DayTitle + " (" + msg.Entry.Date + ")"
			return m, m.historyView.Reload()
		}
		return m, nil

	case dayview.VideoMsg:
		switch {
		case msg.Err != nil:
			m.status = "video: " + msg.Err.Error()
		case msg.Video.Opened:
			m.status = "opened " + msg.Video.Link
		default:
			m.status = msg.Video.Exercise + ": " + msg.Video.Link
		}
		return m, nil

	case profileview.LoadedMsg, profileview.SavedMsg:
		if saved, ok := msg.(profileview.SavedMsg); ok {
			switch {
			case saved.Err != nil:
				m.status = "profile: " + saved.Err.Error()
			case saved.Reset:
				m.status = "profile reset to defaults"
			default:
				m.status = "profile saved"
			}
		}
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(msg)
		return m, cmd

	case historyview.LoadedMsg, historyview.DetailMsg, historyview.DeletedMsg, historyview.ClearedMsg:
		switch msg := msg.(type) {
		case historyview.DeletedMsg:
			if msg.Err != nil {
				m.status = "delete: " + msg.Err.Error()
			} else if msg.Removed {
				m.status = "history entry deleted"
			}
		case historyview.ClearedMsg:
			if msg.Err != nil {
				m.status = "clear history: " + msg.Err.Error()
			} else {
				m.status = "history cleared"
			}
		}
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while it owns text input.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			return m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		case "1", "2", "3", "4", "5":
			return m.switchTab(tabID(msg.String()[0] - '1'))
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDayOne, tabDayTwo, tabDayThree:
		m.days[m.activeTab], tabCmd = m.days[m.activeTab].Update(msg)
	case tabProfile:
		m.profileView, tabCmd = m.profileView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDayOne, tabDayTwo, tabDayThree:
		return m.days[m.activeTab].View()
	case tabProfile:
		return m.profileView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "liftlog  " + strings.Join(parts, sep)
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.date != "" {
		left = theme.Hot.Render("● "+m.date) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + theme.Bar.Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	day, onDay := m.activeDay()

	switch parts[0] {
	case "save", "autofill", "clear-day", "video", "video:open":
		if !onDay {
			m.status = parts[0] + ": switch to a day tab first"
			return m, nil
		}
		switch parts[0] {
		case "save":
			return m, day.SaveToHistory()
		case "autofill":
			return m, day.Autofill()
		case "clear-day":
			return m, day.Clear()
		case "video":
			return m, day.OpenVideo(false)
		default:
			return m, day.OpenVideo(true)
		}

	case "date":
		date := ""
		if len(parts) >= 2 {
			date = parts[1]
		}
		return m, m.setDateCmd(date)

	case "history:day":
		dayKey := ""
		if len(parts) >= 2 {
			dayKey = parts[1]
		}
		m.activeTab = tabHistory
		return m, tea.Batch(m.historyView.FilterDay(dayKey), m.saveViewCmd(tabHistory))

	case "history:clear":
		return m, m.historyView.Clear()

	case "history:export":
		if len(parts) < 2 {
			m.status = "usage: history:export <dir>"
			return m, nil
		}
		dir := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.exportCmd(dir)

	case "profile:reset":
		m.activeTab = tabProfile
		return m, m.profileView.Reset()

	case "reset":
		return m, m.resetAllCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab is taking free text, in
// which case global key bindings must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabDayOne, tabDayTwo, tabDayThree:
		return m.days[m.activeTab].Editing()
	case tabProfile:
		return m.profileView.Editing()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m Model) activeDay() (dayview.Model, bool) {
	switch m.activeTab {
	case tabDayOne, tabDayTwo, tabDayThree:
		return m.days[m.activeTab], true
	}
	return dayview.Model{}, false
}

// switchTab activates a tab and persists it as the active view.
func (m Model) switchTab(tab tabID) (tea.Model, tea.Cmd) {
	if tab < 0 || tab >= tabCount {
		return m, nil
	}
	m.activeTab = tab
	cmds := []tea.Cmd{m.saveViewCmd(tab)}
	if tab == tabHistory {
		cmds = append(cmds, m.historyView.Reload())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	for i := range m.days {
		m.days[i], _ = m.days[i].Update(sz)
	}
	m.profileView, _ = m.profileView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

func (m *Model) updateDays(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.days))
	for i := range m.days {
		var cmd tea.Cmd
		m.days[i], cmd = m.days[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) reloadDays() tea.Cmd {
	return tea.Batch(m.days[0].Reload(), m.days[1].Reload(), m.days[2].Reload())
}

func dayStatus(msg tea.Msg, current string) string {
	switch msg := msg.(type) {
	case dayview.LoadedMsg:
		if msg.Err != nil {
			return "load " + msg.DayKey + ": " + msg.Err.Error()
		}
	case dayview.ExerciseUpdatedMsg:
		if msg.Err != nil {
			return "update: " + msg.Err.Error()
		}
		return "saved " + msg.Log.Name
	case dayview.NotesSavedMsg:
		if msg.Err != nil {
			return "notes: " + msg.Err.Error()
		}
		return "notes saved"
	case dayview.ClearedMsg:
		if msg.Err != nil {
			return "clear: " + msg.Err.Error()
		}
		return "cleared " + msg.DayKey
	}
	return current
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadOverviewCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.workout.Overview(context.Background())
		return overviewLoadedMsg{state: state, err: err}
	}
}

func (m Model) saveViewCmd(tab tabID) tea.Cmd {
	view := tabViews[tab]
	return func() tea.Msg {
		return viewSavedMsg{err: m.workout.SetView(context.Background(), view)}
	}
}

func (m Model) setDateCmd(date string) tea.Cmd {
	return func() tea.Msg {
		selected, err := m.workout.SetDate(context.Background(), date)
		return dateSetMsg{date: selected, err: err}
	}
}

func (m Model) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.workout.ExportHistory(context.Background(), dir)
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) resetAllCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.workout.ResetAll(context.Background())
		return resetMsg{state: state, err: err}
	}
}
