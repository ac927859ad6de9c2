package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	workoutdto "liftlog/internal/modules/workout/dto"
	"liftlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListHistory(ctx context.Context, dayKey, from, to string, limit int) ([]workoutdto.HistorySummaryOutput, error)
	ShowHistory(ctx context.Context, id string) (workoutdto.HistoryEntryOutput, error)
	DeleteHistory(ctx context.Context, id string) (bool, error)
	ClearHistory(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Entries []workoutdto.HistorySummaryOutput
	Err     error
}

type DetailMsg struct {
	Entry workoutdto.HistoryEntryOutput
	Err   error
}

type DeletedMsg struct {
	ID      string
	Removed bool
	Err     error
}

type ClearedMsg struct{ Err error }

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry workoutdto.HistorySummaryOutput
}

func (i entryItem) Title() string { return i.entry.DayTitle }
func (i entryItem) Description() string {
	return fmt.Sprintf("%s · %s · %d sets", i.entry.Date, i.entry.Athlete, i.entry.LoggedSets)
}
func (i entryItem) FilterValue() string { return i.entry.Date + " " + i.entry.DayTitle }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	detail   viewport.Model
	renderer *glamour.TermRenderer
	selected workoutdto.HistoryEntryOutput
	dayKey   string
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	r, _ := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(0))

	return Model{port: port, list: l, detail: vp, renderer: r}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload lists entries, optionally narrowed to one day.
func (m Model) Reload() tea.Cmd {
	dayKey := m.dayKey
	return func() tea.Msg {
		entries, err := m.port.ListHistory(context.Background(), dayKey, "", "", 0)
		return LoadedMsg{Entries: entries, Err: err}
	}
}

// FilterDay narrows the list to dayKey; an empty key shows every day.
func (m *Model) FilterDay(dayKey string) tea.Cmd {
	m.dayKey = dayKey
	return m.Reload()
}

func (m Model) Clear() tea.Cmd {
	return func() tea.Msg {
		return ClearedMsg{Err: m.port.ClearHistory(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "History: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "History"
		if m.dayKey != "" {
			m.list.Title += " · " + m.dayKey
		}
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Entries) == 0 {
			m.selected = workoutdto.HistoryEntryOutput{}
			m.detail.SetContent(theme.Muted.Render("No saved workouts yet."))
		} else {
			cmds = append(cmds, m.loadDetailCmd(m.selectedID(msg.Entries)))
		}
		return m, tea.Batch(cmds...)

	case DetailMsg:
		if msg.Err == nil {
			m.selected = msg.Entry
			m.detail.SetContent(m.renderDetail())
			m.detail.GotoTop()
		}
		return m, nil

	case DeletedMsg, ClearedMsg:
		return m, m.Reload()

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "d", "delete":
				if item, ok := m.list.SelectedItem().(entryItem); ok {
					return m, m.deleteCmd(item.entry.ID)
				}
			case "pgdown", "J":
				m.detail.HalfViewDown()
				return m, nil
			case "pgup", "K":
				m.detail.HalfViewUp()
				return m, nil
			}
		}
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		if item, ok := m.list.SelectedItem().(entryItem); ok {
			cmds = append(cmds, m.loadDetailCmd(item.entry.ID))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.DetailPane.
		Width(max(1, detailW-2)).
		Height(max(1, m.height-2)).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(1, detailW-4)
	m.detail.Height = max(1, m.height-4)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.detail.Width),
	); err == nil {
		m.renderer = r
	}
}

// selectedID keeps the current selection when it survives a reload.
func (m Model) selectedID(entries []workoutdto.HistorySummaryOutput) string {
	for _, e := range entries {
		if e.ID == m.selected.ID {
			return e.ID
		}
	}
	return entries[0].ID
}

func (m Model) renderDetail() string {
	e := m.selected
	var sb strings.Builder
	sb.WriteString("## " + e.DayTitle + "\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s  \n**Saved:** %s  \n", e.Date, e.SavedAt.Local().Format("2006-01-02 15:04")))
	name := strings.TrimSpace(e.Profile.Name)
	if name == "" {
		name = "Player"
	}
	sb.WriteString("**Athlete:** " + name + "\n\n")
	sb.WriteString(e.Details)
	md := sb.String()
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			return rendered + "\n" + theme.Muted.Render("d: delete  J/K: scroll")
		}
	}
	return md
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.port.ShowHistory(context.Background(), id)
		return DetailMsg{Entry: entry, Err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.port.DeleteHistory(context.Background(), id)
		return DeletedMsg{ID: id, Removed: removed, Err: err}
	}
}
