package profile

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	workoutdto "liftlog/internal/modules/workout/dto"
	"liftlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Profile(ctx context.Context) (workoutdto.Profile, error)
	UpdateProfile(ctx context.Context, profile workoutdto.Profile) (workoutdto.Profile, error)
	ResetProfile(ctx context.Context) (workoutdto.Profile, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Profile workoutdto.Profile
	Err     error
}

// SavedMsg reports a profile save or reset.
type SavedMsg struct {
	Profile workoutdto.Profile
	Reset   bool
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

var fieldLabels = []string{"Name", "Age", "Grade", "Height", "Weight", "Position", "Goals"}

type Model struct {
	port    Port
	inputs  []textinput.Model
	focus   int
	editing bool
	loaded  bool
	width   int
	height  int
}

func New(port Port) Model {
	inputs := make([]textinput.Model, len(fieldLabels))
	for i, label := range fieldLabels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 64
		ti.Width = 32
		inputs[i] = ti
	}
	return Model{port: port, inputs: inputs}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Editing reports whether the form has focus.
func (m Model) Editing() bool { return m.editing }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		p, err := m.port.Profile(context.Background())
		return LoadedMsg{Profile: p, Err: err}
	}
}

func (m Model) Reset() tea.Cmd {
	return func() tea.Msg {
		p, err := m.port.ResetProfile(context.Background())
		return SavedMsg{Profile: p, Reset: true, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		if msg.Err == nil {
			m.loaded = true
			m.setValues(msg.Profile)
		}

	case SavedMsg:
		if msg.Err == nil {
			m.setValues(msg.Profile)
		}

	case tea.KeyMsg:
		if !m.editing {
			switch msg.String() {
			case "enter", "e":
				m.editing = true
				return m, m.inputs[m.focus].Focus()
			case "up", "k":
				m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
			case "down", "j":
				m.focus = (m.focus + 1) % len(m.inputs)
			case "R":
				return m, m.Reset()
			}
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.editing = false
			m.inputs[m.focus].Blur()
			return m, m.Reload()
		case "enter":
			m.editing = false
			m.inputs[m.focus].Blur()
			return m, m.save()
		case "up", "shift+tab":
			return m, m.moveFocus(-1)
		case "down", "tab":
			return m, m.moveFocus(1)
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Athlete Profile") + "\n\n")
	for i, label := range fieldLabels {
		marker := "  "
		if i == m.focus {
			marker = theme.Hot.Render("› ")
		}
		value := m.inputs[i].View()
		if !m.editing {
			value = m.inputs[i].Value()
			if value == "" {
				value = theme.Muted.Render("—")
			}
		}
		sb.WriteString(marker + theme.FieldLabel.Render(label) + value + "\n")
	}
	sb.WriteString("\n")
	if m.editing {
		sb.WriteString(theme.Muted.Render("↑/↓ field  enter: save profile  esc: discard"))
	} else {
		sb.WriteString(theme.Muted.Render("enter: edit  R: reset to defaults"))
	}
	return theme.Pane.Width(max(20, min(m.width-2, 60))).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) setValues(p workoutdto.Profile) {
	values := []string{p.Name, p.Age, p.Grade, p.Height, p.Weight, p.Position, p.Goals}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
}

// save submits every field at once; the profile is replaced as a whole.
func (m Model) save() tea.Cmd {
	p := workoutdto.Profile{
		Name:     m.inputs[0].Value(),
		Age:      m.inputs[1].Value(),
		Grade:    m.inputs[2].Value(),
		Height:   m.inputs[3].Value(),
		Weight:   m.inputs[4].Value(),
		Position: m.inputs[5].Value(),
		Goals:    m.inputs[6].Value(),
	}
	return func() tea.Msg {
		saved, err := m.port.UpdateProfile(context.Background(), p)
		return SavedMsg{Profile: saved, Err: err}
	}
}
