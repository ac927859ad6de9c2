package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"liftlog/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// PaletteCommand is one entry of the palette's help list. Usage shows the
// argument shape after the name.
type PaletteCommand struct {
	Name  string
	Usage string
}

func (c PaletteCommand) String() string {
	if c.Usage == "" {
		return c.Name
	}
	return c.Name + " " + c.Usage
}

// Commands must stay in sync with the switch in app/model.go executePalette.
var Commands = []PaletteCommand{
	{Name: "save"},
	{Name: "autofill"},
	{Name: "clear-day"},
	{Name: "date", Usage: "[YYYY-MM-DD]"},
	{Name: "video"},
	{Name: "video:open"},
	{Name: "history:day", Usage: "[day1|day2|day3]"},
	{Name: "history:clear"},
	{Name: "history:export", Usage: "<dir>"},
	{Name: "profile:reset"},
	{Name: "reset"},
}

const (
	maxSuggestions = 5
	maxRecall      = 20
)

// Palette is a command-palette overlay backed by bubbles/textinput. Tab
// completes the command name; up/down recall earlier submissions.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	recent  []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "command, tab completes"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.recent)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			if val != "" {
				p.remember(val)
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			p.complete()
			return p, nil
		case "up":
			p.step(-1)
			return p, nil
		case "down":
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if suggestions := Suggest(p.input.Value()); len(suggestions) > 0 {
		sb.WriteString("\n")
		for _, c := range suggestions {
			sb.WriteString(theme.Muted.Render("  "+c.String()) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return theme.Overlay.Width(w - 2).Render(sb.String())
}

// Suggest lists commands whose name starts with the first word of input.
// Once arguments follow, only an exact name match is shown.
func Suggest(input string) []PaletteCommand {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Commands[:min(maxSuggestions, len(Commands))]
	}
	word := fields[0]
	exact := len(fields) > 1 || strings.HasSuffix(input, " ")
	var out []PaletteCommand
	for _, c := range Commands {
		if (exact && c.Name == word) || (!exact && strings.HasPrefix(c.Name, word)) {
			out = append(out, c)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// complete replaces a partial command name with the first match and leaves
// the cursor ready for arguments.
func (p *Palette) complete() {
	value := p.input.Value()
	if strings.Contains(strings.TrimSpace(value), " ") {
		return
	}
	matches := Suggest(value)
	if len(matches) == 0 {
		return
	}
	next := matches[0].Name
	if matches[0].Usage != "" {
		next += " "
	}
	p.input.SetValue(next)
	p.input.CursorEnd()
}

func (p *Palette) remember(cmd string) {
	if n := len(p.recent); n > 0 && p.recent[n-1] == cmd {
		return
	}
	p.recent = append(p.recent, cmd)
	if len(p.recent) > maxRecall {
		p.recent = p.recent[len(p.recent)-maxRecall:]
	}
}

func (p *Palette) step(delta int) {
	if len(p.recent) == 0 {
		return
	}
	p.recall = max(0, min(len(p.recent), p.recall+delta))
	if p.recall == len(p.recent) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.recent[p.recall])
	p.input.CursorEnd()
}
