package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cmds []PaletteCommand) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}

func TestSuggest(t *testing.T) {
	t.Parallel()
	assert.Len(t, Suggest(""), maxSuggestions)
	assert.Equal(t, []string{"history:day", "history:clear", "history:export"}, names(Suggest("hist")))
	assert.Equal(t, []string{"video", "video:open"}, names(Suggest("VID")))
	assert.Equal(t, []string{"date"}, names(Suggest("date 2026-10-01")))
	assert.Empty(t, Suggest("nope"))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPaletteCompletesAndSubmits(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()

	p, _ = p.Update(key("history:e"))
	p, _ = p.Update(key("tab"))
	assert.Equal(t, "history:export ", p.input.Value())

	p, _ = p.Update(key("/tmp/out"))
	p, cmd := p.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, PaletteSubmitMsg{Input: "history:export /tmp/out"}, cmd())
	assert.False(t, p.Visible())
}

func TestPaletteRecallsEarlierCommands(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	for _, c := range []string{"save", "autofill", "autofill"} {
		p.Open()
		p, _ = p.Update(key(c))
		p, _ = p.Update(key("enter"))
	}
	assert.Equal(t, []string{"save", "autofill"}, p.recent)

	p.Open()
	p, _ = p.Update(key("up"))
	assert.Equal(t, "autofill", p.input.Value())
	p, _ = p.Update(key("up"))
	assert.Equal(t, "save", p.input.Value())
	p, _ = p.Update(key("up"))
	assert.Equal(t, "save", p.input.Value())
	p, _ = p.Update(key("down"))
	p, _ = p.Update(key("down"))
	assert.Equal(t, "", p.input.Value())

	p, cmd := p.Update(key("esc"))
	assert.Equal(t, PaletteCancelMsg{}, cmd())
	assert.False(t, p.Visible())
}
