package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
)

// Text styles.
var (
	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Badge = lipgloss.NewStyle().Foreground(Green)
)

// Frames.
var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	// DetailPane frames the rendered history entry; callers size it.
	DetailPane = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Background(Mantle)

	Overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Peach).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	// Bar backs the tab strip and the status line.
	Bar = lipgloss.NewStyle().Background(Mantle)
)

// Day screen. Set cells share one width so weight and reps line up.
var (
	Cell         = lipgloss.NewStyle().Width(12)
	CellSelected = Cell.Foreground(Base).Background(Lavender)
	Spinner      = lipgloss.NewStyle().Foreground(Lavender)
	FieldLabel   = lipgloss.NewStyle().Width(10).Foreground(Subtext0)
)
