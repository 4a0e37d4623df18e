package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorBlue   = lipgloss.Color("#2563EB")
	colorGreen  = lipgloss.Color("#16A34A")
	colorRed    = lipgloss.Color("#DC2626")
	colorGray   = lipgloss.Color("#4B5563")
	colorMuted  = lipgloss.Color("#9CA3AF")
	colorText   = lipgloss.Color("#F3F4F6")
	colorAccent = lipgloss.Color("#60A5FA")
)

// Styles holds the lipgloss styles used by the view.
type Styles struct {
	Title        lipgloss.Style
	Section      lipgloss.Style
	Panel        lipgloss.Style
	Button       lipgloss.Style
	AddButton    lipgloss.Style
	DangerButton lipgloss.Style
	StepButton   lipgloss.Style
	Selected     lipgloss.Style
	ItemName     lipgloss.Style
	Quantity     lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the dark palette styles.
func DefaultStyles() Styles {
	button := lipgloss.NewStyle().
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(1)

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Section:      lipgloss.NewStyle().Bold(true).Foreground(colorText),
		Panel:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorGray).Padding(0, 1),
		Button:       button.Background(colorBlue),
		AddButton:    button.Background(colorGreen),
		DangerButton: button.Background(colorRed),
		StepButton:   button.Background(colorGray),
		Selected:     lipgloss.NewStyle().Bold(true).Underline(true),
		ItemName:     lipgloss.NewStyle().Bold(true).Foreground(colorText).Width(18),
		Quantity:     lipgloss.NewStyle().Foreground(colorMuted).Width(14),
		Muted:        lipgloss.NewStyle().Foreground(colorMuted),
		Error:        lipgloss.NewStyle().Foreground(colorRed),
		Help:         lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
