package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the colors for one theme.
type Palette struct {
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Accent  lipgloss.Color
	Done    lipgloss.Color
	Danger  lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
	Border  lipgloss.Color
	Header  lipgloss.Color
}

var palettes = map[Name]Palette{
	Dark: {
		Text:    "252",
		Dim:     "241",
		Accent:  "62",
		Done:    "35",
		Danger:  "196",
		Warning: "214",
		Info:    "39",
		Border:  "240",
		Header:  "236",
	},
	Light: {
		Text:    "235",
		Dim:     "245",
		Accent:  "25",
		Done:    "28",
		Danger:  "160",
		Warning: "130",
		Info:    "31",
		Border:  "250",
		Header:  "254",
	},
}

// Styles is the set of lipgloss styles the UI renders with.
type Styles struct {
	Name    Name
	Palette Palette

	Title      lipgloss.Style
	Text       lipgloss.Style
	Dim        lipgloss.Style
	Selected   lipgloss.Style
	Done       lipgloss.Style
	Error      lipgloss.Style
	FilterOn   lipgloss.Style
	FilterOff  lipgloss.Style
	StatusBar  lipgloss.Style
	Dialog     lipgloss.Style
	Header     lipgloss.Style
	Checkbox   lipgloss.Style
	CheckboxOn lipgloss.Style
}

const (
	dialogPadY = 1
	dialogPadX = 2
)

// For returns the styles for n. Unknown names use light.
func For(n Name) Styles {
	p, ok := palettes[n]
	if !ok {
		n, p = Light, palettes[Light]
	}

	return Styles{
		Name:    n,
		Palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Text:     lipgloss.NewStyle().Foreground(p.Text),
		Dim:      lipgloss.NewStyle().Foreground(p.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Header),
		Done:     lipgloss.NewStyle().Foreground(p.Dim).Strikethrough(true),
		Error:    lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		FilterOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(p.Accent).
			Padding(0, 1),
		FilterOff: lipgloss.NewStyle().Foreground(p.Dim).Padding(0, 1),
		StatusBar: lipgloss.NewStyle().Foreground(p.Dim),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(dialogPadY, dialogPadX),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Header).Padding(0, 1),
		Checkbox:   lipgloss.NewStyle().Foreground(p.Dim),
		CheckboxOn: lipgloss.NewStyle().Foreground(p.Done).Bold(true),
	}
}

// VariantColor returns the border color for a prompt variant name.
func (s Styles) VariantColor(variant string) lipgloss.Color {
	switch variant {
	case "danger":
		return s.Palette.Danger
	case "warning":
		return s.Palette.Warning
	case "info":
		return s.Palette.Info
	default:
		return s.Palette.Accent
	}
}
