package theme

import (
	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/board"
	"opsboard/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// NoticeStyle highlights transient error/info notices in the status bar.
var NoticeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// ColumnStyle wraps a single board column.
var ColumnStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// FocusedColumnStyle marks the column holding the cursor.
var FocusedColumnStyle = ColumnStyle.
	BorderForeground(ColorBlue)

// ColumnTitleStyle renders a column header with its card count.
var ColumnTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// CardStyle is the base style for a card row inside a column.
var CardStyle = lipgloss.NewStyle().
	PaddingLeft(1)

// SelectedCardStyle highlights the card under the cursor.
var SelectedCardStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// GrabbedCardStyle marks a card being carried in move mode.
var GrabbedCardStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorOrange).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorOrange)

// DetailPanelStyle wraps the card detail content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders secondary text such as resolved questions.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// labelTints maps each of the twenty label colors to a terminal color.
var labelTints = map[model.LabelColor]lipgloss.AdaptiveColor{
	model.ColorGreen:  {Dark: "#6BCB77", Light: "#2F855A"},
	model.ColorYellow: {Dark: "#FFD93D", Light: "#B7791F"},
	model.ColorOrange: {Dark: "#FFA94D", Light: "#C05621"},
	model.ColorRed:    {Dark: "#FF6B6B", Light: "#C53030"},
	model.ColorPurple: {Dark: "#CC5DE8", Light: "#805AD5"},
	model.ColorBlue:   {Dark: "#5B9BD5", Light: "#2B6CB0"},
	model.ColorSky:    {Dark: "#66D9E8", Light: "#0987A0"},
	model.ColorLime:   {Dark: "#A9E34B", Light: "#5F9A1A"},
	model.ColorPink:   {Dark: "#F783AC", Light: "#B83280"},
	model.ColorBlack:  {Dark: "#CED4DA", Light: "#1A202C"},
	model.ColorTeal:   {Dark: "#38D9A9", Light: "#2C7A7B"},
	model.ColorMaroon: {Dark: "#E8590C", Light: "#822727"},
	model.ColorNavy:   {Dark: "#748FFC", Light: "#2A4365"},
	model.ColorOlive:  {Dark: "#C0CA33", Light: "#827717"},
	model.ColorCoral:  {Dark: "#FF8787", Light: "#C05621"},
	model.ColorIndigo: {Dark: "#9775FA", Light: "#434190"},
	model.ColorGold:   {Dark: "#FFD43B", Light: "#975A16"},
	model.ColorSlate:  {Dark: "#ADB5BD", Light: "#4A5568"},
	model.ColorBrown:  {Dark: "#D9480F", Light: "#7B341E"},
	model.ColorCyan:   {Dark: "#3BC9DB", Light: "#086F83"},
}

// LabelStyle returns the chip style for a label color.
func LabelStyle(color model.LabelColor) lipgloss.Style {
	tint, ok := labelTints[color]
	if !ok {
		tint = ColorGray
	}
	return lipgloss.NewStyle().Bold(true).Foreground(tint)
}

// FuelStyle returns the countdown style for a fuel color class.
func FuelStyle(colorClass string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch colorClass {
	case board.FuelOverdue:
		return base.Foreground(ColorRed)
	case board.FuelCritical:
		return base.Foreground(ColorOrange)
	case board.FuelHigh:
		return base.Foreground(ColorYellow)
	case board.FuelMedium:
		return base.Foreground(ColorYellow)
	case board.FuelLow:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// Background is a selectable board backdrop. Only the name is
// persisted; the styles are looked up at render time.
type Background struct {
	Name  string
	Color lipgloss.AdaptiveColor
}

// Backgrounds lists the selectable board backdrops in picker order.
var Backgrounds = []Background{
	{Name: "default", Color: lipgloss.AdaptiveColor{Dark: "", Light: ""}},
	{Name: "midnight", Color: lipgloss.AdaptiveColor{Dark: "#101418", Light: "#1A202C"}},
	{Name: "ocean", Color: lipgloss.AdaptiveColor{Dark: "#0B2239", Light: "#BEE3F8"}},
	{Name: "forest", Color: lipgloss.AdaptiveColor{Dark: "#10291B", Light: "#C6F6D5"}},
	{Name: "plum", Color: lipgloss.AdaptiveColor{Dark: "#2A1A33", Light: "#E9D8FD"}},
}

// BackgroundByName returns the named backdrop, defaulting to the first
// entry for unknown names.
func BackgroundByName(name string) Background {
	for _, bg := range Backgrounds {
		if bg.Name == name {
			return bg
		}
	}
	return Backgrounds[0]
}
