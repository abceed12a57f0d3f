package model

// LabelColor identifies a label. The color is the label's true
// identity; the display name is resolved separately and may be
// overridden board-wide.
type LabelColor string

// The fixed set of twenty label colors supported by the board.
const (
	ColorGreen   LabelColor = "green"
	ColorYellow  LabelColor = "yellow"
	ColorOrange  LabelColor = "orange"
	ColorRed     LabelColor = "red"
	ColorPurple  LabelColor = "purple"
	ColorBlue    LabelColor = "blue"
	ColorSky     LabelColor = "sky"
	ColorLime    LabelColor = "lime"
	ColorPink    LabelColor = "pink"
	ColorBlack   LabelColor = "black"
	ColorTeal    LabelColor = "teal"
	ColorMaroon  LabelColor = "maroon"
	ColorNavy    LabelColor = "navy"
	ColorOlive   LabelColor = "olive"
	ColorCoral   LabelColor = "coral"
	ColorIndigo  LabelColor = "indigo"
	ColorGold    LabelColor = "gold"
	ColorSlate   LabelColor = "slate"
	ColorBrown   LabelColor = "brown"
	ColorCyan    LabelColor = "cyan"
)

// LabelColors lists every supported color in palette order.
var LabelColors = []LabelColor{
	ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorPurple,
	ColorBlue, ColorSky, ColorLime, ColorPink, ColorBlack,
	ColorTeal, ColorMaroon, ColorNavy, ColorOlive, ColorCoral,
	ColorIndigo, ColorGold, ColorSlate, ColorBrown, ColorCyan,
}

// defaultLabelNames maps each color to its palette default display name,
// used when neither a board-wide override nor a stored name exists.
var defaultLabelNames = map[LabelColor]string{
	ColorGreen:  "Green",
	ColorYellow: "Yellow",
	ColorOrange: "Orange",
	ColorRed:    "Red",
	ColorPurple: "Purple",
	ColorBlue:   "Blue",
	ColorSky:    "Sky",
	ColorLime:   "Lime",
	ColorPink:   "Pink",
	ColorBlack:  "Black",
	ColorTeal:   "Teal",
	ColorMaroon: "Maroon",
	ColorNavy:   "Navy",
	ColorOlive:  "Olive",
	ColorCoral:  "Coral",
	ColorIndigo: "Indigo",
	ColorGold:   "Gold",
	ColorSlate:  "Slate",
	ColorBrown:  "Brown",
	ColorCyan:   "Cyan",
}

// DefaultName returns the palette default display name for the color.
func (c LabelColor) DefaultName() string {
	if name, ok := defaultLabelNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether c is one of the twenty supported colors.
func (c LabelColor) Valid() bool {
	_, ok := defaultLabelNames[c]
	return ok
}

// Label is a color-identified tag attached to a card. Presence in a
// card's label slice means the label is checked for that card. The
// optional assignee is the collaborator responsible for the label on
// this card (at most one; assignment overwrites).
type Label struct {
	Color    LabelColor `json:"color"`
	Name     string     `json:"name,omitempty"`
	Assignee *Member    `json:"assignee,omitempty"`
}
