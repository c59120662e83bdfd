package core

// Color is a foreground color for a screen cell. The platform maps it onto
// the terminal's palette.
type Color uint8

// Palette entries used by tracks, sprites and the HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
}

// ParseColor resolves a palette name such as "bright_cyan".
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}

// UnmarshalText lets colors appear by name in YAML files.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return &UnknownColorError{Name: string(text)}
	}
	*c = parsed
	return nil
}

// UnknownColorError reports a palette name that does not exist.
type UnknownColorError struct {
	Name string
}

func (e *UnknownColorError) Error() string {
	return "core: unknown color " + e.Name
}
