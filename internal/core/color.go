package core

// Color is the foreground color of a screen cell. The platform layer maps
// it to a terminal color; games only pick from this palette.
type Color uint8

// Palette shared by all games. Piece colors come first so a game can index
// them directly.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorDim // ghost pieces and other placement previews
	ColorBrightWhite
)

// String returns the palette name, mainly for test failure output.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	case ColorDim:
		return "dim"
	case ColorBrightWhite:
		return "bright-white"
	default:
		return "unknown"
	}
}
