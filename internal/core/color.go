package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBlack
	ColorBrightYellow
	ColorBrown
	ColorGold
	ColorGray
	ColorDarkGray
	ColorLightGray
)

// colorNames maps config-level color names to cell colors.
var colorNames = map[string]Color{
	"default":   ColorDefault,
	"red":       ColorRed,
	"green":     ColorGreen,
	"yellow":    ColorYellow,
	"blue":      ColorBlue,
	"magenta":   ColorMagenta,
	"cyan":      ColorCyan,
	"white":     ColorWhite,
	"black":     ColorBlack,
	"brown":     ColorBrown,
	"gold":      ColorGold,
	"gray":      ColorGray,
	"grey":      ColorGray,
	"darkgray":  ColorDarkGray,
	"lightgray": ColorLightGray,
}

// ParseColor resolves a color name (case-insensitive) to a Color.
// Unknown names resolve to ColorDefault and ok=false.
func ParseColor(name string) (c Color, ok bool) {
	c, ok = colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
