package console

import "image/color"

// Color is one of the 16 colors of the EGA/VGA text-mode palette.
type Color uint8

// The hardware palette, in the order expected by the attribute byte.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	Pink
	Yellow
	White
)

var colorNames = [...]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "light gray",
	"dark gray", "light blue", "light green", "light cyan", "light red", "pink",
	"yellow", "white",
}

// String returns the name of the color.
func (c Color) String() string {
	if int(c) >= len(colorNames) {
		return "invalid"
	}
	return colorNames[c]
}

// Palette contains the RGB values that the default VGA DAC programming
// assigns to each Color.
var Palette = color.Palette{
	color.RGBA{R: 0, G: 0, B: 0, A: 255},       /* black */
	color.RGBA{R: 0, G: 0, B: 170, A: 255},     /* blue */
	color.RGBA{R: 0, G: 170, B: 0, A: 255},     /* green */
	color.RGBA{R: 0, G: 170, B: 170, A: 255},   /* cyan */
	color.RGBA{R: 170, G: 0, B: 0, A: 255},     /* red */
	color.RGBA{R: 170, G: 0, B: 170, A: 255},   /* magenta */
	color.RGBA{R: 170, G: 85, B: 0, A: 255},    /* brown */
	color.RGBA{R: 170, G: 170, B: 170, A: 255}, /* light gray */
	color.RGBA{R: 85, G: 85, B: 85, A: 255},    /* dark gray */
	color.RGBA{R: 85, G: 85, B: 255, A: 255},   /* light blue */
	color.RGBA{R: 85, G: 255, B: 85, A: 255},   /* light green */
	color.RGBA{R: 85, G: 255, B: 255, A: 255},  /* light cyan */
	color.RGBA{R: 255, G: 85, B: 85, A: 255},   /* light red */
	color.RGBA{R: 255, G: 85, B: 255, A: 255},  /* pink */
	color.RGBA{R: 255, G: 255, B: 85, A: 255},  /* yellow */
	color.RGBA{R: 255, G: 255, B: 255, A: 255}, /* white */
}

// Attribute packs a foreground and a background Color into the attribute byte
// of a text-mode cell: the high nibble holds the background and the low
// nibble the foreground.
type Attribute uint8

var (
	// BlankAttribute is used for cleared cells (black on black).
	BlankAttribute = NewAttribute(Black, Black)

	// DefaultAttribute is the attribute a console starts with.
	DefaultAttribute = NewAttribute(Yellow, Black)
)

// NewAttribute returns the Attribute for the fg/bg color pair. Only the low 4
// bits of each color are used.
func NewAttribute(fg, bg Color) Attribute {
	return Attribute((uint8(bg)&0xf)<<4 | uint8(fg)&0xf)
}

// Foreground returns the foreground color encoded in a.
func (a Attribute) Foreground() Color {
	return Color(a & 0xf)
}

// Background returns the background color encoded in a.
func (a Attribute) Background() Color {
	return Color(a >> 4)
}
