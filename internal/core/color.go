package core

// Color is a palette slot used by hosts to paint tiles.
// Hosts map each slot to a terminal color of their choice.
type Color uint8

// Palette slots, ordered by tile value.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorBlue
	ColorCyan
	ColorGreen
	ColorBrightYellow
	ColorBrightRed
	ColorBrightMagenta
)

// TileColor returns the palette slot for a tile value.
// Values above the palette range share the last slot.
func TileColor(value int) Color {
	if value == Empty {
		return ColorDefault
	}
	slot := ColorGray
	for v := 2; v < value && slot < ColorBrightMagenta; v *= 2 {
		slot++
	}
	return slot
}
