package console

const (
	// Placeholder is the symbol written in place of bytes that the console
	// cannot display. In code page 437 it renders as a small filled square.
	Placeholder byte = 0xfe

	// blankSymbol is the symbol used for cleared cells.
	blankSymbol byte = ' '
)

// Cell is one character position of a text-mode grid.
type Cell struct {
	Symbol byte
	Attr   Attribute
}

// blankCell is written to every position of a cleared row.
var blankCell = Cell{Symbol: blankSymbol, Attr: BlankAttribute}

// encode returns the in-memory representation of c: the symbol in the low
// byte and the attribute in the high byte. On a little-endian machine this
// places the symbol first, matching the device layout.
func (c Cell) encode() uint16 {
	return uint16(c.Attr)<<8 | uint16(c.Symbol)
}

// decodeCell is the inverse of Cell.encode.
func decodeCell(v uint16) Cell {
	return Cell{Symbol: byte(v), Attr: Attribute(v >> 8)}
}

// printable returns true if the console displays b as-is.
func printable(b byte) bool {
	return b == '\n' || (b >= 0x20 && b <= 0x7e)
}
