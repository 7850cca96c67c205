package console

// Writer renders a byte stream into a Grid. Output always goes to the last
// row of the grid; when a new line is needed the grid contents scroll up by
// one row.
//
// The column position is always in [0, width]. A column equal to the width
// means that the last row is full and the next printable byte will first
// trigger a line break.
type Writer struct {
	col  uint32
	attr Attribute
	grid *Grid
}

// NewWriter returns a Writer that draws into grid using attr for every cell
// it writes.
func NewWriter(grid *Grid, attr Attribute) *Writer {
	return &Writer{grid: grid, attr: attr}
}

// Grid returns the grid that w draws into.
func (w *Writer) Grid() *Grid {
	return w.grid
}

// Column returns the column where the next byte will be placed.
func (w *Writer) Column() uint32 {
	return w.col
}

// Attribute returns the attribute applied to newly written cells.
func (w *Writer) Attribute() Attribute {
	return w.attr
}

// SetAttribute changes the attribute applied to newly written cells. Cells
// that are already on screen are not affected.
func (w *Writer) SetAttribute(attr Attribute) {
	w.attr = attr
}

// WriteByte places b at the current column of the last row and advances the
// column. A '\n' starts a new line instead. b is stored verbatim; use
// WriteString to substitute bytes the console cannot display. WriteByte never
// fails and always returns nil.
func (w *Writer) WriteByte(b byte) error {
	if b == '\n' {
		w.LineBreak()
		return nil
	}

	width, height := w.grid.Dimensions()
	if w.col >= width {
		w.LineBreak()
	}

	w.grid.SetCell(height-1, w.col, Cell{Symbol: b, Attr: w.attr})
	w.col++
	return nil
}

// WriteString writes s one byte at a time. Bytes outside the printable ASCII
// range (other than '\n') are replaced by Placeholder. Multi-byte encodings
// are not interpreted. WriteString always returns len(s), nil.
func (w *Writer) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		w.writeFiltered(s[i])
	}

	return len(s), nil
}

// Write implements io.Writer using the same substitution rules as
// WriteString.
func (w *Writer) Write(p []byte) (int, error) {
	for _, b := range p {
		w.writeFiltered(b)
	}

	return len(p), nil
}

func (w *Writer) writeFiltered(b byte) {
	if !printable(b) {
		b = Placeholder
	}

	_ = w.WriteByte(b)
}

// LineBreak scrolls the grid contents up by one row, clears the last row and
// moves the column back to 0.
func (w *Writer) LineBreak() {
	width, height := w.grid.Dimensions()
	for row := uint32(1); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			w.grid.SetCell(row-1, col, w.grid.Cell(row, col))
		}
	}

	w.clearRow(height - 1)
	w.col = 0
}

// Clear blanks every row of the grid and moves the column back to 0.
func (w *Writer) Clear() {
	_, height := w.grid.Dimensions()
	for row := uint32(0); row < height; row++ {
		w.clearRow(row)
	}

	w.col = 0
}

// clearRow fills row with blank cells.
func (w *Writer) clearRow(row uint32) {
	width, _ := w.grid.Dimensions()
	for col := uint32(0); col < width; col++ {
		w.grid.SetCell(row, col, blankCell)
	}
}
