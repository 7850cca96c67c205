package main

import (
	"bufio"
	"io"
	"vgacons/device/video/console"
)

// dumpText writes the grid contents as lines of text. Trailing blanks are
// kept so every line is exactly as wide as the grid.
func dumpText(out io.Writer, g *console.Grid) error {
	bw := bufio.NewWriter(out)
	width, height := g.Dimensions()
	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			bw.WriteRune(glyph(g.Cell(row, col).Symbol))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// glyph maps a console symbol to the rune that code page 437 displays for
// it. Symbols that the console never produces from text are shown as-is.
func glyph(symbol byte) rune {
	if symbol == console.Placeholder {
		return '■'
	}
	return rune(symbol)
}
