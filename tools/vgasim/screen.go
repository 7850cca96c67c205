package main

import (
	"os"
	"vgacons/device/video/console"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// tcellColor returns the tcell color matching a console palette entry.
func tcellColor(c console.Color) tcell.Color {
	r, g, b, _ := console.Palette[c&0xf].RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// drawGrid copies every cell of g to s, starting at the top-left corner.
func drawGrid(s tcell.Screen, g *console.Grid) {
	width, height := g.Dimensions()
	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			cell := g.Cell(row, col)
			style := tcell.StyleDefault.
				Foreground(tcellColor(cell.Attr.Foreground())).
				Background(tcellColor(cell.Attr.Background()))
			s.SetContent(int(col), int(row), glyph(cell.Symbol), nil, style)
		}
	}
}

// showInTerminal displays g until a key is pressed. Terminals too small to
// hold the grid get a text dump instead.
func showInTerminal(g *console.Grid) error {
	if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height := g.Dimensions()
		if cols < int(width) || rows < int(height) {
			return dumpText(os.Stdout, g)
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	s.Clear()
	drawGrid(s, g)
	s.Show()

	for {
		switch s.PollEvent().(type) {
		case *tcell.EventKey, nil:
			return nil
		case *tcell.EventResize:
			s.Sync()
		}
	}
}
