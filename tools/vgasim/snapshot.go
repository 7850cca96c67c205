package main

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"vgacons/device/video/console"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Size of a rendered cell in pixels; matches basicfont.Face7x13.
const (
	cellW = 7
	cellH = 13
)

// renderGrid draws g into a new image, one cellW x cellH block per cell.
func renderGrid(g *console.Grid) *image.RGBA {
	width, height := g.Dimensions()
	img := image.NewRGBA(image.Rect(0, 0, int(width)*cellW, int(height)*cellH))

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	var glyphBuf [1]byte

	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			cell := g.Cell(row, col)
			x, y := int(col)*cellW, int(row)*cellH
			fg := console.Palette[cell.Attr.Foreground()]

			draw.Draw(img, image.Rect(x, y, x+cellW, y+cellH),
				image.NewUniform(console.Palette[cell.Attr.Background()]), image.Point{}, draw.Src)

			switch {
			case cell.Symbol == console.Placeholder:
				// The bitmap font lacks the code page 437 block glyph.
				draw.Draw(img, image.Rect(x+1, y+3, x+cellW-1, y+cellH-3),
					image.NewUniform(fg), image.Point{}, draw.Src)
			case cell.Symbol > ' ' && cell.Symbol <= '~':
				glyphBuf[0] = cell.Symbol
				d := font.Drawer{
					Dst:  img,
					Src:  image.NewUniform(fg),
					Face: face,
					Dot:  fixed.P(x, y+ascent),
				}
				d.DrawBytes(glyphBuf[:])
			}
		}
	}

	return img
}

// writePNG renders g and encodes it as a PNG to w.
func writePNG(w io.Writer, g *console.Grid) error {
	return png.Encode(w, renderGrid(g))
}
