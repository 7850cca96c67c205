package main

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"vgacons/device/video/console"
)

func TestRenderGrid(t *testing.T) {
	grid, kerr := console.NewGrid(make([]uint16, 4*2), 4, 2)
	if kerr != nil {
		t.Fatal(kerr)
	}

	cons := console.NewHandle(grid, console.NewAttribute(console.Yellow, console.Blue))
	cons.Do(func(w *console.Writer) {
		w.Clear()
		w.WriteString("A\x03")
	})

	img := renderGrid(grid)
	if exp, got := image.Rect(0, 0, 4*cellW, 2*cellH), img.Bounds(); got != exp {
		t.Fatalf("expected image bounds %v; got %v", exp, got)
	}

	specs := []struct {
		x, y int
		exp  console.Color
	}{
		// top-left corner of (1, 0) holds the background color
		{0, cellH, console.Blue},
		// center of the placeholder cell at (1, 1) is filled with the fg color
		{cellW + cellW/2, cellH + cellH/2, console.Yellow},
		// blank cells are black
		{0, 0, console.Black},
		{3*cellW + 1, cellH + 1, console.Black},
	}

	for specIndex, spec := range specs {
		if got, exp := img.RGBAAt(spec.x, spec.y), console.Palette[spec.exp]; got != exp {
			t.Errorf("[spec %d] expected pixel (%d, %d) to be %v; got %v", specIndex, spec.x, spec.y, exp, got)
		}
	}

	// The glyph for 'A' must put some foreground pixels in its cell.
	var glyphPixels int
	for y := cellH; y < 2*cellH; y++ {
		for x := 0; x < cellW; x++ {
			if img.RGBAAt(x, y) == console.Palette[console.Yellow] {
				glyphPixels++
			}
		}
	}

	if glyphPixels == 0 {
		t.Fatal("expected the 'A' glyph to be drawn")
	}
}

func TestWritePNG(t *testing.T) {
	grid, _ := console.NewGrid(make([]uint16, 80*25), 80, 25)

	var buf bytes.Buffer
	if err := writePNG(&buf, grid); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if exp, got := image.Pt(80*cellW, 25*cellH), img.Bounds().Size(); got != exp {
		t.Fatalf("expected decoded image size %v; got %v", exp, got)
	}
}
