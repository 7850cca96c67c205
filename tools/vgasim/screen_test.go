package main

import (
	"testing"
	"vgacons/device/video/console"

	"github.com/gdamore/tcell/v2"
)

func TestDrawGrid(t *testing.T) {
	grid, kerr := console.NewGrid(make([]uint16, 8*2), 8, 2)
	if kerr != nil {
		t.Fatal(kerr)
	}

	cons := console.NewHandle(grid, console.NewAttribute(console.LightGreen, console.Red))
	cons.Do(func(w *console.Writer) {
		w.Clear()
		w.WriteString("hi\x02")
	})

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(8, 2)

	drawGrid(screen, grid)

	specs := []struct {
		x, y  int
		expCh rune
		expFg console.Color
		expBg console.Color
	}{
		{0, 1, 'h', console.LightGreen, console.Red},
		{1, 1, 'i', console.LightGreen, console.Red},
		{2, 1, '■', console.LightGreen, console.Red},
		{3, 1, ' ', console.Black, console.Black},
		{0, 0, ' ', console.Black, console.Black},
	}

	for specIndex, spec := range specs {
		ch, _, style, _ := screen.GetContent(spec.x, spec.y)
		if ch != spec.expCh {
			t.Errorf("[spec %d] expected %q at (%d, %d); got %q", specIndex, spec.expCh, spec.x, spec.y, ch)
		}

		fg, bg, _ := style.Decompose()
		if exp := tcellColor(spec.expFg); fg != exp {
			t.Errorf("[spec %d] expected foreground %v; got %v", specIndex, exp, fg)
		}
		if exp := tcellColor(spec.expBg); bg != exp {
			t.Errorf("[spec %d] expected background %v; got %v", specIndex, exp, bg)
		}
	}
}

func TestTcellColor(t *testing.T) {
	if got, exp := tcellColor(console.White), tcell.NewRGBColor(255, 255, 255); got != exp {
		t.Fatalf("expected white to map to %v; got %v", exp, got)
	}

	if got, exp := tcellColor(console.Blue), tcell.NewRGBColor(0, 0, 170); got != exp {
		t.Fatalf("expected blue to map to %v; got %v", exp, got)
	}
}
