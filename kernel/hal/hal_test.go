package hal

import (
	"strings"
	"testing"
	"unsafe"
	"vgacons/device/video/console"
	"vgacons/kernel"
	"vgacons/kernel/kfmt"
)

func mockFramebuffer(t *testing.T) []uint16 {
	t.Helper()

	fb := make([]uint16, console.DefaultWidth*console.DefaultHeight)
	mapGridFn = func(addr uintptr, width, height uint32) (*console.Grid, *kernel.Error) {
		if addr != VgaTextBase {
			t.Errorf("expected grid to be mapped at 0x%x; got 0x%x", VgaTextBase, addr)
		}
		return console.MapGrid(uintptr(unsafe.Pointer(&fb[0])), width, height)
	}

	return fb
}

func resetHal() {
	mapGridFn = console.MapGrid
	panicFn = kfmt.Panic
	activeConsole = nil
	kfmt.SetOutputSink(nil)
}

// screenText returns the symbols in fb as lines with trailing blanks removed.
func screenText(fb []uint16) []string {
	width := int(console.DefaultWidth)
	lines := make([]string, 0, console.DefaultHeight)
	for row := 0; row < len(fb)/width; row++ {
		var sb strings.Builder
		for _, v := range fb[row*width : (row+1)*width] {
			sb.WriteByte(byte(v))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " \x00"))
	}
	return lines
}

func TestActiveConsole(t *testing.T) {
	defer resetHal()

	mockFramebuffer(t)

	var mapCalls int
	origMapFn := mapGridFn
	mapGridFn = func(addr uintptr, width, height uint32) (*console.Grid, *kernel.Error) {
		mapCalls++
		return origMapFn(addr, width, height)
	}

	first := ActiveConsole()
	if first == nil {
		t.Fatal("expected ActiveConsole to return a handle")
	}

	if second := ActiveConsole(); second != first {
		t.Fatal("expected ActiveConsole to always return the same handle")
	}

	if mapCalls != 1 {
		t.Fatalf("expected the framebuffer to be mapped once; got %d", mapCalls)
	}

	w := first.Acquire()
	defer first.Release()
	if got := w.Attribute(); got != console.DefaultAttribute {
		t.Fatalf("expected console attribute to default to %x; got %x", console.DefaultAttribute, got)
	}
}

func TestActiveConsoleMapError(t *testing.T) {
	defer resetHal()

	expErr := &kernel.Error{Module: "test", Message: "map failed"}
	mapGridFn = func(_ uintptr, _, _ uint32) (*console.Grid, *kernel.Error) {
		return nil, expErr
	}

	var panicArg interface{}
	panicFn = func(e interface{}) {
		panicArg = e
	}

	if cons := ActiveConsole(); cons != nil {
		t.Fatal("expected ActiveConsole to return nil when the framebuffer cannot be mapped")
	}

	if panicArg != expErr {
		t.Fatalf("expected map error to be passed to Panic; got %v", panicArg)
	}

	if InitConsole() != nil {
		t.Fatal("expected InitConsole to return nil when the framebuffer cannot be mapped")
	}
}

func TestInitConsole(t *testing.T) {
	defer resetHal()

	fb := mockFramebuffer(t)
	for i := range fb {
		fb[i] = 0x0700 | 'J'
	}

	kfmt.Printf("early boot message\n")

	cons := InitConsole()
	if cons == nil {
		t.Fatal("expected InitConsole to return a handle")
	}

	if kfmt.GetOutputSink() != cons {
		t.Fatal("expected kfmt output to be redirected to the console")
	}

	kfmt.Printf("after init\n")

	lines := screenText(fb)
	last := len(lines) - 1
	exp := []string{
		"[hal] vga_text_console(0.0.1): cleared 80x25 text grid",
		"early boot message",
		"[hal] vga_text_console(0.0.1): initialized",
		"after init",
		"",
	}

	got := lines[last-len(exp)+1:]
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("expected screen line %d to be %q; got %q", last-len(exp)+1+i, exp[i], got[i])
		}
	}

	for i := 0; i <= last-len(exp); i++ {
		if lines[i] != "" {
			t.Errorf("expected firmware output on line %d to be cleared; got %q", i, lines[i])
		}
	}
}
