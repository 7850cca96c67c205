package console

import (
	"unsafe"
	"vgacons/kernel"
	"vgacons/kernel/mmio"
)

// Dimensions of the standard 80x25 text mode.
const (
	DefaultWidth  uint32 = 80
	DefaultHeight uint32 = 25
)

var (
	errNilFramebuffer = &kernel.Error{Module: "console", Message: "framebuffer address is nil"}
	errBadDimensions  = &kernel.Error{Module: "console", Message: "grid dimensions must be non-zero"}
	errShortBuffer    = &kernel.Error{Module: "console", Message: "cell buffer is smaller than width*height"}
	errOutOfBounds    = &kernel.Error{Module: "console", Message: "cell coordinates out of bounds"}
)

// Grid is a row-major array of text-mode cells. Each cell occupies two bytes
// (symbol, attribute). The backing memory may be observed by the display
// hardware, so every cell access goes through the mmio primitives.
type Grid struct {
	width  uint32
	height uint32
	cells  []uint16
}

// NewGrid returns a Grid that uses cells as its backing store. It is used for
// grids that live in ordinary memory, e.g. for the host simulator.
func NewGrid(cells []uint16, width, height uint32) (*Grid, *kernel.Error) {
	if width == 0 || height == 0 {
		return nil, errBadDimensions
	}

	if uint64(len(cells)) < uint64(width)*uint64(height) {
		return nil, errShortBuffer
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells[:width*height],
	}, nil
}

// MapGrid overlays a Grid on top of the device memory region starting at
// addr.
//
// This is the only place where a raw address becomes a Grid. The caller
// asserts that the region is mapped, holds at least width*height cells, stays
// valid for the lifetime of the kernel and is not written through any other
// Grid. None of these properties can be checked here.
func MapGrid(addr uintptr, width, height uint32) (*Grid, *kernel.Error) {
	if addr == 0 {
		return nil, errNilFramebuffer
	}

	if width == 0 || height == 0 {
		return nil, errBadDimensions
	}

	cells := unsafe.Slice((*uint16)(unsafe.Pointer(addr)), width*height)
	return NewGrid(cells, width, height)
}

// Dimensions returns the grid width and height in characters.
func (g *Grid) Dimensions() (uint32, uint32) {
	return g.width, g.height
}

// Cell returns the cell at (row, col). Both coordinates are 0-based. Accessing
// a cell outside the grid is an invariant violation and panics.
func (g *Grid) Cell(row, col uint32) Cell {
	return decodeCell(mmio.Load16(g.cellPtr(row, col)))
}

// SetCell stores c at (row, col). Both coordinates are 0-based. Accessing a
// cell outside the grid is an invariant violation and panics.
func (g *Grid) SetCell(row, col uint32, c Cell) {
	mmio.Store16(g.cellPtr(row, col), c.encode())
}

func (g *Grid) cellPtr(row, col uint32) *uint16 {
	if row >= g.height || col >= g.width {
		panic(errOutOfBounds)
	}

	return &g.cells[row*g.width+col]
}
