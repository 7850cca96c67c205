package console

import (
	"io"
	"vgacons/kernel"
	"vgacons/kernel/kfmt"
	"vgacons/kernel/sync"
)

// Handle guards the single Writer of a text console. All access to the
// Writer, and through it to the Grid, must go through a Handle; callers that
// find the handle busy spin until it is released.
//
// Handle implements io.Writer and kfmt.LockedSink so it can be used as the
// kfmt output sink.
type Handle struct {
	lock sync.Spinlock
	w    *Writer
}

// NewHandle creates a Handle owning a Writer that draws into grid with attr
// as its initial attribute.
func NewHandle(grid *Grid, attr Attribute) *Handle {
	return &Handle{w: NewWriter(grid, attr)}
}

// Acquire blocks until the caller has exclusive access to the Writer and
// returns it. Every call to Acquire must be paired with a call to Release,
// typically via defer. Calling Acquire again before releasing deadlocks.
func (h *Handle) Acquire() *Writer {
	h.lock.Acquire()
	return h.w
}

// Release gives up exclusive access obtained by Acquire.
func (h *Handle) Release() {
	h.lock.Release()
}

// Do invokes fn with exclusive access to the Writer. The lock is released
// when fn returns or panics.
func (h *Handle) Do(fn func(*Writer)) {
	w := h.Acquire()
	defer h.Release()
	fn(w)
}

// Write implements io.Writer. Non-printable bytes are substituted with
// Placeholder.
func (h *Handle) Write(p []byte) (int, error) {
	w := h.Acquire()
	defer h.Release()
	return w.Write(p)
}

// WriteString writes s while holding the handle lock.
func (h *Handle) WriteString(s string) (int, error) {
	w := h.Acquire()
	defer h.Release()
	return w.WriteString(s)
}

// Lock implements kfmt.LockedSink.
func (h *Handle) Lock() io.Writer {
	return h.Acquire()
}

// Unlock implements kfmt.LockedSink.
func (h *Handle) Unlock() {
	h.Release()
}

// BreakLock forcibly releases the handle lock regardless of its holder. It
// exists for the panic path only: once the kernel is about to halt, a writer
// interrupted mid-output will never release the lock on its own.
func (h *Handle) BreakLock() {
	h.lock.Release()
}

// DriverName returns the name of this driver.
func (h *Handle) DriverName() string {
	return "vga_text_console"
}

// DriverVersion returns the version of this driver.
func (h *Handle) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit clears the screen contents left behind by the firmware.
func (h *Handle) DriverInit(w io.Writer) *kernel.Error {
	h.Do(func(cw *Writer) {
		cw.Clear()
	})

	width, height := h.w.grid.Dimensions()
	kfmt.Fprintf(w, "cleared %dx%d text grid\n", width, height)
	return nil
}
