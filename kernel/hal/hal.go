// Package hal binds the kernel to the console hardware.
package hal

import (
	"bytes"
	"vgacons/device/video/console"
	"vgacons/kernel"
	"vgacons/kernel/kfmt"
	"vgacons/kernel/sync"
)

// VgaTextBase is the physical address of the VGA text-mode framebuffer. The
// kernel runs with an identity mapping for the first MiB so the physical
// address is also the virtual one.
const VgaTextBase uintptr = 0xb8000

var (
	// The following functions are mocked by tests.
	mapGridFn = console.MapGrid
	panicFn   = kfmt.Panic

	bindLock      sync.Spinlock
	activeConsole *console.Handle

	strBuf bytes.Buffer
)

// ActiveConsole returns the console handle, binding it to the VGA text
// framebuffer on first use. All callers receive the same handle for the
// lifetime of the kernel.
func ActiveConsole() *console.Handle {
	bindLock.Acquire()
	defer bindLock.Release()

	if activeConsole == nil {
		grid, err := mapGridFn(VgaTextBase, console.DefaultWidth, console.DefaultHeight)
		if err != nil {
			panicFn(err)
			return nil
		}

		activeConsole = console.NewHandle(grid, console.DefaultAttribute)
	}

	return activeConsole
}

// InitConsole binds the console, initializes it and redirects kfmt output to
// it. Output that was printed before this call is replayed on the console.
func InitConsole() *console.Handle {
	cons := ActiveConsole()
	if cons == nil {
		return nil
	}

	strBuf.Reset()
	major, minor, patch := cons.DriverVersion()
	kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", cons.DriverName(), major, minor, patch)
	w := kfmt.PrefixWriter{Sink: cons, Prefix: strBuf.Bytes()}

	var err *kernel.Error
	if err = cons.DriverInit(&w); err != nil {
		kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
		return nil
	}

	kfmt.SetOutputSink(cons)
	kfmt.Fprintf(&w, "initialized\n")
	return cons
}
