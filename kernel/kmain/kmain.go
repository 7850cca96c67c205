package kmain

import (
	"vgacons/kernel"
	"vgacons/kernel/hal"
	"vgacons/kernel/kfmt"
)

var (
	errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}
)

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. It is invoked by the rt0 assembly code after setting up
// the GDT and a minimal g0 struct that allows Go code to use the stack
// allocated by the assembly code.
//
// Kmain is not expected to return. If it does, the rt0 code will halt the CPU.
//
//go:noinline
func Kmain() {
	hal.InitConsole()

	kfmt.Printf("Hello world! %d %d\n\n", 2, 3)
	kfmt.Println("Hello world!", 2, 3)

	// Use kfmt.Panic instead of panic to prevent the compiler from
	// treating kfmt.Panic as dead-code and eliminating it.
	kfmt.Panic(errKmainReturned)
}
