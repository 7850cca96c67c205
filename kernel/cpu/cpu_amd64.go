package cpu

// Halt stops instruction execution. The halt is performed in a loop with
// interrupts disabled so that the CPU never resumes executing kernel code.
func Halt()
