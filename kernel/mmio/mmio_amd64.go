package mmio

// Load16 reads the 16-bit value stored at addr.
//
//go:noescape
func Load16(addr *uint16) uint16

// Store16 writes val to the 16-bit location at addr.
//
//go:noescape
func Store16(addr *uint16, val uint16)
