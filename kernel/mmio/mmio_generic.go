//go:build !amd64

package mmio

// Load16 reads the 16-bit value stored at addr.
//
//go:noinline
func Load16(addr *uint16) uint16 {
	return *addr
}

// Store16 writes val to the 16-bit location at addr.
//
//go:noinline
func Store16(addr *uint16, val uint16) {
	*addr = val
}
