// Package mmio provides load and store primitives for memory that is shared
// with a hardware device. The compiler treats every call as opaque, so
// accesses are never cached in registers, merged, reordered or dropped.
package mmio
