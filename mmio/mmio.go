// Package mmio defines the capability that performs raw 32-bit loads and
// stores on memory-mapped registers.
//
// Everything above this package (register handles, arrays, generated
// peripherals) reaches hardware only through an Mmio value, so swapping the
// capability swaps real hardware for a simulator without touching the
// register-level code.
package mmio

import (
	"sync/atomic"
	"unsafe"
)

// Mmio performs single full-width accesses to memory-mapped registers.
//
// An implementation must perform exactly one load per Read32 and exactly one
// store per Write32, in program order, and must never cache, merge or drop an
// access. Many registers have side effects on access (FIFO pop on read,
// write-1-to-clear, write-1-to-trigger), so an elided or duplicated access is
// a functional bug.
//
// Implementations must be comparable. Peripheral ownership is tracked per
// capability value.
type Mmio interface {
	// Read32 loads the 32-bit register at addr.
	Read32(addr uintptr) uint32

	// Write32 stores v into the 32-bit register at addr.
	Write32(addr uintptr, v uint32)
}

// A Mapper is an Mmio that reaches a shared physical address space, such as
// a mapping of /dev/mem. Several Mapper values naming the same space reach
// the same registers.
type Mapper interface {
	Mmio

	// AddressSpace identifies the physical address space.
	AddressSpace() string
}

// Real accesses registers directly at their address. It is only meaningful
// when the register file is mapped at the addresses the program uses, for
// example on bare-metal targets or with an identity mapping.
type Real struct{}

// Read32 performs one 32-bit load at addr.
func (Real) Read32(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

// Write32 performs one 32-bit store at addr.
func (Real) Write32(addr uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}

var _ Mmio = Real{}
