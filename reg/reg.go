// Package reg provides typed handles to 32-bit memory-mapped registers.
//
// A register is described at the type level by a Meta (name, offset, reset
// value) and by its value types: a ReadVal that decodes fields and a WriteVal
// that encodes them. The access class is the handle type itself: RO offers
// only Read, WO offers only Write, RW offers both plus Modify. Every operation
// loads or stores the full word exactly once through an mmio.Mmio capability.
//
// Modify is a plain read followed by a write. It is not atomic and re-writes
// every bit it read, so registers with write-1-to-clear bits must be written
// with Write or WriteWith instead.
package reg

import "github.com/sarchlab/regio/mmio"

// Meta describes a register at the type level. Implementations are empty
// structs emitted by the generator.
type Meta interface {
	// Name returns the register name from the chip description.
	Name() string

	// Offset returns the byte offset of the register from the peripheral
	// base. For arrays it is the offset of element 0.
	Offset() uintptr

	// Reset returns the reset value of the register.
	Reset() uint32
}

// Value is the raw representation shared by all register values.
type Value interface {
	~uint32
}

// ReadValue is a decoded register value that can be turned into a WriteValue
// carrying the same bits.
type ReadValue[W Value] interface {
	~uint32

	// Modify returns a write value seeded with every bit of the read value.
	Modify() W
}

// RO is a handle to a read-only register.
type RO[M Meta, R Value] struct {
	io   mmio.Mmio
	addr uintptr
}

// NewRO returns the handle of the register described by M in the peripheral
// mapped at base.
func NewRO[M Meta, R Value](io mmio.Mmio, base uintptr) RO[M, R] {
	var m M
	return AtRO[M, R](io, base+m.Offset())
}

// AtRO returns a handle to the register at the resolved address addr.
func AtRO[M Meta, R Value](io mmio.Mmio, addr uintptr) RO[M, R] {
	return RO[M, R]{io: io, addr: addr}
}

// Addr returns the resolved address of the register.
func (r RO[M, R]) Addr() uintptr {
	return r.addr
}

// Name returns the register name.
func (r RO[M, R]) Name() string {
	var m M
	return m.Name()
}

// Read performs one load of the register.
func (r RO[M, R]) Read() R {
	return R(r.io.Read32(r.addr))
}

// WO is a handle to a write-only register.
type WO[M Meta, W Value] struct {
	io   mmio.Mmio
	addr uintptr
}

// NewWO returns the handle of the register described by M in the peripheral
// mapped at base.
func NewWO[M Meta, W Value](io mmio.Mmio, base uintptr) WO[M, W] {
	var m M
	return AtWO[M, W](io, base+m.Offset())
}

// AtWO returns a handle to the register at the resolved address addr.
func AtWO[M Meta, W Value](io mmio.Mmio, addr uintptr) WO[M, W] {
	return WO[M, W]{io: io, addr: addr}
}

// Addr returns the resolved address of the register.
func (r WO[M, W]) Addr() uintptr {
	return r.addr
}

// Name returns the register name.
func (r WO[M, W]) Name() string {
	var m M
	return m.Name()
}

// Write performs one store of w.
func (r WO[M, W]) Write(w W) {
	r.io.Write32(r.addr, uint32(w))
}

// WriteWith stores the value f builds from the reset value.
func (r WO[M, W]) WriteWith(f func(W) W) {
	var m M
	r.Write(f(W(m.Reset())))
}

// RW is a handle to a read-write register.
type RW[M Meta, R ReadValue[W], W Value] struct {
	io   mmio.Mmio
	addr uintptr
}

// NewRW returns the handle of the register described by M in the peripheral
// mapped at base.
func NewRW[M Meta, R ReadValue[W], W Value](
	io mmio.Mmio,
	base uintptr,
) RW[M, R, W] {
	var m M
	return AtRW[M, R, W](io, base+m.Offset())
}

// AtRW returns a handle to the register at the resolved address addr.
func AtRW[M Meta, R ReadValue[W], W Value](
	io mmio.Mmio,
	addr uintptr,
) RW[M, R, W] {
	return RW[M, R, W]{io: io, addr: addr}
}

// Addr returns the resolved address of the register.
func (r RW[M, R, W]) Addr() uintptr {
	return r.addr
}

// Name returns the register name.
func (r RW[M, R, W]) Name() string {
	var m M
	return m.Name()
}

// Read performs one load of the register.
func (r RW[M, R, W]) Read() R {
	return R(r.io.Read32(r.addr))
}

// Write performs one store of w.
func (r RW[M, R, W]) Write(w W) {
	r.io.Write32(r.addr, uint32(w))
}

// WriteWith stores the value f builds from the reset value. It does not read
// the register.
func (r RW[M, R, W]) WriteWith(f func(W) W) {
	var m M
	r.Write(f(W(m.Reset())))
}

// Modify reads the register, passes the value to f and writes back what f
// returns. It is exactly one load followed by one store and is not atomic:
// hardware updates between the two accesses are overwritten, and
// write-1-to-clear bits that read as 1 are cleared by the store.
func (r RW[M, R, W]) Modify(f func(R) W) {
	r.Write(f(r.Read()))
}

// ReadOnly returns a read-only handle to the same register.
func (r RW[M, R, W]) ReadOnly() RO[M, R] {
	return AtRO[M, R](r.io, r.addr)
}
