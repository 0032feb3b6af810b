// Package periph hands out ownership tokens for peripherals.
//
// A Token is the only way generated code gives out a peripheral's register
// block. Go cannot prove at compile time that a value is unique, so exclusive
// ownership is enforced by a process-wide claim registry instead: an address
// range can be claimed once per address space, and claims are never released.
//
// The address space of a capability is the capability value itself, unless it
// is an mmio.Mapper, in which case it is the physical space the Mapper names.
// Two Windows opened on /dev/mem therefore share their claims, while two
// simulators do not. Claims made through different capability values that
// reach the same registers by other means are not detected.
//
// The registry only detects double construction. It does not serialise use
// of a token: touching the same registers from two goroutines, or from a main
// loop and an interrupt-like handler, is still the caller's responsibility.
package periph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sarchlab/regio/mmio"
)

// ErrAlreadyClaimed is matched by every ClaimError.
var ErrAlreadyClaimed = errors.New("peripheral already claimed")

// ClaimError reports an attempt to claim a peripheral a second time.
type ClaimError struct {
	Name   string
	Base   uintptr
	Holder string
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("periph: %s at 0x%x is already claimed by %s",
		e.Name, e.Base, e.Holder)
}

// Unwrap returns ErrAlreadyClaimed.
func (e *ClaimError) Unwrap() error {
	return ErrAlreadyClaimed
}

type claim struct {
	name string
	base uintptr
	size uintptr
}

func (c claim) overlaps(base, size uintptr) bool {
	return base < c.base+c.size && c.base < base+size
}

var (
	claimsLock sync.Mutex
	claims     = make(map[any][]claim)
)

func spaceOf(io mmio.Mmio) any {
	if m, ok := io.(mmio.Mapper); ok {
		return m.AddressSpace()
	}

	return io
}

// noCopy lets `go vet` flag copies of a Token.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// A Token is exclusive authority over the registers of one peripheral.
type Token struct {
	noCopy noCopy

	name string
	base uintptr
	size uintptr
	io   mmio.Mmio
}

// Claim takes ownership of the register at base, accessed through io. It is
// ClaimRange for a single 32-bit register.
func Claim(io mmio.Mmio, name string, base uintptr) (*Token, error) {
	return ClaimRange(io, name, base, 4)
}

// ClaimRange takes ownership of the size bytes at base, accessed through io.
// It fails with a *ClaimError if the range overlaps a range already claimed
// in the same address space. A size of 0 claims a single register.
func ClaimRange(
	io mmio.Mmio,
	name string,
	base, size uintptr,
) (*Token, error) {
	if size == 0 {
		size = 4
	}

	space := spaceOf(io)

	claimsLock.Lock()
	defer claimsLock.Unlock()

	for _, c := range claims[space] {
		if c.overlaps(base, size) {
			return nil, &ClaimError{Name: name, Base: base, Holder: c.name}
		}
	}

	claims[space] = append(claims[space],
		claim{name: name, base: base, size: size})

	t := &Token{
		name: name,
		base: base,
		size: size,
		io:   io,
	}

	return t, nil
}

// MustClaim is like Claim but panics if the peripheral is already claimed.
func MustClaim(io mmio.Mmio, name string, base uintptr) *Token {
	t, err := Claim(io, name, base)
	if err != nil {
		panic(err)
	}

	return t
}

// IsClaimed tells whether the register at addr belongs to a claimed range in
// the address space of io.
func IsClaimed(io mmio.Mmio, addr uintptr) bool {
	claimsLock.Lock()
	defer claimsLock.Unlock()

	for _, c := range claims[spaceOf(io)] {
		if c.overlaps(addr, 4) {
			return true
		}
	}

	return false
}

// Name returns the peripheral name.
func (t *Token) Name() string {
	return t.name
}

// Base returns the base address of the peripheral.
func (t *Token) Base() uintptr {
	return t.base
}

// Size returns the number of bytes the token owns.
func (t *Token) Size() uintptr {
	return t.size
}

// Mmio returns the capability the peripheral is accessed through.
func (t *Token) Mmio() mmio.Mmio {
	return t.io
}
