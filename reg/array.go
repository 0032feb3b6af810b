package reg

import (
	"errors"
	"fmt"
	"iter"

	"github.com/sarchlab/regio/mmio"
)

// ErrIndexOutOfRange is matched by every IndexError.
var ErrIndexOutOfRange = errors.New("register index out of range")

// IndexError reports an array index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("reg: index %d out of range [0, %d)", e.Index, e.Len)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// Array is a bank of identical registers laid out at a fixed stride.
type Array[T any] struct {
	io     mmio.Mmio
	base   uintptr
	count  int
	stride uintptr
	at     func(io mmio.Mmio, addr uintptr) T
}

// NewArray describes count registers starting at the resolved address base,
// stride bytes apart. at builds the handle of one element, usually one of
// AtRO, AtWO or AtRW.
func NewArray[T any](
	io mmio.Mmio,
	base uintptr,
	count int,
	stride uintptr,
	at func(io mmio.Mmio, addr uintptr) T,
) Array[T] {
	if count < 0 {
		panic("reg: negative array length")
	}

	return Array[T]{
		io:     io,
		base:   base,
		count:  count,
		stride: stride,
		at:     at,
	}
}

// Len returns the number of elements.
func (a Array[T]) Len() int {
	return a.count
}

// Base returns the address of element 0.
func (a Array[T]) Base() uintptr {
	return a.base
}

// Stride returns the distance in bytes between elements.
func (a Array[T]) Stride() uintptr {
	return a.stride
}

// At returns element i. It panics with an *IndexError if i is outside
// [0, Len), like indexing a Go slice; it never wraps around.
func (a Array[T]) At(i int) T {
	if i < 0 || i >= a.count {
		panic(&IndexError{Index: i, Len: a.count})
	}

	return a.at(a.io, a.base+uintptr(i)*a.stride)
}

// TryAt returns element i, or an *IndexError for indices computed from
// untrusted input.
func (a Array[T]) TryAt(i int) (T, error) {
	if i < 0 || i >= a.count {
		var zero T
		return zero, &IndexError{Index: i, Len: a.count}
	}

	return a.At(i), nil
}

// All iterates over the elements in index order.
func (a Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.count; i++ {
			if !yield(i, a.At(i)) {
				return
			}
		}
	}
}
