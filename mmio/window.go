//go:build linux

package mmio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// OutOfWindowError is the panic value raised when a Window is asked to access
// an address it does not map.
type OutOfWindowError struct {
	Addr uintptr
	Base uintptr
	Size uintptr
}

func (e *OutOfWindowError) Error() string {
	return fmt.Sprintf("mmio: address 0x%x outside window [0x%x, 0x%x)",
		e.Addr, e.Base, e.Base+e.Size)
}

// A Window maps a physical address range from a memory device (usually
// /dev/mem) into the process and accesses registers through that mapping.
// Addresses passed to Read32 and Write32 are physical addresses.
type Window struct {
	space string
	file  *os.File
	data  []byte
	base  uintptr
	size  uintptr
	delta uintptr
}

// OpenWindow maps size bytes starting at physical address base from the file
// at path. The mapping is shared so stores reach the device.
func OpenWindow(path string, base uintptr, size uintptr) (*Window, error) {
	if size == 0 {
		return nil, fmt.Errorf("mmio: empty window at 0x%x", base)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open %s: %w", path, err)
	}

	pageMask := uintptr(unix.Getpagesize() - 1)
	pageBase := base &^ pageMask
	delta := base - pageBase

	data, err := unix.Mmap(
		int(f.Fd()),
		int64(pageBase),
		int(delta+size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmio: map 0x%x+0x%x of %s: %w",
			base, size, path, err)
	}

	space, err := filepath.Abs(path)
	if err != nil {
		space = path
	}

	w := &Window{
		space: "file:" + filepath.Clean(space),
		file:  f,
		data:  data,
		base:  base,
		size:  size,
		delta: delta,
	}

	return w, nil
}

// Base returns the first physical address covered by the window.
func (w *Window) Base() uintptr {
	return w.base
}

// AddressSpace names the device the window maps. Windows opened on the same
// device share it.
func (w *Window) AddressSpace() string {
	return w.space
}

// Size returns the number of bytes covered by the window.
func (w *Window) Size() uintptr {
	return w.size
}

func (w *Window) word(addr uintptr) *uint32 {
	if addr < w.base || addr+4 > w.base+w.size {
		panic(&OutOfWindowError{Addr: addr, Base: w.base, Size: w.size})
	}

	return (*uint32)(unsafe.Pointer(&w.data[w.delta+addr-w.base]))
}

// Read32 performs one 32-bit load at the physical address addr.
func (w *Window) Read32(addr uintptr) uint32 {
	return atomic.LoadUint32(w.word(addr))
}

// Write32 performs one 32-bit store at the physical address addr.
func (w *Window) Write32(addr uintptr, v uint32) {
	atomic.StoreUint32(w.word(addr), v)
}

// Close unmaps the window and closes the underlying file.
func (w *Window) Close() error {
	err := unix.Munmap(w.data)
	w.data = nil

	closeErr := w.file.Close()
	if err != nil {
		return fmt.Errorf("mmio: unmap: %w", err)
	}

	return closeErr
}

var _ Mapper = (*Window)(nil)
