package mmiosim

import "sync"

// A Behaviour decides what a simulated register does when it is loaded or
// stored through the capability. Preload and Peek bypass behaviours.
type Behaviour interface {
	// Load returns the value a read observes and the value left in the
	// register afterwards.
	Load(stored uint32) (observed, next uint32)

	// Store returns the value left in the register after v is written.
	Store(stored, v uint32) (next uint32)
}

// Plain is ordinary read/write memory. Unmapped addresses behave this way.
type Plain struct{}

// Load returns the stored value unchanged.
func (Plain) Load(stored uint32) (uint32, uint32) {
	return stored, stored
}

// Store replaces the stored value.
func (Plain) Store(_, v uint32) uint32 {
	return v
}

// Bits models registers whose bits have asymmetric write semantics. Bits not
// covered by any mask are plain read/write.
type Bits struct {
	// ReadOnly bits ignore writes.
	ReadOnly uint32

	// WriteOneToClear bits are cleared by writing 1; writing 0 leaves them
	// unchanged.
	WriteOneToClear uint32

	// SelfClearing bits trigger on a write of 1 and always read back as 0.
	SelfClearing uint32
}

// ReadOnlyRegister returns a behaviour that ignores all writes.
func ReadOnlyRegister() Bits {
	return Bits{ReadOnly: ^uint32(0)}
}

// WriteOneToClear returns a behaviour where the bits of mask are
// write-1-to-clear.
func WriteOneToClear(mask uint32) Bits {
	return Bits{WriteOneToClear: mask}
}

// SelfClearing returns a behaviour where the bits of mask read back as 0
// after any write.
func SelfClearing(mask uint32) Bits {
	return Bits{SelfClearing: mask}
}

// Load returns the stored value unchanged.
func (b Bits) Load(stored uint32) (uint32, uint32) {
	return stored, stored
}

// Store applies v according to the masks.
func (b Bits) Store(stored, v uint32) uint32 {
	plain := ^(b.ReadOnly | b.WriteOneToClear | b.SelfClearing)

	next := stored & b.ReadOnly
	next |= stored & b.WriteOneToClear &^ v
	next |= v & plain

	return next
}

// A FIFO models a data port. Reads pop the receive queue, writes append to
// the transmit log. The stored word is never used.
type FIFO struct {
	lock sync.Mutex
	rx   []uint32
	tx   []uint32

	// Empty is the value read when the receive queue is empty.
	Empty uint32
}

// NewFIFO creates a FIFO whose receive queue holds words.
func NewFIFO(words ...uint32) *FIFO {
	f := &FIFO{}
	f.Push(words...)

	return f
}

// Push appends words to the receive queue.
func (f *FIFO) Push(words ...uint32) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.rx = append(f.rx, words...)
}

// Len returns the number of words left in the receive queue.
func (f *FIFO) Len() int {
	f.lock.Lock()
	defer f.lock.Unlock()

	return len(f.rx)
}

// Drain returns and forgets the words written to the FIFO.
func (f *FIFO) Drain() []uint32 {
	f.lock.Lock()
	defer f.lock.Unlock()

	words := f.tx
	f.tx = nil

	return words
}

// Load pops the head of the receive queue.
func (f *FIFO) Load(stored uint32) (uint32, uint32) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if len(f.rx) == 0 {
		return f.Empty, stored
	}

	v := f.rx[0]
	f.rx = f.rx[1:]

	return v, stored
}

// Store appends v to the transmit log.
func (f *FIFO) Store(stored, v uint32) uint32 {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.tx = append(f.tx, v)

	return stored
}

// Func builds a behaviour from functions. A nil function falls back to Plain.
type Func struct {
	OnLoad  func(stored uint32) (observed, next uint32)
	OnStore func(stored, v uint32) (next uint32)
}

// Load calls OnLoad.
func (f Func) Load(stored uint32) (uint32, uint32) {
	if f.OnLoad == nil {
		return stored, stored
	}

	return f.OnLoad(stored)
}

// Store calls OnStore.
func (f Func) Store(stored, v uint32) uint32 {
	if f.OnStore == nil {
		return v
	}

	return f.OnStore(stored, v)
}
