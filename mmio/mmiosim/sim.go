// Package mmiosim provides a deterministic, in-memory implementation of the
// Mmio capability for tests and register-level simulation.
package mmiosim

import (
	"fmt"
	"sync"

	"github.com/sarchlab/regio/instrumentation/hooking"
	"github.com/sarchlab/regio/mmio"
)

// AccessKind tells a load from a store.
type AccessKind int

// Access kinds.
const (
	AccessRead AccessKind = iota
	AccessWrite
)

func (k AccessKind) String() string {
	switch k {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// Access is one capability-level load or store.
type Access struct {
	// Seq numbers accesses from 1 in program order.
	Seq   uint64
	Kind  AccessKind
	Addr  uintptr
	Value uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%s, %d, 0x%x, 0x%x", a.Kind, a.Seq, a.Addr, a.Value)
}

// HookPosRead marks hooks fired after a simulated load. The hook item is the
// Access.
var HookPosRead = &hooking.HookPos{Name: "MmioRead"}

// HookPosWrite marks hooks fired after a simulated store. The hook item is the
// Access.
var HookPosWrite = &hooking.HookPos{Name: "MmioWrite"}

// Sim is a simulated address space. Every address reads zero until written
// or preloaded. A Sim is safe for concurrent use.
type Sim struct {
	*hooking.HookableBase

	name string

	lock       sync.Mutex
	storage    *storage
	behaviours map[uintptr]Behaviour
	logging    bool
	log        []Access
	seq        uint64
}

// NewSim creates a Sim with default settings.
func NewSim() *Sim {
	return MakeBuilder().Build("Sim")
}

// Name returns the name of the simulated address space.
func (s *Sim) Name() string {
	return s.name
}

// Map installs the behaviour of the register at addr. A nil behaviour
// restores plain memory.
func (s *Sim) Map(addr uintptr, b Behaviour) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if b == nil {
		delete(s.behaviours, addr)
		return
	}

	s.behaviours[addr] = b
}

// Behaviour returns the behaviour installed at addr, or Plain.
func (s *Sim) Behaviour(addr uintptr) Behaviour {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.behaviourAt(addr)
}

func (s *Sim) behaviourAt(addr uintptr) Behaviour {
	b, ok := s.behaviours[addr]
	if !ok {
		return Plain{}
	}

	return b
}

// Read32 loads the register at addr through its behaviour.
func (s *Sim) Read32(addr uintptr) uint32 {
	s.lock.Lock()

	stored := s.storage.load(addr)
	observed, next := s.behaviourAt(addr).Load(stored)

	if next != stored {
		s.storage.store(addr, next)
	}

	access := s.record(AccessRead, addr, observed)

	s.lock.Unlock()

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosRead,
		Item:   access,
	})

	return observed
}

// Write32 stores v into the register at addr through its behaviour.
func (s *Sim) Write32(addr uintptr, v uint32) {
	s.lock.Lock()

	stored := s.storage.load(addr)
	next := s.behaviourAt(addr).Store(stored, v)
	s.storage.store(addr, next)

	access := s.record(AccessWrite, addr, v)

	s.lock.Unlock()

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosWrite,
		Item:   access,
	})
}

func (s *Sim) record(kind AccessKind, addr uintptr, v uint32) Access {
	s.seq++

	a := Access{Seq: s.seq, Kind: kind, Addr: addr, Value: v}
	if s.logging {
		s.log = append(s.log, a)
	}

	return a
}

// Preload sets the register at addr to v without behaviours, hooks or
// logging. It models hardware-driven state such as status bits.
func (s *Sim) Preload(addr uintptr, v uint32) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.storage.store(addr, v)
}

// Peek returns the stored word at addr without behaviours, hooks or logging.
func (s *Sim) Peek(addr uintptr) uint32 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.storage.load(addr)
}

// Accesses returns a copy of the access log in program order.
func (s *Sim) Accesses() []Access {
	s.lock.Lock()
	defer s.lock.Unlock()

	log := make([]Access, len(s.log))
	copy(log, s.log)

	return log
}

// ResetLog forgets all recorded accesses.
func (s *Sim) ResetLog() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.log = nil
}

// NumAccesses returns how many loads and stores went through the capability,
// whether or not they were logged.
func (s *Sim) NumAccesses() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.seq
}

var (
	_ mmio.Mmio        = (*Sim)(nil)
	_ hooking.Hookable = (*Sim)(nil)
)
