package mmiosim

import "github.com/sarchlab/regio/instrumentation/hooking"

// Builder can build Sims.
type Builder struct {
	unitSize   uint64
	logging    bool
	hooks      []hooking.Hook
	behaviours map[uintptr]Behaviour
	preload    map[uintptr]uint32
}

// MakeBuilder returns a new Builder.
func MakeBuilder() Builder {
	return Builder{
		unitSize: 4096,
		logging:  true,
	}
}

// WithUnitSize sets the allocation unit of the backing storage. It must be a
// non-zero multiple of 4.
func (b Builder) WithUnitSize(unitSize uint64) Builder {
	if unitSize == 0 || unitSize%4 != 0 {
		panic("unit size must be a non-zero multiple of 4")
	}

	b.unitSize = unitSize

	return b
}

// WithoutAccessLog disables the access log. Hooks still fire.
func (b Builder) WithoutAccessLog() Builder {
	b.logging = false
	return b
}

// WithHook registers a hook on the built Sim.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], h)
	return b
}

// WithBehaviour installs a behaviour at addr on the built Sim.
func (b Builder) WithBehaviour(addr uintptr, behaviour Behaviour) Builder {
	m := make(map[uintptr]Behaviour, len(b.behaviours)+1)
	for k, v := range b.behaviours {
		m[k] = v
	}

	m[addr] = behaviour
	b.behaviours = m

	return b
}

// WithPreload sets the initial value of the register at addr.
func (b Builder) WithPreload(addr uintptr, v uint32) Builder {
	m := make(map[uintptr]uint32, len(b.preload)+1)
	for k, v := range b.preload {
		m[k] = v
	}

	m[addr] = v
	b.preload = m

	return b
}

// Build creates a new Sim.
func (b Builder) Build(name string) *Sim {
	s := &Sim{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		storage:      newStorage(b.unitSize),
		behaviours:   make(map[uintptr]Behaviour),
		logging:      b.logging,
	}

	for addr, behaviour := range b.behaviours {
		s.behaviours[addr] = behaviour
	}

	for addr, v := range b.preload {
		s.storage.store(addr, v)
	}

	for _, h := range b.hooks {
		s.AcceptHook(h)
	}

	return s
}
