package accesstrace

import (
	"fmt"
	"sync"

	"github.com/sarchlab/regio/instrumentation/hooking"
	"github.com/sarchlab/regio/mmio/mmiosim"
)

// Filter selects the accesses a tracer considers.
type Filter func(a mmiosim.Access) bool

// CountTracer counts how often each register is read and written.
type CountTracer struct {
	filter   Filter
	resolver Resolver

	lock   sync.Mutex
	names  []string
	reads  map[string]uint64
	writes map[string]uint64
}

// NewCountTracer creates a CountTracer. Accesses are keyed by "periph.reg"
// when resolver knows the address and by the hex address otherwise. filter
// and resolver may be nil.
func NewCountTracer(filter Filter, resolver Resolver) *CountTracer {
	return &CountTracer{
		filter:   filter,
		resolver: resolver,
		reads:    make(map[string]uint64),
		writes:   make(map[string]uint64),
	}
}

// Func counts the access carried by ctx.
func (t *CountTracer) Func(ctx hooking.HookCtx) {
	access, ok := ctx.Item.(mmiosim.Access)
	if !ok {
		return
	}

	if t.filter != nil && !t.filter(access) {
		return
	}

	name := fmt.Sprintf("0x%x", access.Addr)
	if p, r, ok := resolve(t.resolver, access.Addr); ok {
		name = p + "." + r
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if _, seen := t.reads[name]; !seen {
		if _, seen := t.writes[name]; !seen {
			t.names = append(t.names, name)
		}
	}

	switch access.Kind {
	case mmiosim.AccessRead:
		t.reads[name]++
	case mmiosim.AccessWrite:
		t.writes[name]++
	}
}

// Names returns the registers seen so far, in order of first access.
func (t *CountTracer) Names() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, len(t.names))
	copy(names, t.names)

	return names
}

// Reads returns the number of loads of the named register.
func (t *CountTracer) Reads(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.reads[name]
}

// Writes returns the number of stores to the named register.
func (t *CountTracer) Writes(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.writes[name]
}
