// Package accesstrace provides hooks that trace register accesses made
// through a simulated address space.
package accesstrace

import (
	"log"
	"sync"

	"github.com/rs/xid"

	"github.com/sarchlab/regio/datarecording"
	"github.com/sarchlab/regio/instrumentation/hooking"
	"github.com/sarchlab/regio/mmio/mmiosim"
)

// TableName is the table the database tracer writes into.
const TableName = "mmio_accesses"

// Resolver names the register mapped at an address. *chipdesc.Chip is a
// Resolver.
type Resolver interface {
	Resolve(addr uintptr) (peripheral, register string, ok bool)
}

// Entry is one register access as stored by the DB tracer.
type Entry struct {
	ID         string `json:"id"`
	Seq        uint64 `json:"seq"`
	Kind       string `json:"kind"`
	Address    uint64 `json:"address"`
	Value      uint32 `json:"value"`
	Peripheral string `json:"peripheral"`
	Register   string `json:"register"`
}

// A logTracer is a hook that prints every access with a logger.
type logTracer struct {
	logger   *log.Logger
	resolver Resolver
}

// NewLogTracer creates a hook that prints one line per access:
// "kind, seq, 0xaddr, 0xvalue", followed by the register name when resolver
// knows the address. resolver may be nil.
func NewLogTracer(logger *log.Logger, resolver Resolver) hooking.Hook {
	return &logTracer{logger: logger, resolver: resolver}
}

// Func prints the access carried by ctx.
func (t *logTracer) Func(ctx hooking.HookCtx) {
	access, ok := ctx.Item.(mmiosim.Access)
	if !ok {
		return
	}

	p, r, ok := resolve(t.resolver, access.Addr)
	if !ok {
		t.logger.Println(access.String())
		return
	}

	t.logger.Printf("%s, %s.%s\n", access, p, r)
}

// A dbTracer is a hook that records accesses into a database using the data
// recorder.
type dbTracer struct {
	lock         sync.Mutex
	dataRecorder datarecording.DataRecorder
	resolver     Resolver
}

// NewDBTracer creates a hook that inserts one row per access into the
// mmio_accesses table, which it creates. resolver may be nil.
func NewDBTracer(
	dataRecorder datarecording.DataRecorder,
	resolver Resolver,
) hooking.Hook {
	t := &dbTracer{
		dataRecorder: dataRecorder,
		resolver:     resolver,
	}

	t.dataRecorder.CreateTable(TableName, Entry{})

	return t
}

// Func records the access carried by ctx.
func (t *dbTracer) Func(ctx hooking.HookCtx) {
	access, ok := ctx.Item.(mmiosim.Access)
	if !ok {
		return
	}

	p, r, _ := resolve(t.resolver, access.Addr)

	t.lock.Lock()
	defer t.lock.Unlock()

	t.dataRecorder.InsertData(TableName, Entry{
		ID:         xid.New().String(),
		Seq:        access.Seq,
		Kind:       access.Kind.String(),
		Address:    uint64(access.Addr),
		Value:      access.Value,
		Peripheral: p,
		Register:   r,
	})
}

func resolve(resolver Resolver, addr uintptr) (string, string, bool) {
	if resolver == nil {
		return "", "", false
	}

	return resolver.Resolve(addr)
}
