// Package monitoring serves a register inspector over HTTP. It lists the
// peripherals of an address space and lets a browser read and write their
// registers while a program or a simulation runs.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/regio/chipdesc"
	"github.com/sarchlab/regio/mmio"
	"github.com/sarchlab/regio/monitoring/web"
)

// A Peeker reads a register without side effects. mmiosim.Sim is a Peeker.
type Peeker interface {
	Peek(addr uintptr) uint32
}

// A Target is a peripheral the monitor can inspect.
type Target struct {
	Name string
	Base uintptr
	Size uintptr
	Mmio mmio.Mmio

	// Desc describes the registers of the target. It may be nil.
	Desc *chipdesc.Peripheral
}

// Monitor can turn a program into a server and allows external inspection
// of its registers.
type Monitor struct {
	portNumber int

	lock    sync.Mutex
	targets []*Target

	// accessLock serialises the register accesses made by the monitor.
	accessLock sync.Mutex
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterTarget registers a peripheral to be inspected. It panics if a
// target with the same name is already registered.
func (m *Monitor) RegisterTarget(t *Target) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, existing := range m.targets {
		if existing.Name == t.Name {
			panic(fmt.Sprintf("target %s is already registered", t.Name))
		}
	}

	m.targets = append(m.targets, t)
}

// RegisterChip registers every peripheral of chip, accessed through io.
func (m *Monitor) RegisterChip(chip *chipdesc.Chip, io mmio.Mmio) {
	for _, p := range chip.Peripherals {
		size := p.Size
		if size == 0 {
			size = peripheralSpan(p)
		}

		m.RegisterTarget(&Target{
			Name: p.Name,
			Base: uintptr(p.Base),
			Size: uintptr(size),
			Mmio: io,
			Desc: p,
		})
	}
}

func peripheralSpan(p *chipdesc.Peripheral) uint64 {
	var end uint64

	for _, r := range p.Registers {
		if e := r.Offset + r.Span(); e > end {
			end = e
		}
	}

	return end
}

// Router returns the handler serving the API and the web page.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/peripherals", m.listPeripherals)
	r.HandleFunc("/api/peripheral/{name}", m.peripheralDetails)
	r.HandleFunc("/api/peripheral/{name}/registers", m.listRegisters)
	r.HandleFunc("/api/read/{name}/{offset}", m.read).Methods(http.MethodGet)
	r.HandleFunc("/api/write/{name}/{offset}/{value}", m.write).
		Methods(http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring registers with %s\n", url)

	server := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := server.Serve(listener)
		dieOnErr(err)
	}()

	return url
}

// OpenBrowser opens url in the default browser.
func OpenBrowser(url string) error {
	return browser.OpenURL(url)
}

func (m *Monitor) findTargetOr404(
	w http.ResponseWriter,
	name string,
) *Target {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, t := range m.targets {
		if t.Name == name {
			return t
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Peripheral not found"))
	dieOnErr(err)

	return nil
}

type targetRsp struct {
	Name string  `json:"name"`
	Base uintptr `json:"base"`
	Size uintptr `json:"size"`
}

func (m *Monitor) listPeripherals(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()

	rsp := make([]targetRsp, 0, len(m.targets))
	for _, t := range m.targets {
		rsp = append(rsp, targetRsp{Name: t.Name, Base: t.Base, Size: t.Size})
	}

	m.lock.Unlock()

	sort.Slice(rsp, func(i, j int) bool { return rsp[i].Base < rsp[j].Base })

	writeJSON(w, rsp)
}

func (m *Monitor) peripheralDetails(w http.ResponseWriter, r *http.Request) {
	t := m.findTargetOr404(w, mux.Vars(r)["name"])
	if t == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(t)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type registerRsp struct {
	Name     string                `json:"name"`
	Offset   uint64                `json:"offset"`
	Addr     uintptr               `json:"addr"`
	Readable bool                  `json:"readable"`
	Value    uint32                `json:"value"`
	Fields   []chipdesc.FieldValue `json:"fields,omitempty"`
}

// listRegisters returns the described registers with their current values.
// Values are only shown for targets that can be peeked, so that listing
// never pops a FIFO or clears a read-sensitive flag.
func (m *Monitor) listRegisters(w http.ResponseWriter, r *http.Request) {
	t := m.findTargetOr404(w, mux.Vars(r)["name"])
	if t == nil {
		return
	}

	rsp := []registerRsp{}
	if t.Desc == nil {
		writeJSON(w, rsp)
		return
	}

	peeker, canPeek := t.Mmio.(Peeker)

	for _, reg := range t.Desc.Registers {
		for i := 0; i < reg.Count(); i++ {
			name := reg.Name
			if reg.IsArray() {
				name = fmt.Sprintf("%s[%d]", reg.Name, i)
			}

			offset := reg.ElementOffset(i)
			entry := registerRsp{
				Name:   name,
				Offset: offset,
				Addr:   t.Base + uintptr(offset),
			}

			if canPeek && reg.Access.CanRead() {
				entry.Readable = true
				entry.Value = peeker.Peek(entry.Addr)
				entry.Fields = reg.Decode(entry.Value)
			}

			rsp = append(rsp, entry)
		}
	}

	writeJSON(w, rsp)
}

type accessRsp struct {
	Addr   uintptr               `json:"addr"`
	Value  uint32                `json:"value"`
	Fields []chipdesc.FieldValue `json:"fields,omitempty"`
}

func (m *Monitor) parseOffset(
	w http.ResponseWriter,
	t *Target,
	s string,
) (uintptr, bool) {
	offset, err := strconv.ParseUint(s, 0, 64)
	if err != nil || offset%4 != 0 ||
		offset > uint64(t.Size) || uint64(t.Size)-offset < 4 {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: invalid offset %s", s)

		return 0, false
	}

	return uintptr(offset), true
}

func (m *Monitor) read(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	t := m.findTargetOr404(w, vars["name"])
	if t == nil {
		return
	}

	offset, ok := m.parseOffset(w, t, vars["offset"])
	if !ok {
		return
	}

	addr := t.Base + offset

	m.accessLock.Lock()
	value := t.Mmio.Read32(addr)
	m.accessLock.Unlock()

	rsp := accessRsp{Addr: addr, Value: value}
	if reg := registerAt(t.Desc, uint64(offset)); reg != nil {
		rsp.Fields = reg.Decode(value)
	}

	writeJSON(w, rsp)
}

func (m *Monitor) write(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	t := m.findTargetOr404(w, vars["name"])
	if t == nil {
		return
	}

	offset, ok := m.parseOffset(w, t, vars["offset"])
	if !ok {
		return
	}

	value, err := strconv.ParseUint(vars["value"], 0, 32)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: invalid value %s", vars["value"])

		return
	}

	addr := t.Base + offset

	m.accessLock.Lock()
	t.Mmio.Write32(addr, uint32(value))
	m.accessLock.Unlock()

	writeJSON(w, accessRsp{Addr: addr, Value: uint32(value)})
}

func registerAt(p *chipdesc.Peripheral, offset uint64) *chipdesc.Register {
	if p == nil {
		return nil
	}

	for _, r := range p.Registers {
		for i := 0; i < r.Count(); i++ {
			if r.ElementOffset(i) == offset {
				return r
			}
		}
	}

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
