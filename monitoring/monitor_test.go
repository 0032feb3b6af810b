package monitoring_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regio/chipdesc"
	"github.com/sarchlab/regio/mmio/mmiosim"
	"github.com/sarchlab/regio/monitoring"
)

type registerEntry struct {
	Name     string `json:"name"`
	Offset   uint64 `json:"offset"`
	Readable bool   `json:"readable"`
	Value    uint32 `json:"value"`
	Fields   []chipdesc.FieldValue
}

var _ = Describe("Monitor", func() {
	var (
		sim    *mmiosim.Sim
		fifo   *mmiosim.FIFO
		m      *monitoring.Monitor
		router http.Handler
	)

	get := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

		return rec
	}

	BeforeEach(func() {
		chip, err := chipdesc.LoadFile("../peripherals/flashctrl.yaml")
		Expect(err).NotTo(HaveOccurred())

		sim = mmiosim.NewSim()
		sim.LoadChip(chip)

		fifo = mmiosim.NewFIFO(0x11)
		sim.Map(0x4001_0018, fifo)

		m = monitoring.NewMonitor()
		m.RegisterChip(chip, sim)
		router = m.Router()
	})

	It("should list peripherals", func() {
		rec := get(http.MethodGet, "/api/peripherals")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(
			`[{"name":"flash_ctrl","base":1073807360,"size":256}]`))
	})

	It("should refuse duplicated targets", func() {
		Expect(func() {
			m.RegisterTarget(&monitoring.Target{Name: "flash_ctrl"})
		}).To(Panic())
	})

	It("should read one register", func() {
		rec := get(http.MethodGet, "/api/read/flash_ctrl/0xc")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var rsp struct {
			Addr   uint64                `json:"addr"`
			Value  uint32                `json:"value"`
			Fields []chipdesc.FieldValue `json:"fields"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Addr).To(Equal(uint64(0x4001_000c)))
		Expect(rsp.Value).To(Equal(uint32(0x200)))
		Expect(rsp.Fields).To(ContainElement(chipdesc.FieldValue{
			Name: "prog_empty", Raw: 1, Value: "true",
		}))
		Expect(sim.NumAccesses()).To(Equal(uint64(1)))
	})

	It("should write one register", func() {
		rec := get(http.MethodPost, "/api/write/flash_ctrl/0x10/0x800")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(sim.Peek(0x4001_0010)).To(Equal(uint32(0x800)))
		Expect(sim.NumAccesses()).To(Equal(uint64(1)))
	})

	It("should only write with POST", func() {
		rec := get(http.MethodGet, "/api/write/flash_ctrl/0x10/0x800")

		Expect(rec.Code).NotTo(Equal(http.StatusOK))
		Expect(sim.NumAccesses()).To(Equal(uint64(0)))
	})

	It("should reject bad offsets and values", func() {
		Expect(get(http.MethodGet, "/api/read/flash_ctrl/0x2").Code).
			To(Equal(http.StatusBadRequest))
		Expect(get(http.MethodGet, "/api/read/flash_ctrl/0x100").Code).
			To(Equal(http.StatusBadRequest))
		Expect(get(http.MethodGet, "/api/read/flash_ctrl/abc").Code).
			To(Equal(http.StatusBadRequest))
		Expect(get(http.MethodGet, "/api/read/flash_ctrl/0xfffffffffffffffc").Code).
			To(Equal(http.StatusBadRequest))
		Expect(get(http.MethodPost, "/api/write/flash_ctrl/0xfffffffffffffffc/0x1").Code).
			To(Equal(http.StatusBadRequest))
		Expect(get(http.MethodPost, "/api/write/flash_ctrl/0x10/0x1ffffffff").Code).
			To(Equal(http.StatusBadRequest))
		Expect(sim.NumAccesses()).To(Equal(uint64(0)))
		Expect(sim.Peek(0x4000_fffc)).To(Equal(uint32(0)))
	})

	It("should answer 404 for unknown peripherals", func() {
		Expect(get(http.MethodGet, "/api/read/uart/0x0").Code).
			To(Equal(http.StatusNotFound))
		Expect(get(http.MethodGet, "/api/peripheral/uart").Code).
			To(Equal(http.StatusNotFound))
	})

	It("should list registers without side effects", func() {
		rec := get(http.MethodGet, "/api/peripheral/flash_ctrl/registers")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var regs []registerEntry
		Expect(json.Unmarshal(rec.Body.Bytes(), &regs)).To(Succeed())
		Expect(regs).To(HaveLen(15))

		Expect(regs[3].Name).To(Equal("status"))
		Expect(regs[3].Value).To(Equal(uint32(0x200)))
		Expect(regs[5].Name).To(Equal("prog_fifo"))
		Expect(regs[5].Readable).To(BeFalse())
		Expect(regs[12].Name).To(Equal("bank_cfg[5]"))
		Expect(regs[12].Offset).To(Equal(uint64(0x44)))

		Expect(fifo.Len()).To(Equal(1))
		Expect(sim.NumAccesses()).To(Equal(uint64(0)))
	})

	It("should serialize a peripheral", func() {
		rec := get(http.MethodGet, "/api/peripheral/flash_ctrl")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should serve the web page", func() {
		rec := get(http.MethodGet, "/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})
})

var _ = Describe("Port number", func() {
	It("should fall back to a random port below 1000", func() {
		m := monitoring.NewMonitor().WithPortNumber(80)

		Expect(m).NotTo(BeNil())
	})
})
