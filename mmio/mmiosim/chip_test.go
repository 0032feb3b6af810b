package mmiosim_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/regio/chipdesc"
	"github.com/sarchlab/regio/mmio/mmiosim"
)

const timerChip = `
name: soc
peripherals:
  - name: timer
    base: 0x1000
    registers:
      - name: ctrl
        offset: 0x0
        fields:
          - {name: go, offset: 0, width: 1, kind: w1t}
          - {name: busy, offset: 1, width: 1, access: ro}
          - {name: mode, offset: 4, width: 2}
      - name: intr
        offset: 0x4
        fields:
          - {name: expired, offset: 0, width: 1, kind: w1c}
      - name: count
        offset: 0x8
        access: ro
        reset: 0x10
      - name: cmp
        offset: 0x10
        reset: 0xff
        dim: 2
`

var _ = Describe("Chip loading", func() {
	var (
		chip *chipdesc.Chip
		sim  *mmiosim.Sim
	)

	BeforeEach(func() {
		var err error
		chip, err = chipdesc.Load(strings.NewReader(timerChip))
		Expect(err).NotTo(HaveOccurred())

		sim = mmiosim.NewSim()
		sim.LoadChip(chip)
	})

	It("should preload reset values of every element", func() {
		Expect(sim.Peek(0x1008)).To(Equal(uint32(0x10)))
		Expect(sim.Peek(0x1010)).To(Equal(uint32(0xff)))
		Expect(sim.Peek(0x1014)).To(Equal(uint32(0xff)))
	})

	It("should derive behaviours from field kinds", func() {
		Expect(mmiosim.BehaviourOf(chip.Peripherals[0].Registers[0])).
			To(Equal(mmiosim.Bits{ReadOnly: 0x2, SelfClearing: 0x1}))
		Expect(mmiosim.BehaviourOf(chip.Peripherals[0].Registers[1])).
			To(Equal(mmiosim.Bits{WriteOneToClear: 0x1}))
	})

	It("should keep read-only registers", func() {
		sim.Write32(0x1008, 0)

		Expect(sim.Read32(0x1008)).To(Equal(uint32(0x10)))
	})

	It("should drop trigger bits and keep read-only bits", func() {
		sim.Preload(0x1000, 0x2)
		sim.Write32(0x1000, 0x11)

		Expect(sim.Read32(0x1000)).To(Equal(uint32(0x12)))
	})

	It("should leave plain registers unmapped", func() {
		Expect(sim.Behaviour(0x1010)).To(Equal(mmiosim.Plain{}))
	})
})
