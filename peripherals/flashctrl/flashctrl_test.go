package flashctrl_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regio/chipdesc"
	"github.com/sarchlab/regio/mmio/mmiosim"
	"github.com/sarchlab/regio/peripherals/flashctrl"
	"github.com/sarchlab/regio/periph"
	"github.com/sarchlab/regio/reg"
)

var _ = Describe("Flash controller", func() {
	var (
		sim        *mmiosim.Sim
		fifo       *mmiosim.FIFO
		peripheral *flashctrl.Peripheral
		regs       flashctrl.RegisterBlock
	)

	BeforeEach(func() {
		chip, err := chipdesc.LoadFile("../flashctrl.yaml")
		Expect(err).NotTo(HaveOccurred())

		sim = mmiosim.NewSim()
		sim.LoadChip(chip)

		fifo = mmiosim.NewFIFO()
		sim.Map(flashctrl.Base+flashctrl.RdFifoMeta{}.Offset(), fifo)

		peripheral, err = flashctrl.New(sim)
		Expect(err).NotTo(HaveOccurred())

		regs = peripheral.Regs()
		sim.ResetLog()
	})

	It("should claim the peripheral only once per capability", func() {
		_, err := flashctrl.New(sim)

		Expect(errors.Is(err, periph.ErrAlreadyClaimed)).To(BeTrue())
	})

	It("should place registers at base plus offset", func() {
		Expect(regs.Ctrl().Addr()).To(Equal(uintptr(0x4001_0000)))
		Expect(regs.Status().Addr()).To(Equal(uintptr(0x4001_000c)))
		Expect(regs.BankCfg().At(5).Addr()).To(Equal(uintptr(0x4001_0044)))
	})

	It("should encode fields into one store", func() {
		regs.Ctrl().WriteWith(func(w flashctrl.CtrlWriteVal) flashctrl.CtrlWriteVal {
			return w.
				Op(func(s flashctrl.OpSelector) flashctrl.Op { return s.Erase() }).
				Num(0x3f).
				Start()
		})

		Expect(sim.Accesses()).To(Equal([]mmiosim.Access{{
			Seq:   sim.NumAccesses(),
			Kind:  mmiosim.AccessWrite,
			Addr:  0x4001_0000,
			Value: 0x003f_0022,
		}}))
	})

	It("should round trip field values", func() {
		regs.Ctrl().Write(flashctrl.CtrlWriteVal(0).
			Op(func(s flashctrl.OpSelector) flashctrl.Op { return s.Prog() }).
			Num(0x123))

		v := regs.Ctrl().Read()
		op, err := v.Op()

		Expect(err).NotTo(HaveOccurred())
		Expect(op).To(Equal(flashctrl.OpSelector{}.Prog()))
		Expect(op.String()).To(Equal("prog"))
		Expect(v.Num()).To(Equal(uint32(0x123)))
	})

	It("should round trip every num without touching op", func() {
		prog := func(s flashctrl.OpSelector) flashctrl.Op { return s.Prog() }
		seed := flashctrl.CtrlWriteVal(0).Op(prog)

		for n := uint32(0); n < 4096; n++ {
			w := seed.Num(n)
			Expect(uint32(w) &^ 0x0fff_0000).To(Equal(uint32(seed)))

			regs.Ctrl().Write(w)
			v := regs.Ctrl().Read()

			Expect(v.Num()).To(Equal(n))
			op, err := v.Op()
			Expect(err).NotTo(HaveOccurred())
			Expect(op).To(Equal(flashctrl.OpSelector{}.Prog()))
		}
	})

	It("should round trip every partition without touching the flags", func() {
		bank := regs.BankCfg().At(2)
		seed := flashctrl.BankCfgWriteVal(0).En(true).EraseEn(true)

		for p := uint32(0); p < 16; p++ {
			w := seed.Partition(p)
			Expect(uint32(w) &^ 0xf00).To(Equal(uint32(seed)))

			bank.Write(w)
			v := bank.Read()

			Expect(v.Partition()).To(Equal(p))
			Expect(v.En()).To(BeTrue())
			Expect(v.EraseEn()).To(BeTrue())
		}
	})

	It("should not keep trigger bits", func() {
		regs.Ctrl().WriteWith(func(w flashctrl.CtrlWriteVal) flashctrl.CtrlWriteVal {
			return w.Init()
		})

		Expect(sim.Peek(regs.Ctrl().Addr())).To(Equal(uint32(0)))
	})

	It("should decode the reset value of status", func() {
		s := regs.Status().Read()

		Expect(s.ProgEmpty()).To(BeTrue())
		Expect(s.InitDone()).To(BeFalse())

		phase, err := s.Phase()
		Expect(err).NotTo(HaveOccurred())
		Expect(phase).To(Equal(flashctrl.PhaseSelector{}.Idle()))
	})

	It("should report undeclared enum encodings", func() {
		sim.Preload(regs.Status().Addr(), 0x30)

		_, err := regs.Status().Read().Phase()

		var decodeErr *reg.DecodeError
		Expect(errors.As(err, &decodeErr)).To(BeTrue())
		Expect(decodeErr.Raw).To(Equal(uint32(3)))
		Expect(decodeErr.Enum).To(Equal("phase"))
	})

	It("should clear only the written interrupt bit", func() {
		sim.Preload(regs.IntrState().Addr(), 0x3)

		regs.IntrState().WriteWith(
			func(w flashctrl.IntrStateWriteVal) flashctrl.IntrStateWriteVal {
				return w.ClearOpDone()
			})

		s := regs.IntrState().Read()
		Expect(s.OpDone()).To(BeFalse())
		Expect(s.OpError()).To(BeTrue())
	})

	It("should clear every pending bit through Modify", func() {
		sim.Preload(regs.IntrState().Addr(), 0x3)

		regs.IntrState().Modify(
			func(r flashctrl.IntrStateReadVal) flashctrl.IntrStateWriteVal {
				return r.Modify()
			})

		Expect(sim.Peek(regs.IntrState().Addr())).To(Equal(uint32(0)))
		Expect(sim.Accesses()).To(HaveLen(2))
		Expect(sim.Accesses()[0].Kind).To(Equal(mmiosim.AccessRead))
		Expect(sim.Accesses()[1].Kind).To(Equal(mmiosim.AccessWrite))
	})

	It("should ignore writes to the read-only status register", func() {
		sim.Write32(regs.Status().Addr(), 0)

		Expect(regs.Status().Read().ProgEmpty()).To(BeTrue())
	})

	It("should modify one bank without touching the others", func() {
		regs.BankCfg().At(5).Modify(
			func(r flashctrl.BankCfgReadVal) flashctrl.BankCfgWriteVal {
				return r.Modify().EraseEn(true).Partition(0xa)
			})

		for i, b := range regs.BankCfg().All() {
			v := b.Read()
			Expect(v.En()).To(BeTrue())

			if i == 5 {
				Expect(v.EraseEn()).To(BeTrue())
				Expect(v.Partition()).To(Equal(uint32(0xa)))
			} else {
				Expect(uint32(v)).To(Equal(uint32(0x1)))
			}
		}
	})

	It("should pop the read FIFO once per read", func() {
		fifo.Push(0x11, 0x22)

		Expect(regs.RdFifo().Read().Data()).To(Equal(uint32(0x11)))
		Expect(regs.RdFifo().Read().Data()).To(Equal(uint32(0x22)))
		Expect(fifo.Len()).To(Equal(0))
	})

	It("should read the same value twice from plain registers", func() {
		regs.Addr().Write(flashctrl.AddrWriteVal(0).Start(0x800))

		Expect(regs.Addr().Read()).To(Equal(regs.Addr().Read()))
		Expect(regs.Addr().Read().Start()).To(Equal(uint32(0x800)))
	})

	It("should store program words", func() {
		regs.ProgFifo().Write(flashctrl.ProgFifoWriteVal(0).Data(0xdead_beef))

		Expect(sim.Peek(regs.ProgFifo().Addr())).To(Equal(uint32(0xdead_beef)))
	})

	It("should read through the view without writing", func() {
		v := peripheral.View()

		Expect(v.BankCfg().At(0).Read().En()).To(BeTrue())
		Expect(v.Status().Read().ProgEmpty()).To(BeTrue())
		Expect(v.Ctrl().Addr()).To(Equal(regs.Ctrl().Addr()))
		Expect(sim.Accesses()).To(HaveLen(2))
		Expect(peripheral.Token().Name()).To(Equal("flash_ctrl"))
	})
})
