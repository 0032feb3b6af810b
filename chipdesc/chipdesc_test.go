package chipdesc_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regio/chipdesc"
)

func load(doc string) (*chipdesc.Chip, error) {
	return chipdesc.Load(strings.NewReader(doc))
}

var _ = Describe("Load", func() {
	It("should load the flash controller description", func() {
		chip, err := chipdesc.LoadFile("../peripherals/flashctrl.yaml")
		Expect(err).NotTo(HaveOccurred())

		p := chip.Peripheral("flash_ctrl")
		Expect(p).NotTo(BeNil())
		Expect(p.Base).To(Equal(uint64(0x4001_0000)))
		Expect(p.Registers).To(HaveLen(8))

		bank := p.Registers[7]
		Expect(bank.Name).To(Equal("bank_cfg"))
		Expect(bank.Count()).To(Equal(8))
		Expect(bank.ElementOffset(5)).To(Equal(uint64(0x44)))
		Expect(bank.Span()).To(Equal(uint64(0x20)))
	})

	It("should fill in defaults", func() {
		chip, err := load(`
name: soc
peripherals:
  - name: gpio
    base: 0x100
    registers:
      - name: out
        offset: 0
        dim: 2
        fields:
          - {name: pin, offset: 0, width: 1}
          - {name: mode, offset: 4, width: 2, enum: {name: mode, values: [{name: a, value: 0}]}}
          - {name: level, offset: 8, width: 4}
          - {name: go, offset: 12, width: 1, kind: w1t}
          - {name: flag, offset: 13, width: 1, kind: w1c}
`)
		Expect(err).NotTo(HaveOccurred())

		r := chip.Peripherals[0].Registers[0]
		Expect(r.Access).To(Equal(chipdesc.ReadWrite))
		Expect(r.DimIncrement).To(Equal(uint64(4)))
		Expect(r.Fields[0].Kind).To(Equal(chipdesc.KindBool))
		Expect(r.Fields[1].Kind).To(Equal(chipdesc.KindEnum))
		Expect(r.Fields[2].Kind).To(Equal(chipdesc.KindUint))
		Expect(r.Fields[3].Access).To(Equal(chipdesc.WriteOnly))
		Expect(r.Fields[4].Access).To(Equal(chipdesc.ReadWrite))
		Expect(r.FieldMask(chipdesc.KindW1T)).To(Equal(uint32(0x1000)))
	})

	It("should reject unknown keys", func() {
		_, err := load(`
name: soc
colour: red
`)
		Expect(err).To(HaveOccurred())
	})

	It("should report every problem", func() {
		_, err := load(`
name: soc
peripherals:
  - name: Timer
    base: 0x102
    registers:
      - name: a
        offset: 0x0
        fields:
          - {name: x, offset: 0, width: 4}
          - {name: y, offset: 2, width: 4}
      - name: b
        offset: 0x0
      - name: c
        offset: 0x8
        fields:
          - {name: z, offset: 30, width: 4}
`)
		Expect(errors.Is(err, chipdesc.ErrInvalid)).To(BeTrue())

		msg := err.Error()
		Expect(msg).To(ContainSubstring("lower snake case"))
		Expect(msg).To(ContainSubstring("not word aligned"))
		Expect(msg).To(ContainSubstring("overlaps another field"))
		Expect(msg).To(ContainSubstring("collides with a"))
		Expect(msg).To(ContainSubstring("do not fit"))
	})

	DescribeTable("should reject invalid fields",
		func(field, want string) {
			_, err := load(`
name: soc
peripherals:
  - name: p
    base: 0x0
    registers:
      - name: r
        offset: 0x0
        access: ro
        fields:
          - ` + field + `
`)
			Expect(err).To(MatchError(ContainSubstring(want)))
		},
		Entry("offset wrapping around",
			"{name: f, offset: 18446744073709551615, width: 1}",
			"do not fit a 32-bit register"),
		Entry("offset at the register width",
			"{name: f, offset: 32, width: 1}",
			"do not fit a 32-bit register"),
		Entry("wide bool", "{name: f, offset: 0, width: 2, kind: bool}",
			"must be 1 bit wide"),
		Entry("unknown kind", "{name: f, offset: 0, width: 2, kind: float}",
			"unknown kind"),
		Entry("write access on a read-only register",
			"{name: f, offset: 0, width: 2, access: rw}",
			"wider than the register access"),
		Entry("enum value too wide",
			"{name: f, offset: 0, width: 1, kind: enum, enum: {name: e, values: [{name: a, value: 2}]}}",
			"does not fit 1 bits"),
		Entry("duplicated enum encodings",
			"{name: f, offset: 0, width: 2, enum: {name: e, values: [{name: a, value: 1}, {name: b, value: 1}]}}",
			"declared twice"),
	)

	It("should reject registers past the peripheral size", func() {
		_, err := load(`
name: soc
peripherals:
  - name: p
    base: 0x0
    size: 0x10
    registers:
      - {name: r, offset: 0x8, dim: 4}
`)
		Expect(err).To(MatchError(ContainSubstring("past the peripheral size")))
	})
})

var _ = Describe("Decode", func() {
	var chip *chipdesc.Chip

	BeforeEach(func() {
		var err error
		chip, err = chipdesc.LoadFile("../peripherals/flashctrl.yaml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should split a raw value into fields", func() {
		status := chip.Peripheral("flash_ctrl").Registers[3]

		values := status.Decode(0x221)

		Expect(values).To(Equal([]chipdesc.FieldValue{
			{Name: "init_done", Raw: 1, Value: "true"},
			{Name: "phase", Raw: 2, Value: "prog"},
			{Name: "rd_full", Raw: 0, Value: "false"},
			{Name: "prog_empty", Raw: 1, Value: "true"},
		}))
	})

	It("should show undeclared enum values as invalid", func() {
		status := chip.Peripheral("flash_ctrl").Registers[3]

		Expect(status.Decode(0x30)[1].Value).To(Equal("invalid(3)"))
	})

	It("should resolve addresses to registers", func() {
		p, r, ok := chip.Resolve(0x4001_0044)
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal("flash_ctrl"))
		Expect(r).To(Equal("bank_cfg[5]"))

		_, r, ok = chip.Resolve(0x4001_000c)
		Expect(ok).To(BeTrue())
		Expect(r).To(Equal("status"))

		_, _, ok = chip.Resolve(0x4001_0020)
		Expect(ok).To(BeFalse())
	})
})
