package mmiosim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Storage", func() {
	It("should read zero from units never written", func() {
		s := newStorage(4096)

		Expect(s.load(0x1000)).To(Equal(uint32(0)))
		Expect(s.numUnits()).To(Equal(0))
	})

	It("should read and write in single unit", func() {
		s := newStorage(4096)
		s.store(0x10, 0x04030201)

		Expect(s.load(0x10)).To(Equal(uint32(0x04030201)))
		Expect(s.data[0][0x10:0x14]).To(Equal([]byte{1, 2, 3, 4}))
		Expect(s.numUnits()).To(Equal(1))
	})

	It("should allocate units lazily", func() {
		s := newStorage(16)
		s.store(0x4000_0000, 1)
		s.store(0x4000_0010, 2)

		Expect(s.load(0x4000_0000)).To(Equal(uint32(1)))
		Expect(s.load(0x4000_0010)).To(Equal(uint32(2)))
		Expect(s.numUnits()).To(Equal(2))
	})

	It("should panic on unaligned addresses", func() {
		s := newStorage(4096)

		Expect(func() { s.load(0x2) }).To(Panic())
		Expect(func() { s.store(0x5, 1) }).To(Panic())
	})
})
