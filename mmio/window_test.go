//go:build linux

package mmio_test

import (
	"encoding/binary"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/regio/mmio"
)

var _ = Describe("Window", func() {
	var (
		path   string
		window *mmio.Window
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "mem")
		Expect(os.WriteFile(path, make([]byte, 0x2000), 0o600)).To(Succeed())

		var err error
		window, err = mmio.OpenWindow(path, 0x1004, 0x10)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if window != nil {
			Expect(window.Close()).To(Succeed())
		}
	})

	It("should report its range", func() {
		Expect(window.Base()).To(Equal(uintptr(0x1004)))
		Expect(window.Size()).To(Equal(uintptr(0x10)))
	})

	It("should reach the backing file at the physical offset", func() {
		window.Write32(0x1008, 0xcafef00d)
		Expect(window.Read32(0x1008)).To(Equal(uint32(0xcafef00d)))

		Expect(window.Close()).To(Succeed())
		window = nil

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(binary.NativeEndian.Uint32(content[0x1008:])).
			To(Equal(uint32(0xcafef00d)))
	})

	It("should panic on addresses outside the window", func() {
		Expect(func() { window.Read32(0x1000) }).
			To(PanicWith(BeAssignableToTypeOf(&mmio.OutOfWindowError{})))
		Expect(func() { window.Write32(0x1014, 1) }).
			To(PanicWith(BeAssignableToTypeOf(&mmio.OutOfWindowError{})))
	})

	It("should share the address space of its device", func() {
		other, err := mmio.OpenWindow(path, 0x1800, 0x10)
		Expect(err).NotTo(HaveOccurred())
		defer other.Close()

		Expect(other.AddressSpace()).To(Equal(window.AddressSpace()))
		Expect(window.AddressSpace()).To(HavePrefix("file:/"))
	})

	It("should fail to open an empty window", func() {
		_, err := mmio.OpenWindow(path, 0x1000, 0)
		Expect(err).To(HaveOccurred())
	})

	It("should fail to open a missing device", func() {
		_, err := mmio.OpenWindow(filepath.Join(path, "missing"), 0x1000, 4)
		Expect(err).To(HaveOccurred())
	})
})
