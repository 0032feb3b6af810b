package mmio_test

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/regio/mmio"
)

// Kept in a package variable so that the words live on the heap and do not
// move while their addresses are held as uintptr.
var backing = make([]uint32, 4)

var _ = Describe("Real", func() {
	var base uintptr

	BeforeEach(func() {
		for i := range backing {
			backing[i] = 0
		}
		base = uintptr(unsafe.Pointer(&backing[0]))
	})

	It("should store and load whole words", func() {
		io := mmio.Real{}

		io.Write32(base+4, 0xdeadbeef)

		Expect(backing[1]).To(Equal(uint32(0xdeadbeef)))
		Expect(io.Read32(base + 4)).To(Equal(uint32(0xdeadbeef)))
		Expect(io.Read32(base)).To(Equal(uint32(0)))
	})

	It("should be comparable", func() {
		var a, b mmio.Mmio = mmio.Real{}, mmio.Real{}
		Expect(a == b).To(BeTrue())
	})
})
