package periph_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regio/mmio/mmiosim"
	"github.com/sarchlab/regio/periph"
)

type mappedSim struct {
	*mmiosim.Sim
	space string
}

func (m *mappedSim) AddressSpace() string {
	return m.space
}

var _ = Describe("Claim", func() {
	var sim *mmiosim.Sim

	BeforeEach(func() {
		sim = mmiosim.NewSim()
	})

	It("should hand out a token describing the peripheral", func() {
		t, err := periph.Claim(sim, "uart", 0x4000_0000)

		Expect(err).NotTo(HaveOccurred())
		Expect(t.Name()).To(Equal("uart"))
		Expect(t.Base()).To(Equal(uintptr(0x4000_0000)))
		Expect(t.Mmio()).To(BeIdenticalTo(sim))
		Expect(periph.IsClaimed(sim, 0x4000_0000)).To(BeTrue())
	})

	It("should refuse a second claim of the same base", func() {
		periph.MustClaim(sim, "uart", 0x4000_0000)

		t, err := periph.Claim(sim, "uart0", 0x4000_0000)

		Expect(t).To(BeNil())
		Expect(errors.Is(err, periph.ErrAlreadyClaimed)).To(BeTrue())

		var claimErr *periph.ClaimError
		Expect(errors.As(err, &claimErr)).To(BeTrue())
		Expect(claimErr.Holder).To(Equal("uart"))
		Expect(claimErr.Name).To(Equal("uart0"))
	})

	It("should allow other bases and other capabilities", func() {
		periph.MustClaim(sim, "uart", 0x4000_0000)

		_, err := periph.Claim(sim, "spi", 0x4000_1000)
		Expect(err).NotTo(HaveOccurred())

		_, err = periph.Claim(mmiosim.NewSim(), "uart", 0x4000_0000)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should refuse overlapping ranges", func() {
		t, err := periph.ClaimRange(sim, "flash", 0x1000, 0x100)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Size()).To(Equal(uintptr(0x100)))

		_, err = periph.Claim(sim, "flash_alias", 0x1004)
		Expect(err).To(MatchError(periph.ErrAlreadyClaimed))

		_, err = periph.ClaimRange(sim, "below", 0xf00, 0x104)
		Expect(err).To(MatchError(periph.ErrAlreadyClaimed))

		_, err = periph.ClaimRange(sim, "next", 0x1100, 0x100)
		Expect(err).NotTo(HaveOccurred())

		Expect(periph.IsClaimed(sim, 0x10fc)).To(BeTrue())
		Expect(periph.IsClaimed(sim, 0x0ffc)).To(BeFalse())
	})

	It("should share claims between mappings of one address space", func() {
		a := &mappedSim{Sim: mmiosim.NewSim(), space: "file:/dev/mem"}
		b := &mappedSim{Sim: mmiosim.NewSim(), space: "file:/dev/mem"}
		c := &mappedSim{Sim: mmiosim.NewSim(), space: "file:/dev/other"}

		periph.MustClaim(a, "uart", 0x4000_0000)

		_, err := periph.Claim(b, "uart", 0x4000_0000)
		Expect(err).To(MatchError(periph.ErrAlreadyClaimed))

		_, err = periph.Claim(c, "uart", 0x4000_0000)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should panic from MustClaim when taken", func() {
		periph.MustClaim(sim, "uart", 0x4000_0000)

		Expect(func() {
			periph.MustClaim(sim, "uart", 0x4000_0000)
		}).To(Panic())
	})

	It("should grant exactly one of concurrent claims", func() {
		var (
			wg      sync.WaitGroup
			lock    sync.Mutex
			granted int
		)

		for i := 0; i < 16; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, err := periph.Claim(sim, "uart", 0x4000_0000)
				if err == nil {
					lock.Lock()
					granted++
					lock.Unlock()
				}
			}()
		}

		wg.Wait()

		Expect(granted).To(Equal(1))
	})
})
