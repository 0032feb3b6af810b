package mmiosim

import "github.com/sarchlab/regio/chipdesc"

// LoadPeripheral preloads the reset values of the registers of p and maps
// the behaviours their fields call for: read-only bits ignore writes, w1c
// bits are cleared by writing 1 and w1t bits read back as 0.
func (s *Sim) LoadPeripheral(p *chipdesc.Peripheral) {
	for _, r := range p.Registers {
		b := BehaviourOf(r)

		for i := 0; i < r.Count(); i++ {
			addr := uintptr(p.Base + r.ElementOffset(i))

			s.Preload(addr, r.Reset)

			if b != (Bits{}) {
				s.Map(addr, b)
			}
		}
	}
}

// LoadChip loads every peripheral of chip.
func (s *Sim) LoadChip(chip *chipdesc.Chip) {
	for _, p := range chip.Peripherals {
		s.LoadPeripheral(p)
	}
}

// BehaviourOf derives the bit behaviour of a described register.
func BehaviourOf(r *chipdesc.Register) Bits {
	if r.Access == chipdesc.ReadOnly {
		return ReadOnlyRegister()
	}

	var b Bits

	for _, f := range r.Fields {
		switch {
		case f.Kind == chipdesc.KindW1C:
			b.WriteOneToClear |= f.Mask()
		case f.Kind == chipdesc.KindW1T:
			b.SelfClearing |= f.Mask()
		case f.Access == chipdesc.ReadOnly:
			b.ReadOnly |= f.Mask()
		}
	}

	return b
}
