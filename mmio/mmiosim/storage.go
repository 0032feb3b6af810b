package mmiosim

import (
	"encoding/binary"
	"fmt"
)

// storage keeps the words of a simulated address space.
//
// The storage manages the address space in units. Units that have never been
// written are not allocated and read as zero.
type storage struct {
	unitSize uint64
	data     map[uint64][]byte
}

func newStorage(unitSize uint64) *storage {
	s := new(storage)

	s.unitSize = unitSize
	s.data = make(map[uint64][]byte)

	return s
}

func (s *storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr

	return
}

func (s *storage) createOrGetUnit(baseAddr uint64) []byte {
	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit
}

func mustBeAligned(addr uintptr) {
	if addr%4 != 0 {
		panic(fmt.Sprintf("mmiosim: unaligned register address 0x%x", addr))
	}
}

func (s *storage) load(addr uintptr) uint32 {
	mustBeAligned(addr)

	baseAddr, inUnitAddr := s.parseAddress(uint64(addr))

	unit, ok := s.data[baseAddr]
	if !ok {
		return 0
	}

	return binary.LittleEndian.Uint32(unit[inUnitAddr : inUnitAddr+4])
}

func (s *storage) store(addr uintptr, v uint32) {
	mustBeAligned(addr)

	baseAddr, inUnitAddr := s.parseAddress(uint64(addr))
	unit := s.createOrGetUnit(baseAddr)

	binary.LittleEndian.PutUint32(unit[inUnitAddr:inUnitAddr+4], v)
}

func (s *storage) numUnits() int {
	return len(s.data)
}
