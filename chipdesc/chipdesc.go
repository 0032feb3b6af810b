// Package chipdesc loads chip descriptions: the register maps the generator
// turns into typed accessors and the simulator uses to model peripherals.
package chipdesc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RegisterWidth is the width in bits of every register of the family.
const RegisterWidth = 32

// Access is the access class of a register or field.
type Access string

// Access classes.
const (
	ReadOnly  Access = "ro"
	WriteOnly Access = "wo"
	ReadWrite Access = "rw"
)

// CanRead tells whether the access class allows loads.
func (a Access) CanRead() bool {
	return a == ReadOnly || a == ReadWrite
}

// CanWrite tells whether the access class allows stores.
func (a Access) CanWrite() bool {
	return a == WriteOnly || a == ReadWrite
}

// FieldKind is the interpretation of a field.
type FieldKind string

// Field kinds.
const (
	KindUint FieldKind = "uint"
	KindBool FieldKind = "bool"
	KindEnum FieldKind = "enum"

	// KindW1C fields read as status flags and are cleared by writing 1.
	KindW1C FieldKind = "w1c"

	// KindW1T fields trigger an action when written with 1 and read as 0.
	KindW1T FieldKind = "w1t"
)

// Chip is the root of a chip description.
type Chip struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Peripherals []*Peripheral `yaml:"peripherals"`
}

// Peripheral is one peripheral instance and its register map.
type Peripheral struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Base        uint64      `yaml:"base"`
	Size        uint64      `yaml:"size,omitempty"`
	Registers   []*Register `yaml:"registers"`
}

// Register is a 32-bit register, or a bank of them when Dim is non-zero.
type Register struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description,omitempty"`
	Offset       uint64   `yaml:"offset"`
	Access       Access   `yaml:"access,omitempty"`
	Reset        uint32   `yaml:"reset,omitempty"`
	Dim          int      `yaml:"dim,omitempty"`
	DimIncrement uint64   `yaml:"dim_increment,omitempty"`
	Fields       []*Field `yaml:"fields,omitempty"`
}

// Field is a bit field of a register.
type Field struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Offset      uint      `yaml:"offset"`
	Width       uint      `yaml:"width"`
	Kind        FieldKind `yaml:"kind,omitempty"`
	Access      Access    `yaml:"access,omitempty"`
	Enum        *Enum     `yaml:"enum,omitempty"`
}

// Enum lists the legal symbolic values of an enum field.
type Enum struct {
	Name   string       `yaml:"name"`
	Values []*EnumValue `yaml:"values"`
}

// EnumValue is one variant of an enum.
type EnumValue struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Value       uint32 `yaml:"value"`
}

// Load decodes a chip description, fills in defaults and validates it.
func Load(r io.Reader) (*Chip, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	chip := new(Chip)

	err := dec.Decode(chip)
	if err != nil {
		return nil, fmt.Errorf("chipdesc: decode: %w", err)
	}

	chip.normalize()

	err = chip.Validate()
	if err != nil {
		return nil, err
	}

	return chip, nil
}

// LoadFile loads the chip description stored at path.
func LoadFile(path string) (*Chip, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chipdesc: %w", err)
	}

	chip, err := Load(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return chip, nil
}

// Peripheral returns the peripheral called name, or nil.
func (c *Chip) Peripheral(name string) *Peripheral {
	for _, p := range c.Peripherals {
		if p.Name == name {
			return p
		}
	}

	return nil
}

func (c *Chip) normalize() {
	for _, p := range c.Peripherals {
		for _, r := range p.Registers {
			r.normalize()
		}
	}
}

func (r *Register) normalize() {
	if r.Access == "" {
		r.Access = ReadWrite
	}

	if r.Dim > 0 && r.DimIncrement == 0 {
		r.DimIncrement = RegisterWidth / 8
	}

	for _, f := range r.Fields {
		f.normalize(r.Access)
	}
}

func (f *Field) normalize(regAccess Access) {
	if f.Kind == "" {
		switch {
		case f.Enum != nil:
			f.Kind = KindEnum
		case f.Width == 1:
			f.Kind = KindBool
		default:
			f.Kind = KindUint
		}
	}

	if f.Access == "" {
		switch f.Kind {
		case KindW1T:
			f.Access = WriteOnly
		case KindW1C:
			f.Access = ReadWrite
		default:
			f.Access = regAccess
		}
	}
}

// Count returns the number of registers the description stands for: Dim for
// arrays, 1 otherwise.
func (r *Register) Count() int {
	if r.Dim > 0 {
		return r.Dim
	}

	return 1
}

// IsArray tells whether the register is a bank.
func (r *Register) IsArray() bool {
	return r.Dim > 0
}

// ElementOffset returns the byte offset of element i of the register.
func (r *Register) ElementOffset(i int) uint64 {
	return r.Offset + uint64(i)*r.DimIncrement
}

// Span returns the number of bytes the register occupies.
func (r *Register) Span() uint64 {
	if r.Dim > 0 {
		return uint64(r.Dim-1)*r.DimIncrement + RegisterWidth/8
	}

	return RegisterWidth / 8
}

// Mask returns the bits of the field in register position.
func (f *Field) Mask() uint32 {
	return uint32(uint64(1)<<f.Width-1) << f.Offset
}

// FieldMask returns the union of the masks of the fields of kind k.
func (r *Register) FieldMask(k FieldKind) uint32 {
	var m uint32

	for _, f := range r.Fields {
		if f.Kind == k {
			m |= f.Mask()
		}
	}

	return m
}
