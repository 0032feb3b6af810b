package reg

import (
	"errors"
	"fmt"
)

// ErrInvalidEnum is matched by every DecodeError.
var ErrInvalidEnum = errors.New("invalid enum value")

// DecodeError reports a raw field value that is not a declared variant.
type DecodeError struct {
	Enum string
	Raw  uint32
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("reg: 0x%x is not a valid %s", e.Raw, e.Enum)
}

// Unwrap returns ErrInvalidEnum.
func (e *DecodeError) Unwrap() error {
	return ErrInvalidEnum
}

// Enum is a symbolic field value. Generated enums are structs with an
// unexported raw value, so only the generated selector can produce them.
type Enum interface {
	comparable

	// Raw returns the encoding of the variant.
	Raw() uint32

	// String returns the variant name.
	String() string
}

// EnumSet is the closed set of declared variants of an enum field.
type EnumSet[E Enum] struct {
	name       string
	variants   []E
	contiguous bool
}

// NewEnumSet declares the variants of the enum called name. It panics if two
// variants share an encoding.
func NewEnumSet[E Enum](name string, variants ...E) *EnumSet[E] {
	s := &EnumSet[E]{
		name:       name,
		variants:   append([]E(nil), variants...),
		contiguous: true,
	}

	seen := make(map[uint32]bool, len(variants))
	for i, v := range variants {
		if seen[v.Raw()] {
			panic(fmt.Sprintf("reg: enum %s declares 0x%x twice", name, v.Raw()))
		}

		seen[v.Raw()] = true

		if v.Raw() != uint32(i) {
			s.contiguous = false
		}
	}

	return s
}

// Name returns the enum name.
func (s *EnumSet[E]) Name() string {
	return s.name
}

// Len returns the number of variants.
func (s *EnumSet[E]) Len() int {
	return len(s.variants)
}

// Variants returns the declared variants in declaration order.
func (s *EnumSet[E]) Variants() []E {
	return append([]E(nil), s.variants...)
}

// Decode returns the variant encoded as raw. Raw values that are not declared
// variants yield a *DecodeError, never a substitute variant.
func (s *EnumSet[E]) Decode(raw uint32) (E, error) {
	if s.contiguous {
		if raw < uint32(len(s.variants)) {
			return s.variants[raw], nil
		}
	} else {
		for _, v := range s.variants {
			if v.Raw() == raw {
				return v, nil
			}
		}
	}

	var zero E

	return zero, &DecodeError{Enum: s.name, Raw: raw}
}

// Encode returns the encoding of e. It panics with a *DecodeError if e is not
// a declared variant, which happens for the zero value of an enum that does
// not declare 0.
func (s *EnumSet[E]) Encode(e E) uint32 {
	raw := e.Raw()
	if !s.Contains(raw) {
		panic(&DecodeError{Enum: s.name, Raw: raw})
	}

	return raw
}

// Contains tells whether raw encodes a declared variant.
func (s *EnumSet[E]) Contains(raw uint32) bool {
	_, err := s.Decode(raw)
	return err == nil
}
