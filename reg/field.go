package reg

import "fmt"

// Field locates a bit field inside a 32-bit register value.
//
// Generated code declares fields as composite literals; NewField validates a
// field built from untrusted data.
type Field struct {
	Offset uint
	Width  uint
}

// NewField returns the field of width bits starting at bit offset. It panics
// if the field does not fit in 32 bits.
func NewField(offset, width uint) Field {
	if width == 0 || width > 32 || offset+width > 32 {
		panic(fmt.Sprintf("reg: field [%d+:%d] does not fit 32 bits",
			offset, width))
	}

	return Field{Offset: offset, Width: width}
}

// Mask returns the unshifted mask of the field, (1<<Width)-1.
func (f Field) Mask() uint32 {
	return uint32(uint64(1)<<f.Width - 1)
}

// ShiftedMask returns the mask of the field in register position.
func (f Field) ShiftedMask() uint32 {
	return f.Mask() << f.Offset
}

// Get decodes the field from raw.
func (f Field) Get(raw uint32) uint32 {
	return (raw >> f.Offset) & f.Mask()
}

// Set returns raw with the field replaced by v. Bits of v beyond the field
// width are dropped.
func (f Field) Set(raw, v uint32) uint32 {
	m := f.Mask()
	return (raw &^ (m << f.Offset)) | ((v & m) << f.Offset)
}

// Bool decodes a one-bit field.
func (f Field) Bool(raw uint32) bool {
	return (raw>>f.Offset)&1 != 0
}

// SetBool returns raw with a one-bit field set to b.
func (f Field) SetBool(raw uint32, b bool) uint32 {
	v := uint32(0)
	if b {
		v = 1
	}

	return f.Set(raw, v)
}

// Trigger returns raw with a write-1-to-trigger bit set.
func (f Field) Trigger(raw uint32) uint32 {
	return f.Set(raw, 1)
}

// Clear returns raw with a write-1-to-clear bit set, so that writing the
// result clears the status flag.
func (f Field) Clear(raw uint32) uint32 {
	return f.Set(raw, 1)
}

func (f Field) String() string {
	if f.Width == 1 {
		return fmt.Sprintf("[%d]", f.Offset)
	}

	return fmt.Sprintf("[%d:%d]", f.Offset+f.Width-1, f.Offset)
}
