package chipdesc

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("invalid chip description")

// ValidationError locates one problem in a chip description.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Unwrap returns ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

var identifier = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type validator struct {
	errs []error
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{
		Path: path,
		Msg:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) checkName(path, name string) {
	if !identifier.MatchString(name) {
		v.fail(path, "name %q must be lower snake case", name)
	}
}

// Validate checks the description against the rules the generator and the
// simulator rely on. All problems are reported, joined with errors.Join.
func (c *Chip) Validate() error {
	v := &validator{}

	if c.Name == "" {
		v.fail("chip", "missing name")
	}

	names := make(map[string]bool)
	for i, p := range c.Peripherals {
		path := fmt.Sprintf("peripherals[%d]", i)
		if p.Name != "" {
			path = p.Name
		}

		v.checkName(path, p.Name)

		if names[p.Name] {
			v.fail(path, "duplicated peripheral")
		}

		names[p.Name] = true

		v.checkPeripheral(path, p)
	}

	return errors.Join(v.errs...)
}

func (v *validator) checkPeripheral(path string, p *Peripheral) {
	if p.Base%4 != 0 {
		v.fail(path, "base 0x%x is not word aligned", p.Base)
	}

	names := make(map[string]bool)
	enums := make(map[string]bool)

	for i, r := range p.Registers {
		regPath := path + "." + r.Name
		v.checkName(regPath, r.Name)

		if names[r.Name] {
			v.fail(regPath, "duplicated register")
		}

		names[r.Name] = true

		v.checkRegister(regPath, r)
		v.checkOverlaps(regPath, r, p.Registers[:i])

		if p.Size > 0 && r.Offset+r.Span() > p.Size {
			v.fail(regPath, "ends past the peripheral size 0x%x", p.Size)
		}

		for _, f := range r.Fields {
			if f.Enum == nil {
				continue
			}

			if enums[f.Enum.Name] {
				v.fail(regPath+"."+f.Name,
					"enum %q is declared twice in %s", f.Enum.Name, p.Name)
			}

			enums[f.Enum.Name] = true
		}
	}
}

func (v *validator) checkRegister(path string, r *Register) {
	switch r.Access {
	case ReadOnly, WriteOnly, ReadWrite:
	default:
		v.fail(path, "unknown access %q", r.Access)
	}

	if r.Offset%4 != 0 {
		v.fail(path, "offset 0x%x is not word aligned", r.Offset)
	}

	if r.Dim < 0 {
		v.fail(path, "negative dim %d", r.Dim)
	}

	if r.Dim > 0 && (r.DimIncrement < 4 || r.DimIncrement%4 != 0) {
		v.fail(path, "dim_increment 0x%x must be a multiple of 4",
			r.DimIncrement)
	}

	names := make(map[string]bool)

	var used uint32

	for _, f := range r.Fields {
		fieldPath := path + "." + f.Name
		v.checkName(fieldPath, f.Name)

		if names[f.Name] {
			v.fail(fieldPath, "duplicated field")
		}

		names[f.Name] = true

		if !v.checkField(fieldPath, f, r.Access) {
			continue
		}

		if used&f.Mask() != 0 {
			v.fail(fieldPath, "overlaps another field")
		}

		used |= f.Mask()
	}
}

func (v *validator) checkField(path string, f *Field, regAccess Access) bool {
	if f.Width == 0 || f.Offset >= RegisterWidth ||
		f.Width > RegisterWidth-f.Offset {
		v.fail(path, "bits [%d+:%d] do not fit a %d-bit register",
			f.Offset, f.Width, RegisterWidth)

		return false
	}

	switch f.Kind {
	case KindUint:
	case KindBool, KindW1C, KindW1T:
		if f.Width != 1 {
			v.fail(path, "%s fields must be 1 bit wide", f.Kind)
		}
	case KindEnum:
		v.checkEnum(path, f)
	default:
		v.fail(path, "unknown kind %q", f.Kind)
	}

	if f.Enum != nil && f.Kind != KindEnum {
		v.fail(path, "enum values on a %s field", f.Kind)
	}

	switch f.Access {
	case ReadOnly, WriteOnly, ReadWrite:
	default:
		v.fail(path, "unknown access %q", f.Access)
	}

	if (f.Access.CanRead() && !regAccess.CanRead()) ||
		(f.Access.CanWrite() && !regAccess.CanWrite()) {
		v.fail(path, "access %s is wider than the register access %s",
			f.Access, regAccess)
	}

	if f.Kind == KindW1C && f.Access != ReadWrite {
		v.fail(path, "w1c fields must be rw")
	}

	return true
}

func (v *validator) checkEnum(path string, f *Field) {
	if f.Enum == nil {
		v.fail(path, "enum field without values")
		return
	}

	v.checkName(path, f.Enum.Name)

	if len(f.Enum.Values) == 0 {
		v.fail(path, "enum %s has no values", f.Enum.Name)
	}

	limit := uint64(1) << f.Width
	names := make(map[string]bool)
	values := make(map[uint32]bool)

	for _, ev := range f.Enum.Values {
		v.checkName(path+"."+ev.Name, ev.Name)

		if names[ev.Name] {
			v.fail(path, "enum value %s declared twice", ev.Name)
		}

		if values[ev.Value] {
			v.fail(path, "enum encoding %d declared twice", ev.Value)
		}

		if uint64(ev.Value) >= limit {
			v.fail(path, "enum value %s=%d does not fit %d bits",
				ev.Name, ev.Value, f.Width)
		}

		names[ev.Name] = true
		values[ev.Value] = true
	}
}

func (v *validator) checkOverlaps(path string, r *Register, before []*Register) {
	for _, o := range before {
		for i := 0; i < r.Count(); i++ {
			a := r.ElementOffset(i)

			for j := 0; j < o.Count(); j++ {
				if o.ElementOffset(j) == a {
					v.fail(path, "offset 0x%x collides with %s", a, o.Name)
					return
				}
			}
		}
	}
}
