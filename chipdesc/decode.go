package chipdesc

import "fmt"

// FieldValue is one field decoded from a raw register value.
type FieldValue struct {
	Name  string `json:"name"`
	Raw   uint32 `json:"raw"`
	Value string `json:"value"`
}

// Decode splits raw into the register's fields. Enum fields whose raw value
// is not a declared variant are shown as invalid rather than guessed.
func (r *Register) Decode(raw uint32) []FieldValue {
	values := make([]FieldValue, 0, len(r.Fields))

	for _, f := range r.Fields {
		v := (raw >> f.Offset) & uint32(uint64(1)<<f.Width-1)
		values = append(values, FieldValue{
			Name:  f.Name,
			Raw:   v,
			Value: f.format(v),
		})
	}

	return values
}

func (f *Field) format(v uint32) string {
	switch f.Kind {
	case KindBool, KindW1C, KindW1T:
		return fmt.Sprint(v != 0)
	case KindEnum:
		if f.Enum != nil {
			for _, ev := range f.Enum.Values {
				if ev.Value == v {
					return ev.Name
				}
			}
		}

		return fmt.Sprintf("invalid(%d)", v)
	default:
		return fmt.Sprintf("0x%x", v)
	}
}

// Resolve finds the peripheral and register mapped at the absolute address
// addr. Array elements resolve to "name[i]".
func (c *Chip) Resolve(addr uintptr) (peripheral, register string, ok bool) {
	a := uint64(addr)

	for _, p := range c.Peripherals {
		if a < p.Base {
			continue
		}

		offset := a - p.Base
		for _, r := range p.Registers {
			for i := 0; i < r.Count(); i++ {
				if r.ElementOffset(i) != offset {
					continue
				}

				if r.IsArray() {
					return p.Name, fmt.Sprintf("%s[%d]", r.Name, i), true
				}

				return p.Name, r.Name, true
			}
		}
	}

	return "", "", false
}
