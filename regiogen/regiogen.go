// Package regiogen turns a chip description into Go packages of typed
// register accessors built on package reg.
package regiogen

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/sarchlab/regio/chipdesc"
	"github.com/sarchlab/regio/reg"
)

//go:embed templates/peripheral.go.tmpl
var peripheralTemplate string

var tmpl = template.Must(template.New("peripheral").Parse(peripheralTemplate))

// Options control the generated package.
type Options struct {
	// Package is the package name. It defaults to PackageName of the
	// peripheral.
	Package string

	// Source names the chip description in the generated header.
	Source string
}

// Generate renders the accessor package of p. The result is gofmt-ed.
func Generate(p *chipdesc.Peripheral, opts Options) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = PackageName(p.Name)
	}

	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("regiogen: %q is not a valid package name",
			opts.Package)
	}

	data, err := buildPeripheral(p, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("regiogen: %s: %w", p.Name, err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("regiogen: %s: generated code does not parse: %w",
			p.Name, err)
	}

	return src, nil
}

// GenerateAll writes one package per peripheral of chip under dir, at
// dir/<package>/<package>.go. It returns the paths of the written files.
func GenerateAll(chip *chipdesc.Chip, dir, source string) ([]string, error) {
	var written []string

	for _, p := range chip.Peripherals {
		pkg := PackageName(p.Name)

		src, err := Generate(p, Options{Package: pkg, Source: source})
		if err != nil {
			return written, err
		}

		pkgDir := filepath.Join(dir, pkg)

		err = os.MkdirAll(pkgDir, 0755)
		if err != nil {
			return written, fmt.Errorf("regiogen: %w", err)
		}

		path := filepath.Join(pkgDir, pkg+".go")

		err = os.WriteFile(path, src, 0644)
		if err != nil {
			return written, fmt.Errorf("regiogen: %w", err)
		}

		written = append(written, path)
	}

	return written, nil
}

// GoName converts a snake case name into an exported Go identifier.
// "intr_state" becomes "IntrState".
func GoName(name string) string {
	var sb strings.Builder

	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}

		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}

	return sb.String()
}

func lowerName(name string) string {
	n := GoName(name)
	if n == "" {
		return n
	}

	return strings.ToLower(n[:1]) + n[1:]
}

// PackageName derives a package name from a peripheral name by dropping the
// underscores. "flash_ctrl" becomes "flashctrl".
func PackageName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "")
}

type peripheralData struct {
	Source      string
	Package     string
	Name        string
	Description string
	Base        string
	Size        string
	Registers   []*registerData
	Enums       []*enumData
}

type registerData struct {
	Name        string
	GoName      string
	Description string
	Offset      string
	Reset       string
	CanRead     bool
	CanWrite    bool
	IsArray     bool
	Dim         int
	Stride      string
	Meta        string
	ReadVal     string
	WriteVal    string
	Fields      []*fieldData
}

// Handle is the type of the read-write handle of the register.
func (r *registerData) Handle() string {
	switch {
	case r.CanRead && r.CanWrite:
		return fmt.Sprintf("reg.RW[%s, %s, %s]", r.Meta, r.ReadVal, r.WriteVal)
	case r.CanRead:
		return fmt.Sprintf("reg.RO[%s, %s]", r.Meta, r.ReadVal)
	default:
		return fmt.Sprintf("reg.WO[%s, %s]", r.Meta, r.WriteVal)
	}
}

// New is the generic constructor of Handle.
func (r *registerData) New() string {
	return strings.Replace(r.Handle(), "reg.", "reg.New", 1)
}

// At is the generic element constructor of Handle.
func (r *registerData) At() string {
	return strings.Replace(r.Handle(), "reg.", "reg.At", 1)
}

// ViewHandle is the type of the read-only handle of the register.
func (r *registerData) ViewHandle() string {
	return fmt.Sprintf("reg.RO[%s, %s]", r.Meta, r.ReadVal)
}

func (r *registerData) ViewNew() string {
	return "reg.New" + strings.TrimPrefix(r.ViewHandle(), "reg.")
}

func (r *registerData) ViewAt() string {
	return "reg.At" + strings.TrimPrefix(r.ViewHandle(), "reg.")
}

type fieldData struct {
	Name     string
	GoName   string
	Var      string
	Offset   uint
	Width    uint
	Kind     chipdesc.FieldKind
	CanRead  bool
	CanWrite bool
	Enum     string
	EnumSet  string
}

// IsBit tells whether the field is decoded as a bool.
func (f *fieldData) IsBit() bool {
	return f.Kind == chipdesc.KindBool || f.Kind == chipdesc.KindW1C
}

// Bits renders the bit range of the field.
func (f *fieldData) Bits() string {
	return reg.Field{Offset: f.Offset, Width: f.Width}.String()
}

type enumData struct {
	Name   string
	GoName string
	SetVar string
	Values []*enumValueData
}

type enumValueData struct {
	Name   string
	GoName string
	Value  uint32
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}

func buildPeripheral(
	p *chipdesc.Peripheral,
	opts Options,
) (*peripheralData, error) {
	d := &peripheralData{
		Source:      opts.Source,
		Package:     opts.Package,
		Name:        p.Name,
		Description: oneLine(p.Description),
		Base:        hex(p.Base),
		Size:        hex(decodedSize(p)),
	}

	if d.Source == "" {
		d.Source = "a chip description"
	}

	if len(p.Registers) == 0 {
		return nil, fmt.Errorf("regiogen: %s has no registers", p.Name)
	}

	names := newNameSet("Base", "Size", "New", "Peripheral",
		"RegisterBlock", "RegisterBlockView")
	vars := newNameSet()

	for _, r := range p.Registers {
		rd := buildRegister(r)

		for _, n := range []string{rd.Meta, rd.ReadVal, rd.WriteVal} {
			err := names.add(n, r.Name)
			if err != nil {
				return nil, err
			}
		}

		err := checkMethods(rd)
		if err != nil {
			return nil, err
		}

		for _, f := range rd.Fields {
			err = vars.add(f.Var, r.Name+"."+f.Name)
			if err != nil {
				return nil, err
			}
		}

		d.Registers = append(d.Registers, rd)

		for _, f := range r.Fields {
			if f.Enum == nil {
				continue
			}

			ed := buildEnum(f.Enum)

			for _, n := range []string{ed.GoName, ed.GoName + "Selector",
				"Decode" + ed.GoName} {
				err := names.add(n, f.Enum.Name)
				if err != nil {
					return nil, err
				}
			}

			err = vars.add(ed.SetVar, f.Enum.Name)
			if err != nil {
				return nil, err
			}

			d.Enums = append(d.Enums, ed)
		}
	}

	return d, nil
}

// decodedSize is the declared size of p, or the end of its last register.
func decodedSize(p *chipdesc.Peripheral) uint64 {
	if p.Size > 0 {
		return p.Size
	}

	var end uint64

	for _, r := range p.Registers {
		if e := r.Offset + r.Span(); e > end {
			end = e
		}
	}

	return end
}

func buildRegister(r *chipdesc.Register) *registerData {
	goName := GoName(r.Name)

	rd := &registerData{
		Name:        r.Name,
		GoName:      goName,
		Description: oneLine(r.Description),
		Offset:      hex(r.Offset),
		Reset:       hex(uint64(r.Reset)),
		CanRead:     r.Access.CanRead(),
		CanWrite:    r.Access.CanWrite(),
		IsArray:     r.IsArray(),
		Dim:         r.Dim,
		Stride:      hex(r.DimIncrement),
		Meta:        goName + "Meta",
		ReadVal:     goName + "ReadVal",
		WriteVal:    goName + "WriteVal",
	}

	for _, f := range r.Fields {
		fd := &fieldData{
			Name:     f.Name,
			GoName:   GoName(f.Name),
			Var:      lowerName(r.Name) + GoName(f.Name),
			Offset:   f.Offset,
			Width:    f.Width,
			Kind:     f.Kind,
			CanRead:  f.Access.CanRead(),
			CanWrite: f.Access.CanWrite(),
		}

		if f.Enum != nil {
			fd.Enum = GoName(f.Enum.Name)
			fd.EnumSet = lowerName(f.Enum.Name) + "Set"
		}

		rd.Fields = append(rd.Fields, fd)
	}

	return rd
}

func buildEnum(e *chipdesc.Enum) *enumData {
	ed := &enumData{
		Name:   e.Name,
		GoName: GoName(e.Name),
		SetVar: lowerName(e.Name) + "Set",
	}

	for _, v := range e.Values {
		ed.Values = append(ed.Values, &enumValueData{
			Name:   v.Name,
			GoName: GoName(v.Name),
			Value:  v.Value,
		})
	}

	return ed
}

// checkMethods rejects field names that would produce two methods with the
// same name on a value type.
func checkMethods(rd *registerData) error {
	readMethods := newNameSet("Modify")
	writeMethods := newNameSet()

	for _, f := range rd.Fields {
		if f.CanRead {
			err := readMethods.add(f.GoName, rd.Name+"."+f.Name)
			if err != nil {
				return err
			}
		}

		if !f.CanWrite {
			continue
		}

		method := f.GoName
		if f.Kind == chipdesc.KindW1C {
			method = "Clear" + f.GoName
		}

		err := writeMethods.add(method, rd.Name+"."+f.Name)
		if err != nil {
			return err
		}
	}

	return nil
}

type nameSet map[string]string

func newNameSet(reserved ...string) nameSet {
	s := make(nameSet)
	for _, n := range reserved {
		s[n] = "a generated declaration"
	}

	return s
}

func (s nameSet) add(name, owner string) error {
	if prev, taken := s[name]; taken {
		return fmt.Errorf("regiogen: %s: identifier %s is already used by %s",
			owner, name, prev)
	}

	s[name] = owner

	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
