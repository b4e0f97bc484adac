// Package typescript renders declaration entities as TypeScript declaration
// file content. Each input file becomes one `declare namespace` block.
package typescript

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/protodecl/protodecl/declgen/ir"
)

// Config controls emission style.
type Config struct {
	// EnumStyle selects the enum rendering: "const_enum" (default)
	// or "enum".
	EnumStyle string

	// Indent is the indentation unit. Default: two spaces.
	Indent string

	// Frontmatter is verbatim content prepended to each emitted file.
	Frontmatter string
}

// Alias is an emitted type alias, from a typedef statement.
type Alias struct {
	Name string
	Type string
}

// Declarations is everything one input file contributes, already grouped
// and ordered for emission: aliases, then enums, then interfaces, then
// service interfaces.
type Declarations struct {
	Aliases    []Alias
	Enums      []*ir.EnumEntity
	Interfaces []*ir.InterfaceEntity
	Services   []*ir.ServiceEntity
}

// Empty reports whether there is nothing to emit.
func (d Declarations) Empty() bool {
	return len(d.Aliases) == 0 && len(d.Enums) == 0 &&
		len(d.Interfaces) == 0 && len(d.Services) == 0
}

// Emitter renders declaration entities into a buffer.
type Emitter struct {
	cfg Config
	buf bytes.Buffer
}

// NewEmitter returns an emitter with defaults applied to cfg.
func NewEmitter(cfg Config) *Emitter {
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	if cfg.EnumStyle == "" {
		cfg.EnumStyle = "const_enum"
	}
	return &Emitter{cfg: cfg}
}

// EmitFile renders one namespace block holding decls and returns the
// complete file content.
func (e *Emitter) EmitFile(namespace string, decls Declarations) []byte {
	e.buf.Reset()

	if e.cfg.Frontmatter != "" {
		e.buf.WriteString(e.cfg.Frontmatter)
		e.buf.WriteString("\n\n")
	}

	e.buf.WriteString("declare namespace ")
	e.buf.WriteString(namespace)
	e.buf.WriteString(" {\n")
	e.emitBlock(decls, 1)
	e.buf.WriteString("}\n")

	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	return out
}

// emitBlock renders the members of a namespace body at the given depth.
func (e *Emitter) emitBlock(decls Declarations, depth int) {
	first := true
	gap := func() {
		if !first {
			e.buf.WriteString("\n")
		}
		first = false
	}

	for _, a := range decls.Aliases {
		gap()
		e.writeIndent(depth)
		fmt.Fprintf(&e.buf, "type %s = %s;\n", escapeReservedWord(a.Name), a.Type)
	}
	for _, enum := range decls.Enums {
		gap()
		e.emitEnum(enum, depth)
	}
	for _, iface := range decls.Interfaces {
		gap()
		e.emitInterface(iface, depth)
	}
	for _, svc := range decls.Services {
		gap()
		e.emitService(svc, depth)
	}
}

func (e *Emitter) emitEnum(enum *ir.EnumEntity, depth int) {
	e.emitComment(enum.Comment, depth)
	e.writeIndent(depth)
	if e.cfg.EnumStyle == "const_enum" {
		e.buf.WriteString("const ")
	}
	e.buf.WriteString("enum ")
	e.buf.WriteString(escapeReservedWord(enum.Name))
	e.buf.WriteString(" {\n")

	for _, name := range enum.MemberNames() {
		m := enum.Member(name)
		e.emitComment(m.Comment, depth+1)
		e.writeIndent(depth + 1)
		e.buf.WriteString(escapeReservedWord(name))
		e.buf.WriteString(" = ")
		e.buf.WriteString(strconv.Itoa(m.Value))
		e.buf.WriteString(",\n")
	}

	e.writeIndent(depth)
	e.buf.WriteString("}\n")
}

// emitInterface renders an interface. Nested declarations precede the
// interface itself inside a namespace of the same name, so qualified
// references like pkg.Outer.Inner stay valid through declaration merging.
func (e *Emitter) emitInterface(iface *ir.InterfaceEntity, depth int) {
	if len(iface.NestedInterfaces) > 0 || len(iface.NestedEnums) > 0 {
		e.writeIndent(depth)
		e.buf.WriteString("namespace ")
		e.buf.WriteString(escapeReservedWord(iface.Name))
		e.buf.WriteString(" {\n")
		e.emitBlock(Declarations{
			Enums:      iface.NestedEnums,
			Interfaces: iface.NestedInterfaces,
		}, depth+1)
		e.writeIndent(depth)
		e.buf.WriteString("}\n\n")
	}

	e.emitComment(iface.Comment, depth)
	e.writeIndent(depth)
	e.buf.WriteString("interface ")
	e.buf.WriteString(escapeReservedWord(iface.Name))
	e.buf.WriteString(" {\n")

	for _, name := range iface.PropertyNames() {
		p := iface.Property(name)
		e.emitComment(p.Comment, depth+1)
		e.writeIndent(depth + 1)
		if needsQuoting(name) {
			e.buf.WriteString(strconv.Quote(name))
		} else {
			e.buf.WriteString(name)
		}
		if p.Optional {
			e.buf.WriteString("?")
		}
		e.buf.WriteString(": ")
		e.buf.WriteString(p.Type)
		e.buf.WriteString(";\n")
	}

	e.writeIndent(depth)
	e.buf.WriteString("}\n")
}

// emitService renders a service as an interface of methods returning the
// asynchronous result contract.
func (e *Emitter) emitService(svc *ir.ServiceEntity, depth int) {
	e.emitComment(svc.Comment, depth)
	e.writeIndent(depth)
	e.buf.WriteString("interface ")
	e.buf.WriteString(escapeReservedWord(svc.Name))
	e.buf.WriteString(" {\n")

	for _, name := range svc.MethodNames() {
		fn := svc.Method(name)
		e.emitComment(fn.Comment, depth+1)
		e.writeIndent(depth + 1)
		e.buf.WriteString(escapeReservedWord(name))
		e.buf.WriteString("(")
		for i, typ := range fn.Params() {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.buf.WriteString("request: ")
			e.buf.WriteString(typ)
		}
		e.buf.WriteString("): Promise<")
		if fn.ReturnType == "" {
			e.buf.WriteString("void")
		} else {
			e.buf.WriteString(fn.ReturnType)
		}
		e.buf.WriteString(">;\n")
	}

	e.writeIndent(depth)
	e.buf.WriteString("}\n")
}

func (e *Emitter) emitComment(text string, depth int) {
	if text == "" {
		return
	}
	e.writeIndent(depth)
	e.buf.WriteString("/** ")
	e.buf.WriteString(text)
	e.buf.WriteString(" */\n")
}

func (e *Emitter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.cfg.Indent)
	}
}
