package typescript

import (
	"strings"
	"testing"

	"github.com/protodecl/protodecl/declgen/ir"
)

func TestEmitFile_NamespaceBlock(t *testing.T) {
	iface := ir.NewInterface("Point")
	iface.AddProperty("x", &ir.PropertyEntity{Index: 1, Type: "number"})
	iface.AddProperty("y", &ir.PropertyEntity{Index: 2, Type: "number"})

	e := NewEmitter(Config{})
	out := string(e.EmitFile("geo", Declarations{Interfaces: []*ir.InterfaceEntity{iface}}))

	if !strings.HasPrefix(out, "declare namespace geo {\n") {
		t.Errorf("missing namespace header:\n%s", out)
	}
	if !strings.Contains(out, "  interface Point {\n    x: number;\n    y: number;\n  }\n") {
		t.Errorf("interface body wrong:\n%s", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("missing closing brace:\n%s", out)
	}
}

func TestEmitFile_OrderAliasesEnumsInterfacesServices(t *testing.T) {
	enum := ir.NewEnum("Status")
	enum.AddMember("OK", ir.EnumMember{Value: 0})

	iface := ir.NewInterface("Item")

	svc := ir.NewService("ItemService")
	svc.AddMethod("Get", ir.NewFunction("pkg.Item"))

	e := NewEmitter(Config{})
	out := string(e.EmitFile("pkg", Declarations{
		Aliases:    []Alias{{Name: "Id", Type: "string"}},
		Enums:      []*ir.EnumEntity{enum},
		Interfaces: []*ir.InterfaceEntity{iface},
		Services:   []*ir.ServiceEntity{svc},
	}))

	alias := strings.Index(out, "type Id = string;")
	enumPos := strings.Index(out, "enum Status")
	ifacePos := strings.Index(out, "interface Item")
	svcPos := strings.Index(out, "interface ItemService")
	if alias < 0 || enumPos < 0 || ifacePos < 0 || svcPos < 0 {
		t.Fatalf("missing declarations:\n%s", out)
	}
	if !(alias < enumPos && enumPos < ifacePos && ifacePos < svcPos) {
		t.Errorf("declarations out of order (alias=%d enum=%d iface=%d svc=%d):\n%s",
			alias, enumPos, ifacePos, svcPos, out)
	}
}

func TestEmitFile_EnumStyles(t *testing.T) {
	enum := ir.NewEnum("Status")
	enum.AddMember("OK", ir.EnumMember{Value: 0})
	enum.AddMember("GONE", ir.EnumMember{Value: 4, Comment: "tombstoned"})

	e := NewEmitter(Config{})
	out := string(e.EmitFile("pkg", Declarations{Enums: []*ir.EnumEntity{enum}}))
	if !strings.Contains(out, "const enum Status {\n") {
		t.Errorf("default style must be const enum:\n%s", out)
	}
	if !strings.Contains(out, "OK = 0,\n") || !strings.Contains(out, "GONE = 4,\n") {
		t.Errorf("member values wrong:\n%s", out)
	}
	if !strings.Contains(out, "/** tombstoned */") {
		t.Errorf("member comment not emitted:\n%s", out)
	}

	e = NewEmitter(Config{EnumStyle: "enum"})
	out = string(e.EmitFile("pkg", Declarations{Enums: []*ir.EnumEntity{enum}}))
	if strings.Contains(out, "const enum") {
		t.Errorf("enum style must not emit const enum:\n%s", out)
	}
}

func TestEmitFile_OptionalProperty(t *testing.T) {
	iface := ir.NewInterface("Event")
	iface.AddProperty("text", &ir.PropertyEntity{Index: 1, Type: "string", Optional: true})

	e := NewEmitter(Config{})
	out := string(e.EmitFile("pkg", Declarations{Interfaces: []*ir.InterfaceEntity{iface}}))

	if !strings.Contains(out, "text?: string;") {
		t.Errorf("optional marker missing:\n%s", out)
	}
}

func TestEmitFile_NestedPrecedeParent(t *testing.T) {
	inner := ir.NewInterface("Revision")
	inner.AddProperty("n", &ir.PropertyEntity{Index: 1, Type: "number"})

	tag := ir.NewEnum("Tag")
	tag.AddMember("NONE", ir.EnumMember{Value: 0})

	outer := ir.NewInterface("Document")
	outer.NestedInterfaces = []*ir.InterfaceEntity{inner}
	outer.NestedEnums = []*ir.EnumEntity{tag}
	outer.AddProperty("latest", &ir.PropertyEntity{Index: 1, Type: "pkg.Document.Revision"})

	e := NewEmitter(Config{})
	out := string(e.EmitFile("pkg", Declarations{Interfaces: []*ir.InterfaceEntity{outer}}))

	nsPos := strings.Index(out, "namespace Document {")
	ifacePos := strings.Index(out, "interface Document {")
	if nsPos < 0 || ifacePos < 0 {
		t.Fatalf("nested namespace or parent interface missing:\n%s", out)
	}
	if nsPos > ifacePos {
		t.Errorf("nested declarations must precede the parent interface:\n%s", out)
	}
	if !strings.Contains(out, "interface Revision {") {
		t.Errorf("nested interface missing:\n%s", out)
	}
	if !strings.Contains(out, "enum Tag {") {
		t.Errorf("nested enum missing:\n%s", out)
	}
	if !strings.Contains(out, "latest: pkg.Document.Revision;") {
		t.Errorf("qualified reference wrong:\n%s", out)
	}
}

func TestEmitFile_ServicePromise(t *testing.T) {
	fn := ir.NewFunction("pkg.SearchResponse")
	fn.SetParam(1, "pkg.SearchRequest")
	svc := ir.NewService("SearchService")
	svc.AddMethod("Search", fn)
	svc.AddMethod("Ping", ir.NewFunction(""))

	e := NewEmitter(Config{})
	out := string(e.EmitFile("pkg", Declarations{Services: []*ir.ServiceEntity{svc}}))

	if !strings.Contains(out, "Search(request: pkg.SearchRequest): Promise<pkg.SearchResponse>;") {
		t.Errorf("method signature wrong:\n%s", out)
	}
	if !strings.Contains(out, "Ping(): Promise<void>;") {
		t.Errorf("void method signature wrong:\n%s", out)
	}
}

func TestEmitFile_ReservedAndQuotedNames(t *testing.T) {
	iface := ir.NewInterface("delete")
	iface.AddProperty("new", &ir.PropertyEntity{Index: 1, Type: "string"})
	iface.AddProperty("weird-name", &ir.PropertyEntity{Index: 2, Type: "string"})

	e := NewEmitter(Config{})
	out := string(e.EmitFile("pkg", Declarations{Interfaces: []*ir.InterfaceEntity{iface}}))

	if !strings.Contains(out, "interface delete_ {") {
		t.Errorf("reserved type name not escaped:\n%s", out)
	}
	if !strings.Contains(out, `"new": string;`) {
		t.Errorf("reserved property name not quoted:\n%s", out)
	}
	if !strings.Contains(out, `"weird-name": string;`) {
		t.Errorf("invalid identifier not quoted:\n%s", out)
	}
}

func TestEmitFile_Frontmatter(t *testing.T) {
	e := NewEmitter(Config{Frontmatter: "// Code generated by protodecl. DO NOT EDIT."})
	out := string(e.EmitFile("pkg", Declarations{Aliases: []Alias{{Name: "Id", Type: "string"}}}))

	if !strings.HasPrefix(out, "// Code generated by protodecl. DO NOT EDIT.\n\n") {
		t.Errorf("frontmatter missing:\n%s", out)
	}
}

func TestDeclarations_Empty(t *testing.T) {
	if !(Declarations{}).Empty() {
		t.Error("zero Declarations must be empty")
	}
	if (Declarations{Aliases: []Alias{{Name: "A", Type: "string"}}}).Empty() {
		t.Error("Declarations with an alias must not be empty")
	}
}
