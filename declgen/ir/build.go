package ir

import "github.com/protodecl/protodecl/declgen/schema"

// typeMap is the fixed primitive-to-target-type mapping table.
var typeMap = map[string]string{
	"double":   "number",
	"float":    "number",
	"int32":    "number",
	"int64":    "number",
	"uint32":   "number",
	"uint64":   "number",
	"sint32":   "number",
	"sint64":   "number",
	"fixed32":  "number",
	"fixed64":  "number",
	"sfixed32": "number",
	"sfixed64": "number",
	"bool":     "boolean",
	"bytes":    "string",
	"string":   "string",
	"list":     "any[]",
	"map":      "Record<string, any>",
}

// TargetType maps a resolved type name to its target type expression.
// Primitives go through the mapping table; everything else (fully-qualified
// or unresolved references) passes through as written.
func TargetType(name string) string {
	if mapped, ok := typeMap[name]; ok {
		return mapped
	}
	return name
}

// Interface converts a message node into an interface entity, recursively
// converting nested messages and enums. The node's field types must already
// be resolved; unresolved names are carried through as-is.
func Interface(n *schema.Node) *InterfaceEntity {
	entity := NewInterface(n.Name)
	entity.Comment = n.Comment

	for _, f := range n.Fields {
		entity.AddProperty(f.Name, &PropertyEntity{
			Index:    f.Sequence,
			Type:     propertyType(f),
			Optional: f.Optional,
			Required: f.Required,
			Comment:  f.Comment,
		})
	}

	for _, child := range n.Children {
		switch child.Kind {
		case schema.KindMessage:
			entity.NestedInterfaces = append(entity.NestedInterfaces, Interface(child))
		case schema.KindEnum:
			entity.NestedEnums = append(entity.NestedEnums, Enum(child))
		}
	}
	return entity
}

// propertyType builds the target type expression for one field.
func propertyType(f *schema.Field) string {
	base := TargetType(f.Type)
	if f.IsMap() {
		return "Record<" + TargetType(f.KeyType) + ", " + base + ">"
	}
	if f.Repeated {
		return base + "[]"
	}
	return base
}

// Enum converts an enum node, preserving declared integer values.
func Enum(n *schema.Node) *EnumEntity {
	entity := NewEnum(n.Name)
	entity.Comment = n.Comment
	for _, m := range n.Members {
		entity.AddMember(m.Name, EnumMember{Value: m.Value, Comment: m.Comment})
	}
	return entity
}

// Service converts a service node. Each method's request parameter, when
// declared, is assigned input index 1; the return type is wrapped in the
// async result contract at emission time, not here.
func Service(n *schema.Node) *ServiceEntity {
	entity := NewService(n.Name)
	entity.Comment = n.Comment
	for _, m := range n.Methods {
		fn := NewFunction(TargetType(m.Returns))
		fn.Comment = m.Comment
		if m.Request != "" {
			fn.SetParam(1, TargetType(m.Request))
		}
		entity.AddMethod(m.Name, fn)
	}
	return entity
}
