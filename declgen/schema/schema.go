// Package schema adapts parsed IDL files into the namespace tree consumed
// by the registry, resolver, and entity builder. The low-level grammar work
// is delegated to github.com/emicklei/proto; this package only reshapes its
// element stream into qualified, kind-tagged nodes.
package schema

import "strings"

// Kind identifies the category of a schema node.
type Kind int

const (
	// KindNamespace is a package or nested namespace.
	KindNamespace Kind = iota
	// KindMessage is a message/struct declaration.
	KindMessage
	// KindEnum is an enum declaration.
	KindEnum
	// KindService is a service declaration.
	KindService
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "Namespace"
	case KindMessage:
		return "Message"
	case KindEnum:
		return "Enum"
	case KindService:
		return "Service"
	default:
		return "Unknown"
	}
}

// Node is a single declaration in a file's namespace tree.
//
// Exactly one of Fields, Members, or Methods is populated depending on Kind.
// Children holds nested declarations: sub-namespaces, messages, enums, and
// services for namespaces; nested messages and enums for messages. Messages
// act as namespaces for their nested declarations, so traversals that descend
// into namespaces must descend into messages too.
type Node struct {
	// Kind is the node category, set once at construction.
	Kind Kind

	// Name is the simple (unqualified) declared name.
	Name string

	// Parent is the enclosing node, nil for a root namespace segment.
	// The fully-qualified name is derived from the parent chain, so
	// subtrees can be built bottom-up and attached later.
	Parent *Node

	// Comment is the leading comment attached to the declaration, if any.
	Comment string

	// Children holds nested declarations in declaration order.
	Children []*Node

	// Fields holds message fields in declaration order (KindMessage only).
	Fields []*Field

	// Members holds enum members in declaration order (KindEnum only).
	Members []EnumMember

	// Methods holds service methods in declaration order (KindService only).
	Methods []*Method
}

// FullName returns the dot-separated fully-qualified name with no
// leading separator.
func (n *Node) FullName() string {
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.FullName() + "." + n.Name
}

// AddChild appends child under n and records n as its parent.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Field is a single message field.
//
// Type holds the declared type name as written in the source. The cross-file
// resolver rewrites it in place to a fully-qualified registry key when it can
// match one; no other component may mutate it.
type Field struct {
	// Name is the declared field name.
	Name string

	// Sequence is the declared field number.
	Sequence int

	// Type is the declared type name. For map fields this is the value
	// type; KeyType holds the key type.
	Type string

	// KeyType is the declared map key type, empty for non-map fields.
	KeyType string

	Repeated bool
	Optional bool
	Required bool

	// Comment is the leading comment attached to the field, if any.
	Comment string
}

// IsMap reports whether the field is a map field.
func (f *Field) IsMap() bool { return f.KeyType != "" }

// EnumMember is a single enum variant with its declared integer value.
type EnumMember struct {
	Name    string
	Value   int
	Comment string
}

// Method is a single service method.
//
// Request and Returns hold declared type names; like Field.Type they are
// rewritten in place by the cross-file resolver.
type Method struct {
	Name    string
	Request string
	Returns string

	StreamsRequest bool
	StreamsReturns bool

	Comment string
}

// File is the parse result for one schema file.
type File struct {
	// Path is the file path as handed to ParseFile.
	Path string

	// Package is the declared package name (dot-separated).
	Package string

	// Root is the outermost namespace node. For package "a.b" the root is
	// namespace "a" containing namespace "b"; declarations hang off "b".
	Root *Node

	// Aliases holds typedef aliases extracted before parsing, in
	// declaration order.
	Aliases []Alias
}

// Namespace returns the node for the file's declared package, walking the
// root chain. Returns nil if the package node is not in the tree.
func (f *File) Namespace() *Node {
	segs := strings.Split(f.Package, ".")
	node := f.Root
	if node == nil || node.Name != segs[0] {
		return nil
	}
	for _, seg := range segs[1:] {
		var next *Node
		for _, c := range node.Children {
			if c.Kind == KindNamespace && c.Name == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}
