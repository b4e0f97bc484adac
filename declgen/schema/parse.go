package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emicklei/proto"
)

// ErrMissingPackage is returned when a file parses cleanly but declares no
// package name. The pipeline treats this as fatal: without a package there
// is no namespace to qualify declarations under.
var ErrMissingPackage = errors.New("schema file declares no package")

// ErrMissingNamespaceNode is returned when the declared package cannot be
// located in the tree built from the same file. A correct parse makes this
// impossible; it is checked defensively and treated as fatal.
var ErrMissingNamespaceNode = errors.New("declared package not found in namespace tree")

// ParseError wraps a grammar-level failure from the underlying parser.
// Files that fail to parse are skipped; they contribute no registry entries.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile parses one schema file into its namespace tree.
//
// Typedef alias statements are extracted before the grammar parser runs,
// since they belong to the thrift-like dialect the proto grammar rejects.
func ParseFile(path string, src []byte) (*File, error) {
	aliases, cleaned := ExtractAliases(string(src))

	p := proto.NewParser(strings.NewReader(cleaned))
	p.Filename(path)
	def, err := p.Parse()
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var pkg string
	for _, el := range def.Elements {
		if pe, ok := el.(*proto.Package); ok {
			pkg = pe.Name
			break
		}
	}
	if pkg == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingPackage)
	}

	f := &File{
		Path:    path,
		Package: pkg,
		Aliases: aliases,
	}

	// Build the namespace chain for the package ("a.b" -> a containing b).
	segs := strings.Split(pkg, ".")
	f.Root = &Node{Kind: KindNamespace, Name: segs[0]}
	ns := f.Root
	for _, seg := range segs[1:] {
		child := &Node{Kind: KindNamespace, Name: seg}
		ns.AddChild(child)
		ns = child
	}

	for _, el := range def.Elements {
		switch d := el.(type) {
		case *proto.Message:
			if d.IsExtend {
				continue
			}
			ns.AddChild(convertMessage(d))
		case *proto.Enum:
			ns.AddChild(convertEnum(d))
		case *proto.Service:
			ns.AddChild(convertService(d))
		}
	}

	if f.Namespace() == nil {
		return nil, fmt.Errorf("%s: package %q: %w", path, pkg, ErrMissingNamespaceNode)
	}
	return f, nil
}

func convertMessage(m *proto.Message) *Node {
	node := &Node{
		Kind:    KindMessage,
		Name:    m.Name,
		Comment: commentText(m.Comment),
	}
	for _, el := range m.Elements {
		switch d := el.(type) {
		case *proto.NormalField:
			node.Fields = append(node.Fields, &Field{
				Name:     d.Name,
				Sequence: d.Sequence,
				Type:     d.Type,
				Repeated: d.Repeated,
				Optional: d.Optional,
				Required: d.Required,
				Comment:  commentText(d.Comment),
			})
		case *proto.MapField:
			node.Fields = append(node.Fields, &Field{
				Name:     d.Name,
				Sequence: d.Sequence,
				Type:     d.Type,
				KeyType:  d.KeyType,
				Comment:  commentText(d.Comment),
			})
		case *proto.Oneof:
			// Oneof members are plain fields with at-most-one presence.
			for _, oel := range d.Elements {
				if of, ok := oel.(*proto.OneOfField); ok {
					node.Fields = append(node.Fields, &Field{
						Name:     of.Name,
						Sequence: of.Sequence,
						Type:     of.Type,
						Optional: true,
						Comment:  commentText(of.Comment),
					})
				}
			}
		case *proto.Message:
			if d.IsExtend {
				continue
			}
			node.AddChild(convertMessage(d))
		case *proto.Enum:
			node.AddChild(convertEnum(d))
		}
	}
	return node
}

func convertEnum(e *proto.Enum) *Node {
	node := &Node{
		Kind:    KindEnum,
		Name:    e.Name,
		Comment: commentText(e.Comment),
	}
	for _, el := range e.Elements {
		if ef, ok := el.(*proto.EnumField); ok {
			node.Members = append(node.Members, EnumMember{
				Name:    ef.Name,
				Value:   ef.Integer,
				Comment: commentText(ef.Comment),
			})
		}
	}
	return node
}

func convertService(s *proto.Service) *Node {
	node := &Node{
		Kind:    KindService,
		Name:    s.Name,
		Comment: commentText(s.Comment),
	}
	for _, el := range s.Elements {
		if rpc, ok := el.(*proto.RPC); ok {
			node.Methods = append(node.Methods, &Method{
				Name:           rpc.Name,
				Request:        rpc.RequestType,
				Returns:        rpc.ReturnsType,
				StreamsRequest: rpc.StreamsRequest,
				StreamsReturns: rpc.StreamsReturns,
				Comment:        commentText(rpc.Comment),
			})
		}
	}
	return node
}

func commentText(c *proto.Comment) string {
	if c == nil {
		return ""
	}
	parts := make([]string, 0, len(c.Lines))
	for _, line := range c.Lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
