// Package registry collects every declaration from every parsed file into a
// single lookup table keyed by fully-qualified name. The registry is built
// once per run, mutated only by the resolver (field type rewrites), then
// consumed read-only by the entity builder.
package registry

import "github.com/protodecl/protodecl/declgen/schema"

// Entry is one declaration occurrence. A fully-qualified name maps to one
// Entry per file that declares it; duplicates across files are retained,
// never merged.
type Entry struct {
	// Node is the schema node for this declaration.
	Node *schema.Node

	// Kind is the node category, captured at insertion time.
	Kind schema.Kind

	// File is the path of the declaring file.
	File string

	// Package is the declaring file's package name, used by the resolver
	// to build package-qualified candidate names.
	Package string
}

// Registry maps fully-qualified names to all entries declared under them.
// Key iteration follows insertion order.
type Registry struct {
	keys    []string
	entries map[string][]*Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string][]*Entry)}
}

// Add walks f's namespace tree and records every reachable declaration.
//
// The walk uses an explicit stack rather than call recursion. Children are
// pushed in reverse so popping from the end visits siblings in declaration
// order; the file index relies on this ordering, and duplicate names within
// a file resolve to whichever declaration came first. Messages are treated
// as namespaces for their nested declarations.
func (r *Registry) Add(f *schema.File) {
	stack := []*schema.Node{f.Root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r.insert(node.FullName(), &Entry{
			Node:    node,
			Kind:    node.Kind,
			File:    f.Path,
			Package: f.Package,
		})

		if node.Kind == schema.KindNamespace || node.Kind == schema.KindMessage {
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, node.Children[i])
			}
		}
	}
}

// insert appends e under name. An existing name is never overwritten:
// duplicate declarations across files each keep their own entry.
func (r *Registry) insert(name string, e *Entry) {
	if _, ok := r.entries[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.entries[name] = append(r.entries[name], e)
}

// Lookup returns all entries declared under the fully-qualified name,
// in insertion order. Returns nil if the name is unknown.
func (r *Registry) Lookup(name string) []*Entry {
	return r.entries[name]
}

// Keys returns all fully-qualified names in insertion order.
func (r *Registry) Keys() []string {
	return r.keys
}

// Len returns the number of distinct fully-qualified names.
func (r *Registry) Len() int {
	return len(r.keys)
}

// FileIndex groups registry entries by declaring file. It is a pure
// re-projection of the registry and must be rebuilt if entries are added.
type FileIndex struct {
	files  []string
	byFile map[string][]*Entry
}

// BuildFileIndex projects r by declaring file, preserving each file's
// traversal order.
func BuildFileIndex(r *Registry) *FileIndex {
	ix := &FileIndex{byFile: make(map[string][]*Entry)}
	for _, key := range r.keys {
		for _, e := range r.entries[key] {
			if _, ok := ix.byFile[e.File]; !ok {
				ix.files = append(ix.files, e.File)
			}
			ix.byFile[e.File] = append(ix.byFile[e.File], e)
		}
	}
	return ix
}

// Files returns the declaring file paths in first-seen order.
func (ix *FileIndex) Files() []string {
	return ix.files
}

// Entries returns the entries declared in file, in traversal order.
func (ix *FileIndex) Entries(file string) []*Entry {
	return ix.byFile[file]
}
