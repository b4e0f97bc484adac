// Package resolve rewrites bare type references to fully-qualified registry
// keys. Resolution is best-effort: an unmatched reference is left untouched
// and never fails the run.
package resolve

import (
	"strings"

	"github.com/protodecl/protodecl/declgen/registry"
	"github.com/protodecl/protodecl/declgen/schema"
)

// primitives never resolve; they pass through to the type-mapping table.
var primitives = map[string]struct{}{
	"double": {}, "float": {},
	"int32": {}, "int64": {}, "uint32": {}, "uint64": {},
	"sint32": {}, "sint64": {},
	"fixed32": {}, "fixed64": {}, "sfixed32": {}, "sfixed64": {},
	"bool": {}, "bytes": {}, "string": {},
	"list": {}, "map": {},
}

// IsPrimitive reports whether name is a fixed primitive keyword.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

// Resolution records one applied rewrite, for diagnostics.
type Resolution struct {
	// File is the path of the file declaring the rewritten reference.
	File string `json:"file"`

	// Container is the fully-qualified name of the declaring message
	// or service.
	Container string `json:"container"`

	// Field is the field or method name holding the reference.
	Field string `json:"field"`

	// From is the type name before the rewrite.
	From string `json:"from"`

	// To is the fully-qualified name after the rewrite.
	To string `json:"to"`
}

// Apply resolves every unqualified type reference it can match against the
// registry, mutating field and method types in place. It returns the applied
// rewrites and never returns an error: references that match nothing keep
// their original spelling.
//
// Apply is idempotent: a second pass finds every rewritten reference already
// equal to its registry key and changes nothing.
func Apply(reg *registry.Registry) []Resolution {
	var applied []Resolution

	record := func(e *registry.Entry, field string, slot *string) {
		if fq, ok := resolveName(reg, e.Package, *slot); ok && fq != *slot {
			applied = append(applied, Resolution{
				File:      e.File,
				Container: e.Node.FullName(),
				Field:     field,
				From:      *slot,
				To:        fq,
			})
			*slot = fq
		}
	}

	for _, key := range reg.Keys() {
		for _, e := range reg.Lookup(key) {
			switch e.Kind {
			case schema.KindMessage:
				for _, f := range e.Node.Fields {
					record(e, f.Name, &f.Type)
				}
			case schema.KindService:
				for _, m := range e.Node.Methods {
					record(e, m.Name, &m.Request)
					record(e, m.Name, &m.Returns)
				}
			}
		}
	}
	return applied
}

// resolveName finds the fully-qualified registry key for a type reference
// declared inside pkg. Candidates are tried in order: package-qualified
// first, then the name as written. The first candidate that matches any
// enum or message entry wins.
//
// A candidate matches a registry key when the key equals the candidate or
// ends with "."+candidate. The looser contains-substring match inherited
// from earlier designs over-matched short names embedded in longer
// qualified ones, so matching is pinned to whole dot-separated segments.
func resolveName(reg *registry.Registry, pkg, name string) (string, bool) {
	if name == "" || IsPrimitive(name) {
		return "", false
	}

	candidates := []string{name}
	if pkg != "" {
		candidates = []string{pkg + "." + name, name}
	}
	bare := simpleName(name)

	for _, cand := range candidates {
		for _, key := range reg.Keys() {
			if key != cand && !strings.HasSuffix(key, "."+cand) {
				continue
			}
			for _, e := range reg.Lookup(key) {
				if (e.Kind == schema.KindMessage || e.Kind == schema.KindEnum) && e.Node.Name == bare {
					return key, true
				}
			}
		}
	}
	return "", false
}

// simpleName returns the last dot-separated segment of name.
func simpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
