package schema

import (
	"regexp"
	"strings"
)

// Alias is a single-line typedef statement: `typedef <type> <alias>`.
// The thrift-like dialect allows these alongside proto declarations; they
// are extracted before the proto grammar runs and emitted as type aliases.
type Alias struct {
	// Alias is the declared alias name.
	Alias string

	// Type is the aliased type, with `list<T>` rewritten to `T[]`.
	Type string
}

var (
	typedefRe = regexp.MustCompile(`(?m)^[ \t]*typedef[ \t]+(.+?)[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*;?[ \t]*\r?$`)
	listRe    = regexp.MustCompile(`^list[ \t]*<[ \t]*([A-Za-z_][A-Za-z0-9_.]*)[ \t]*>$`)
)

// ExtractAliases pulls typedef statements out of src, returning the aliases
// in declaration order and the source with those lines blanked out so the
// proto parser never sees them.
func ExtractAliases(src string) ([]Alias, string) {
	var aliases []Alias
	cleaned := typedefRe.ReplaceAllStringFunc(src, func(line string) string {
		m := typedefRe.FindStringSubmatch(line)
		aliases = append(aliases, Alias{
			Alias: m[2],
			Type:  normalizeAliasType(m[1]),
		})
		return ""
	})
	return aliases, cleaned
}

// normalizeAliasType rewrites generic list references to array syntax:
// `list<string>` becomes `string[]`. Anything else passes through.
func normalizeAliasType(typ string) string {
	typ = strings.TrimSpace(typ)
	if m := listRe.FindStringSubmatch(typ); m != nil {
		return m[1] + "[]"
	}
	return typ
}
