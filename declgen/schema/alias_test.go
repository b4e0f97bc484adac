package schema

import (
	"strings"
	"testing"
)

func TestExtractAliases_Simple(t *testing.T) {
	aliases, cleaned := ExtractAliases("typedef CollectionBase CollectionResponse\n")

	if len(aliases) != 1 {
		t.Fatalf("expected 1 alias, got %d", len(aliases))
	}
	if aliases[0].Alias != "CollectionResponse" {
		t.Errorf("Alias = %q, want %q", aliases[0].Alias, "CollectionResponse")
	}
	if aliases[0].Type != "CollectionBase" {
		t.Errorf("Type = %q, want %q", aliases[0].Type, "CollectionBase")
	}
	if strings.Contains(cleaned, "typedef") {
		t.Errorf("cleaned source still contains typedef: %q", cleaned)
	}
}

func TestExtractAliases_List(t *testing.T) {
	aliases, _ := ExtractAliases("typedef list <string> StringList\n")

	if len(aliases) != 1 {
		t.Fatalf("expected 1 alias, got %d", len(aliases))
	}
	if aliases[0].Alias != "StringList" {
		t.Errorf("Alias = %q, want %q", aliases[0].Alias, "StringList")
	}
	if aliases[0].Type != "string[]" {
		t.Errorf("Type = %q, want %q", aliases[0].Type, "string[]")
	}
}

func TestExtractAliases_Semicolon(t *testing.T) {
	aliases, _ := ExtractAliases("typedef list<i32> IdList;\n")

	if len(aliases) != 1 {
		t.Fatalf("expected 1 alias, got %d", len(aliases))
	}
	if aliases[0].Type != "i32[]" {
		t.Errorf("Type = %q, want %q", aliases[0].Type, "i32[]")
	}
}

func TestExtractAliases_PreservesSurroundingSource(t *testing.T) {
	src := `syntax = "proto3";
package pkg;
typedef CollectionBase CollectionResponse
message A {}
`
	aliases, cleaned := ExtractAliases(src)

	if len(aliases) != 1 {
		t.Fatalf("expected 1 alias, got %d", len(aliases))
	}
	if !strings.Contains(cleaned, "package pkg;") {
		t.Errorf("cleaned source lost package statement: %q", cleaned)
	}
	if !strings.Contains(cleaned, "message A {}") {
		t.Errorf("cleaned source lost message declaration: %q", cleaned)
	}
}

func TestExtractAliases_None(t *testing.T) {
	src := "package pkg;\nmessage A {}\n"
	aliases, cleaned := ExtractAliases(src)

	if len(aliases) != 0 {
		t.Errorf("expected no aliases, got %d", len(aliases))
	}
	if cleaned != src {
		t.Errorf("source without typedefs must pass through unchanged")
	}
}
