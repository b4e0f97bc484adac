package declgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/protodecl/protodecl/declgen/ir"
	"github.com/protodecl/protodecl/declgen/registry"
	"github.com/protodecl/protodecl/declgen/resolve"
	"github.com/protodecl/protodecl/declgen/schema"
	"github.com/protodecl/protodecl/declgen/sink"
	"github.com/protodecl/protodecl/declgen/typescript"
)

// readConcurrency bounds parallel schema file reads and output writes.
const readConcurrency = 16

// Diagnostic is a non-fatal per-file problem, reported without stopping
// the run.
type Diagnostic struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// Result summarizes one generation run.
type Result struct {
	// Files lists emitted declaration file paths, relative to the output
	// directory. In lint mode these are the paths that would be written.
	Files []string `json:"files"`

	// Resolutions lists every applied type-reference rewrite.
	Resolutions []resolve.Resolution `json:"resolutions"`

	// Skipped lists files dropped after parse failures.
	Skipped []Diagnostic `json:"skipped"`
}

// Generate runs the full pipeline against the filesystem: discover schema
// files under cfg.Root, build the registry, resolve references, and write
// one declaration file per input under cfg.Out. In lint mode nothing is
// written.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	if cfg.Lint {
		return GenerateTo(ctx, cfg, nil)
	}
	return GenerateTo(ctx, cfg, sink.NewFilesystemSink(cfg.Out))
}

// GenerateTo is Generate writing through an explicit sink. A nil sink
// suppresses output entirely.
func GenerateTo(ctx context.Context, cfg *Config, out sink.OutputSink) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	paths, err := discoverFiles(cfg.Root, cfg.Ext)
	if err != nil {
		return nil, fmt.Errorf("discover schema files: %w", err)
	}

	sources, err := readAll(ctx, cfg.Root, paths)
	if err != nil {
		return nil, err
	}

	// Parsing, registry building, and resolution run sequentially in
	// sorted file order; nothing downstream starts until reads joined.
	res := &Result{}
	reg := registry.New()
	var files []*schema.File
	for i, path := range paths {
		f, err := schema.ParseFile(path, sources[i])
		if err != nil {
			var pe *schema.ParseError
			if errors.As(err, &pe) {
				res.Skipped = append(res.Skipped, Diagnostic{File: path, Message: pe.Err.Error()})
				continue
			}
			// Missing package or namespace node aborts the run.
			return nil, err
		}
		files = append(files, f)
		reg.Add(f)
	}

	ix := registry.BuildFileIndex(reg)
	res.Resolutions = resolve.Apply(reg)

	emitter := typescript.NewEmitter(typescript.Config{
		EnumStyle:   cfg.EnumStyle,
		Indent:      cfg.Indent,
		Frontmatter: cfg.Frontmatter,
	})

	type output struct {
		path    string
		content []byte
	}
	var outputs []output
	for _, f := range files {
		decls := buildDeclarations(f, ix)
		if decls.Empty() {
			continue
		}
		outputs = append(outputs, output{
			path:    declPath(f.Path, cfg.Ext),
			content: emitter.EmitFile(f.Package, decls),
		})
	}

	if cfg.Bundle != "" && len(outputs) > 0 {
		var buf bytes.Buffer
		for i, o := range outputs {
			if i > 0 {
				buf.WriteString("\n")
			}
			buf.Write(o.content)
		}
		outputs = []output{{path: cfg.Bundle, content: buf.Bytes()}}
	}

	for _, o := range outputs {
		res.Files = append(res.Files, o.path)
	}

	if cfg.Lint || out == nil {
		return res, nil
	}

	// Every output depends only on the fully resolved registry, so writes
	// are issued concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for _, o := range outputs {
		o := o
		g.Go(func() error {
			return out.WriteFile(gctx, o.path, o.content)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("write declarations: %w", err)
	}
	return res, nil
}

// discoverFiles walks root for files with the given extension, returning
// slash-separated paths relative to root in sorted order.
func discoverFiles(root, ext string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// readAll loads every schema file concurrently and joins before returning.
func readAll(ctx context.Context, root string, paths []string) ([][]byte, error) {
	sources := make([][]byte, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			sources[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// buildDeclarations converts the file's registry entries into emission
// entities: aliases first, then enums, interfaces, and services declared
// directly under the file's namespace. Nested declarations are reached
// through their parent interface, not emitted at the top level. When one
// file declares the same fully-qualified name twice, the first declaration
// wins.
func buildDeclarations(f *schema.File, ix *registry.FileIndex) typescript.Declarations {
	decls := typescript.Declarations{}
	for _, a := range f.Aliases {
		decls.Aliases = append(decls.Aliases, typescript.Alias{Name: a.Alias, Type: a.Type})
	}

	seen := make(map[string]bool)
	for _, e := range ix.Entries(f.Path) {
		if e.Node.Parent == nil || e.Node.Parent.Kind != schema.KindNamespace {
			continue
		}
		name := e.Node.FullName()
		if seen[name] {
			continue
		}
		seen[name] = true

		switch e.Kind {
		case schema.KindEnum:
			decls.Enums = append(decls.Enums, ir.Enum(e.Node))
		case schema.KindMessage:
			decls.Interfaces = append(decls.Interfaces, ir.Interface(e.Node))
		case schema.KindService:
			decls.Services = append(decls.Services, ir.Service(e.Node))
		}
	}
	return decls
}

// declPath maps an input path to its declaration file path: the directory
// structure is preserved and the schema extension becomes ".d.ts".
func declPath(path, ext string) string {
	return strings.TrimSuffix(path, ext) + ".d.ts"
}
