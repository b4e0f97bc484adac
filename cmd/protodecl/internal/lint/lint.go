// Package lint implements the `protodecl lint` subcommand.
package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/protodecl/protodecl/declgen"
)

type Cmd struct {
	Root string `arg:"" help:"Directory scanned recursively for schema files."`

	Ext  string `help:"Schema file extension to match." default:".proto"`
	JSON bool   `help:"Print the lint report as JSON." name:"json"`
}

func (c *Cmd) Run() error {
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolve root path: %w", err)
	}

	res, err := declgen.Generate(context.Background(), &declgen.Config{
		Root: root,
		Ext:  c.Ext,
		Lint: true,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	for _, d := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", d.File, d.Message)
	}
	fmt.Printf("lint: files=%d resolutions=%d skipped=%d\n",
		len(res.Files), len(res.Resolutions), len(res.Skipped))
	return nil
}
