// Package gen implements the `protodecl gen` subcommand.
package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/protodecl/protodecl/declgen"
	"github.com/protodecl/protodecl/internal/watch"
)

type Cmd struct {
	Root string `arg:"" help:"Directory scanned recursively for schema files."`
	Out  string `arg:"" help:"Output directory for generated declaration files."`

	Config      string `help:"Path to a protodecl.yaml config file." short:"c"`
	Ext         string `help:"Schema file extension to match. Defaults to .proto."`
	Bundle      string `help:"Combine all output into a single declaration file with this name."`
	EnumStyle   string `help:"Enum rendering style (const_enum or enum)." name:"enum-style"`
	Frontmatter string `help:"Content prepended to each generated file."`
	Watch       bool   `help:"Watch for changes and regenerate." short:"w"`
	Verbose     bool   `help:"Log every applied type resolution." short:"v"`
}

func (c *Cmd) Run() error {
	cfg, err := c.buildConfig()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if !c.Watch {
		return c.generate(context.Background(), cfg, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// First run before watching; failures in watch mode are logged and
	// retried on the next change rather than aborting.
	if err := c.generate(ctx, cfg, log); err != nil {
		log.Error("generate failed", "error", err)
	}
	log.Info("watching for changes", "root", cfg.Root, "ext", cfg.Ext)

	return watch.Run(ctx, cfg.Root, cfg.Ext, watch.DefaultDebounce, func() {
		if err := c.generate(ctx, cfg, log); err != nil {
			log.Error("generate failed", "error", err)
		}
	})
}

func (c *Cmd) generate(ctx context.Context, cfg *declgen.Config, log *slog.Logger) error {
	res, err := declgen.Generate(ctx, cfg)
	if err != nil {
		return err
	}

	for _, d := range res.Skipped {
		log.Warn("skipped file", "file", d.File, "error", d.Message)
	}
	if c.Verbose {
		for _, r := range res.Resolutions {
			log.Info("resolved type reference",
				"file", r.File, "container", r.Container, "field", r.Field,
				"from", r.From, "to", r.To)
		}
	}
	log.Info("generated declarations",
		"files", len(res.Files), "resolutions", len(res.Resolutions), "skipped", len(res.Skipped))
	return nil
}

// buildConfig merges the optional config file with command-line flags;
// flags win.
func (c *Cmd) buildConfig() (*declgen.Config, error) {
	cfg := &declgen.Config{}
	if c.Config != "" {
		loaded, err := declgen.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}
	out, err := filepath.Abs(c.Out)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	cfg.Root = root
	cfg.Out = out
	if c.Ext != "" {
		cfg.Ext = c.Ext
	}
	if c.Bundle != "" {
		cfg.Bundle = c.Bundle
	}
	if c.EnumStyle != "" {
		cfg.EnumStyle = c.EnumStyle
	}
	if c.Frontmatter != "" {
		cfg.Frontmatter = c.Frontmatter
	}
	return cfg, nil
}
