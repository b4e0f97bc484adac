package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/protodecl/protodecl/cmd/protodecl/internal/gen"
	"github.com/protodecl/protodecl/cmd/protodecl/internal/lint"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate TypeScript declaration files from a schema tree."`
	Lint    lint.Cmd   `cmd:"" help:"Parse and resolve a schema tree without writing output."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("protodecl"),
		kong.Description("Generates TypeScript declaration files from protobuf-style schema files."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
