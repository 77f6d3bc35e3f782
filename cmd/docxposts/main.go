package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docxposts/cmd/docxposts/commands"
	"git.home.luguber.info/inful/docxposts/internal/errors"
	"git.home.luguber.info/inful/docxposts/internal/version"
)

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("docxposts"),
		kong.Description("Convert Word documents into static-site markdown posts and drafts."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := commands.NewGlobal(os.Stdout)
	if err := kctx.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
