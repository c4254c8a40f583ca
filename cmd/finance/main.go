// Command finance runs the personal finance ledger.
//
//	finance serve    start the web UI and JSON API
//	finance listen   consume ledger snapshots from AMQP
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"finance/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&serveCmd{}, "")
	commander.Register(&listenCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
