// Command walletctl runs operator tasks against the wallet database.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configFile = flag.String("config", "", "path to a config file (default: ./walletflow.yaml if present)")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&migrateCmd{}, "database")
	commander.Register(&reconcileCmd{}, "database")
	commander.Register(&totalsCmd{}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
