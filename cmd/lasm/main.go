// Command lasm is the CLI front end: an "assemble" subcommand that runs one
// source file through the full pipeline and an interactive "repl" that
// re-assembles every line entered so far after each new line, grounded on
// informatter-nilan's main.go
// REPL loop. Unlike that teacher, which never registered its cmd_run/cmd_repl
// types with subcommands, this one actually dispatches through
// google/subcommands (spec §6).
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&assembleCmd{}, "")
	subcommands.Register(&replCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
