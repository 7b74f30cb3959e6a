package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/basket-cli/basket/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	jsonOut := flag.Bool("json", false, "print list output as JSON")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		JSON: *jsonOut,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
