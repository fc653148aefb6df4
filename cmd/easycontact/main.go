package main

import (
	"flag"
	"os"

	"github.com/idilsaglam/easycontact/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	apiURL := flag.String("api", "", "backend base URL (overrides EASYCONTACT_API_URL)")
	theme := flag.String("theme", "", "output theme: classic|neon|mono")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		APIURL:  *apiURL,
		Theme:   *theme,
		NoColor: *noColor,
	})
	os.Exit(code)
}
