package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/eak1mov/go-zonetiles/scan"
	"github.com/eak1mov/go-zonetiles/sqlite"
	"github.com/google/subcommands"
)

type continentsFlag []scan.Continent

func (f *continentsFlag) String() string {
	parts := make([]string, 0, len(*f))
	for _, c := range *f {
		parts = append(parts, c.Dir+"="+c.Name)
	}
	return strings.Join(parts, ",")
}

func (f *continentsFlag) Set(value string) error {
	dir, name, found := strings.Cut(value, "=")
	if !found || dir == "" || name == "" {
		return fmt.Errorf("invalid continent %q, want <dir>=<name>", value)
	}
	*f = append(*f, scan.Continent{Dir: dir, Name: name})
	return nil
}

type generateCmd struct {
	outputDir  string
	dbPath     string
	continents continentsFlag
	progress   bool
	verbose    bool
}

func (c *generateCmd) Name() string     { return "generate" }
func (c *generateCmd) Synopsis() string { return "generate continent tile grids from terrain tile files" }
func (c *generateCmd) Usage() string {
	return "zonetiles generate [-o <dir>] [-c <dir>=<name> ...] [-db <path>]\n"
}
func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "Data", "Output directory")
	f.StringVar(&c.dbPath, "db", "", "Optional SQLite database to export tiles to")
	f.Var(&c.continents, "c", "Continent as <input dir>=<name>, repeatable (default kalimdor_adts=Kalimdor, azeroth_adts=Azeroth)")
	f.BoolVar(&c.progress, "progress", false, "Show a progress bar")
	f.BoolVar(&c.verbose, "v", false, "Verbose logging")
}

func (c *generateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	logger := newLogger(c.verbose)

	continents := []scan.Continent(c.continents)
	if len(continents) == 0 {
		continents = scan.DefaultContinents
	}

	opts := []scan.Option{
		scan.WithLogger(logger),
		scan.WithOutput(os.Stdout),
		scan.WithProgress(c.progress),
	}

	if c.dbPath != "" {
		writer, err := sqlite.NewWriter(c.dbPath, sqlite.WithLogger(logger))
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		defer writer.Close()
		defer func() {
			if err := writer.Finalize(); err != nil {
				log.Println(err)
			}
		}()
		opts = append(opts, scan.WithExporter(writer))
	}

	fmt.Println("ZoneMap Tile Generator")
	fmt.Println()

	reports, err := scan.RunAll(continents, c.outputDir, opts...)
	if reports == nil && err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Println()
	for _, report := range reports {
		fmt.Printf("%s: %v, %d tiles, %d failed\n", report.Continent, report.State, report.Parsed, report.Failed)
	}
	fmt.Println("Done!")

	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
