package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&inspectCmd{}, "")

	flag.Parse()
	if flag.NArg() == 0 {
		flag.CommandLine.Parse([]string{"generate"})
	}
	os.Exit(int(subcommands.Execute(context.Background())))
}
