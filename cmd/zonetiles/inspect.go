package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/eak1mov/go-zonetiles/adt"
	"github.com/eak1mov/go-zonetiles/lua"
	"github.com/eak1mov/go-zonetiles/record"
	"github.com/eak1mov/go-zonetiles/tile"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	tileIndex int
}

func (c *inspectCmd) Name() string     { return "inspect" }
func (c *inspectCmd) Synopsis() string { return "print the area grid of a terrain tile or generated tile" }
func (c *inspectCmd) Usage() string {
	return "zonetiles inspect <file.adt>\nzonetiles inspect -t <index> <continent_tiles.lua>\n"
}
func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tileIndex, "t", -1, "Tile index to decode from a generated artifact")
}

func printAreaGrid(w io.Writer, areaIDs []uint32) {
	for row := range tile.ChunkSide {
		cells := make([]string, 0, tile.ChunkSide)
		for _, areaID := range areaIDs[row*tile.ChunkSide : (row+1)*tile.ChunkSide] {
			cells = append(cells, fmt.Sprintf("%6d", areaID))
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}

func (c *inspectCmd) inspectArtifact(filePath string) error {
	table, err := lua.ReadFile(filePath)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d tiles\n", table.Name, len(table.Tiles))
	if c.tileIndex < 0 {
		return nil
	}

	text, found := table.Tiles[tile.Index(c.tileIndex)]
	if !found {
		return fmt.Errorf("tile %d not found", c.tileIndex)
	}
	areaIDs, err := record.Decode(text)
	if err != nil {
		return err
	}
	tileID := tile.FromIndex(tile.Index(c.tileIndex))
	fmt.Printf("tile %d (x=%d, y=%d)\n", c.tileIndex, tileID.X, tileID.Y)
	printAreaGrid(os.Stdout, areaIDs)
	return nil
}

func (c *inspectCmd) inspectTile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	chunks, err := adt.ParseChunks(data)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d chunks\n", filePath, len(chunks))

	areaIDs, err := record.Extract(data)
	if err != nil {
		return err
	}
	printAreaGrid(os.Stdout, areaIDs)
	return nil
}

func (c *inspectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	filePath := f.Arg(0)

	var err error
	if strings.HasSuffix(filePath, lua.Ext) {
		err = c.inspectArtifact(filePath)
	} else {
		err = c.inspectTile(filePath)
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
