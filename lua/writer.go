// Package lua reads and writes continent tile grids as generated Lua tables
// consumed by the addon runtime.
package lua

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-zonetiles/tile"
)

// Ext is the extension of generated artifacts.
const Ext = ".lua"

type writerConfig struct {
	Logger *slog.Logger
	Perm   os.FileMode
}

type WriterOption func(*writerConfig)

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

func WithPerm(perm os.FileMode) WriterOption {
	return func(c *writerConfig) { c.Perm = perm }
}

// FileName returns the artifact file name for a continent.
func FileName(continent string) string {
	return continent + "_tiles" + Ext
}

// Write emits the artifact for g. Tiles are written in ascending index order.
func Write(w io.Writer, g tile.Grid) error {
	bw := bufio.NewWriter(w)
	continent := g.Continent()

	fmt.Fprintf(bw, "-- Auto-generated AreaID grid for %s\n", commentText(continent))
	fmt.Fprintf(bw, "-- Each tile is %dx%d chunks (%d u32 AreaIDs), base64 encoded.\n",
		tile.ChunkSide, tile.ChunkSide, tile.ChunksPerTile)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "local _, addon = ...")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "local tiles = {")

	for index, record := range tile.IterTiles(g) {
		if _, err := fmt.Fprintf(bw, "  [%d] = [[%s]],\n", index, record); err != nil {
			return err
		}
	}

	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "addon:RegisterTileGrid(%s, {\n", Quote(continent))
	fmt.Fprintf(bw, "  name = %s,\n", Quote(continent))
	fmt.Fprintf(bw, "  tileSize = %d,\n", tile.ChunkSide)
	fmt.Fprintf(bw, "  tilesPerSide = %d,\n", tile.GridSide)
	fmt.Fprintln(bw, "  tiles = tiles,")
	fmt.Fprintln(bw, "})")

	return bw.Flush()
}

func commentText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}

// WriteFile writes the artifact for g to filePath. The file is written to a
// temporary file in the same directory and renamed into place, so a failed
// write leaves no artifact behind.
func WriteFile(filePath string, g tile.Grid, opts ...WriterOption) (err error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
		Perm:   0644,
	}
	for _, opt := range opts {
		opt(&config)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".tmp-*"+Ext)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	config.Logger.Debug("zonetiles: write tiles", "continent", g.Continent(), "path", tmpPath)
	if err = Write(tmp, g); err != nil {
		return err
	}
	if err = tmp.Chmod(config.Perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	config.Logger.Debug("zonetiles: rename", "from", tmpPath, "to", filePath)
	if err = os.Rename(tmpPath, filePath); err != nil {
		return err
	}

	config.Logger.Debug("zonetiles: done!")
	return nil
}
