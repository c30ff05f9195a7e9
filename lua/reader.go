package lua

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"

	"github.com/eak1mov/go-zonetiles/tile"
)

var ErrInvalidArtifact = errors.New("zonetiles: invalid artifact")

var (
	entryRegexp        = regexp.MustCompile(`^\s*\[(\d+)\] = \[\[([A-Za-z0-9+/=]*)\]\],$`)
	registerRegexp     = regexp.MustCompile(`^addon:RegisterTileGrid\((".*"), \{$`)
	tileSizeRegexp     = regexp.MustCompile(`^\s*tileSize = (\d+),$`)
	tilesPerSideRegexp = regexp.MustCompile(`^\s*tilesPerSide = (\d+),$`)
)

// Table is the content of a generated artifact.
type Table struct {
	Name         string
	TileSize     int
	TilesPerSide int
	Tiles        map[tile.Index]string
}

func (t *Table) Continent() string {
	return t.Name
}

func (t *Table) VisitTiles(visitor func(tile.Index, string) error) error {
	for _, index := range slices.Sorted(maps.Keys(t.Tiles)) {
		if err := visitor(index, t.Tiles[index]); err != nil {
			return err
		}
	}
	return nil
}

// Read parses an artifact produced by Write.
func Read(r io.Reader) (*Table, error) {
	table := &Table{Tiles: make(map[tile.Index]string)}
	registered := false

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()

		if m := entryRegexp.FindStringSubmatch(line); m != nil {
			index, err := strconv.ParseUint(m[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidArtifact, lineNo, err)
			}
			table.Tiles[tile.Index(index)] = m[2]
			continue
		}
		if m := registerRegexp.FindStringSubmatch(line); m != nil {
			name, err := Unquote(m[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidArtifact, lineNo, err)
			}
			table.Name = name
			registered = true
			continue
		}
		if m := tileSizeRegexp.FindStringSubmatch(line); m != nil {
			table.TileSize, _ = strconv.Atoi(m[1])
			continue
		}
		if m := tilesPerSideRegexp.FindStringSubmatch(line); m != nil {
			table.TilesPerSide, _ = strconv.Atoi(m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !registered {
		return nil, fmt.Errorf("%w: missing RegisterTileGrid call", ErrInvalidArtifact)
	}
	return table, nil
}

func ReadFile(filePath string) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}
