// Package grid collects encoded tile records of one continent.
package grid

import (
	"iter"
	"maps"
	"slices"

	"github.com/eak1mov/go-zonetiles/tile"
)

// Grid maps tile indices to encoded records. Inserting an index twice
// keeps the last record.
type Grid struct {
	continent  string
	tiles      map[tile.Index]string
	overwrites int
}

func New(continent string) *Grid {
	return &Grid{
		continent: continent,
		tiles:     make(map[tile.Index]string),
	}
}

func (g *Grid) Continent() string {
	return g.continent
}

func (g *Grid) Insert(index tile.Index, record string) {
	if _, exists := g.tiles[index]; exists {
		g.overwrites++
	}
	g.tiles[index] = record
}

func (g *Grid) Record(index tile.Index) (string, bool) {
	record, found := g.tiles[index]
	return record, found
}

func (g *Grid) Len() int {
	return len(g.tiles)
}

// Overwrites returns how many inserts replaced an existing record.
func (g *Grid) Overwrites() int {
	return g.overwrites
}

// Tiles returns an iterator over records in ascending index order.
func (g *Grid) Tiles() iter.Seq2[tile.Index, string] {
	return func(yield func(tile.Index, string) bool) {
		for _, index := range slices.Sorted(maps.Keys(g.tiles)) {
			if !yield(index, g.tiles[index]) {
				return
			}
		}
	}
}

func (g *Grid) VisitTiles(visitor func(tile.Index, string) error) error {
	for index, record := range g.Tiles() {
		if err := visitor(index, record); err != nil {
			return err
		}
	}
	return nil
}
