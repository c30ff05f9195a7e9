// Package tile provides tile coordinates and the interfaces shared by
// tile grid producers and consumers.
package tile

const (
	// GridSide is the number of tiles along each side of a continent grid.
	GridSide = 64

	// ChunkSide is the number of chunks along each side of a tile.
	ChunkSide = 16

	// ChunksPerTile is the number of area identifiers stored per tile.
	ChunksPerTile = ChunkSide * ChunkSide
)

// ID represents tile coordinates in a continent's 64x64 grid.
type ID struct {
	X uint32
	Y uint32
}

// Index is a tile position packed into a single integer (Y*64+X).
type Index = uint32

func (t ID) Valid() bool {
	return t.X < GridSide && t.Y < GridSide
}

// Index returns the packed tile index. It is a bijection for valid IDs.
// IDs returned by ParseRootName never overflow.
func (t ID) Index() Index {
	return t.Y*GridSide + t.X
}

// FromIndex is the inverse of ID.Index for indices below GridSide*GridSide.
func FromIndex(index Index) ID {
	return ID{X: index % GridSide, Y: index / GridSide}
}

// Visitor defines an interface for enumerating encoded tile records.
type Visitor interface {
	// VisitTiles visits all tiles, calling the visitor for each.
	// Tiles are visited in ascending index order.
	VisitTiles(visitor func(Index, string) error) error
}

// Grid is a continent's set of encoded tile records.
type Grid interface {
	Visitor
	Continent() string
}
