package record

import (
	"errors"
	"fmt"

	"github.com/eak1mov/go-zonetiles/adt"
	"github.com/eak1mov/go-zonetiles/tile"
)

// ErrNoData reports a tile file that parsed successfully but has no chunks.
var ErrNoData = errors.New("record: no data")

// ErrTooManyChunks reports a tile file with more chunks than a tile holds.
var ErrTooManyChunks = errors.New("record: too many chunks")

// Parser decodes the chunk records of a tile file.
type Parser interface {
	ParseChunks(data []byte) ([]adt.MapChunk, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(data []byte) ([]adt.MapChunk, error)

func (f ParserFunc) ParseChunks(data []byte) ([]adt.MapChunk, error) {
	return f(data)
}

// Extractor projects parsed chunk records to a fixed-length area ID sequence.
type Extractor struct {
	parser Parser
}

// NewExtractor creates an Extractor backed by parser.
// A nil parser selects adt.ParseChunks.
func NewExtractor(parser Parser) *Extractor {
	if parser == nil {
		parser = ParserFunc(adt.ParseChunks)
	}
	return &Extractor{parser: parser}
}

// Extract returns exactly 256 area IDs in parser order, zero-padded at the tail.
// It returns ErrNoData when the file has no chunk records.
func (e *Extractor) Extract(data []byte) ([]uint32, error) {
	chunks, err := e.parser.ParseChunks(data)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, ErrNoData
	}
	if len(chunks) > tile.ChunksPerTile {
		return nil, fmt.Errorf("%w: %d records, tile holds %d", ErrTooManyChunks, len(chunks), tile.ChunksPerTile)
	}

	areaIDs := make([]uint32, tile.ChunksPerTile)
	for i, chunk := range chunks {
		areaIDs[i] = chunk.AreaID
	}
	return areaIDs, nil
}

// Extract is a shortcut for NewExtractor(nil).Extract(data).
func Extract(data []byte) ([]uint32, error) {
	return NewExtractor(nil).Extract(data)
}
