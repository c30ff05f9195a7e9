// Package sqlite provides a SQLite export of continent tile grids.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eak1mov/go-zonetiles/record"
	"github.com/eak1mov/go-zonetiles/tile"
)

// Reader reads tiles written by Writer.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader creates a new Reader for the given database path.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT area_ids FROM tiles WHERE continent = ? AND tile_index = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ReadTile returns the area IDs of a tile, or nil if the tile is not stored.
func (r *Reader) ReadTile(continent string, tileID tile.ID) ([]uint32, error) {
	var data []byte
	if err := r.stmt.QueryRow(continent, tileID.Index()).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record.Unpack(data)
}

// VisitTiles visits all stored tiles of a continent in ascending index order.
func (r *Reader) VisitTiles(continent string, visitor func(tile.ID, []uint32) error) error {
	rows, err := r.db.Query("SELECT tile_column, tile_row, area_ids FROM tiles WHERE continent = ? ORDER BY tile_index", continent)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var x, y uint32
		var data []byte

		if err := rows.Scan(&x, &y, &data); err != nil {
			return err
		}

		areaIDs, err := record.Unpack(data)
		if err != nil {
			return err
		}

		if err := visitor(tile.ID{X: x, Y: y}, areaIDs); err != nil {
			return err
		}
	}

	return rows.Err()
}
