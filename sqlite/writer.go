package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-zonetiles/record"
	"github.com/eak1mov/go-zonetiles/tile"
)

// Writer stores continent tile grids in a SQLite database.
type Writer struct {
	db     *sql.DB
	logger *slog.Logger
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter opens (or creates) the database at filePath for writing grids.
// It applies given options and initializes the schema.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (name TEXT PRIMARY KEY, value TEXT);
		CREATE TABLE IF NOT EXISTS tiles (
			continent TEXT,
			tile_index INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			area_ids BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		"format":       "zonetiles",
		"tileSize":     fmt.Sprint(tile.ChunkSide),
		"tilesPerSide": fmt.Sprint(tile.GridSide),
	}
	for k, v := range config.Metadata {
		metadata[k] = v
	}
	for k, v := range metadata {
		_, err = db.Exec("INSERT OR REPLACE INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	return &Writer{db, config.Logger}, nil
}

func (w *Writer) Close() error {
	return w.db.Close()
}

// WriteGrid replaces all stored tiles of the grid's continent.
func (w *Writer) WriteGrid(g tile.Grid) (err error) {
	continent := g.Continent()

	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	w.logger.Debug("zonetiles: clear continent", "continent", continent)
	if _, err = tx.Exec("DELETE FROM tiles WHERE continent = ?", continent); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO tiles (continent, tile_index, tile_column, tile_row, area_ids) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	count := 0
	for index, text := range tile.IterTiles(g) {
		var areaIDs []uint32
		areaIDs, err = record.Decode(text)
		if err != nil {
			return fmt.Errorf("tile %d: %w", index, err)
		}
		var data []byte
		data, err = record.Pack(areaIDs)
		if err != nil {
			return err
		}
		tileID := tile.FromIndex(index)
		if _, err = stmt.Exec(continent, index, tileID.X, tileID.Y, data); err != nil {
			return err
		}
		count++
	}

	w.logger.Debug("zonetiles: commit", "continent", continent, "tiles", count)
	return tx.Commit()
}

// Finalize creates the lookup index. It must be called once all grids are written.
func (w *Writer) Finalize() error {
	w.logger.Debug("zonetiles: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS tile_index ON tiles (continent, tile_index)")

	w.logger.Debug("zonetiles: done!")
	return err
}
