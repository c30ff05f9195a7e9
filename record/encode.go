// Package record converts per-chunk area identifiers of a tile into the
// packed text record stored in generated tile grids.
//
// A record is 256 little-endian uint32 values (1024 bytes), encoded with
// standard padded base64. No compression is applied.
package record

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/eak1mov/go-zonetiles/tile"
)

// Length is the size of a packed record in bytes.
const Length = tile.ChunksPerTile * 4

var ErrLengthMismatch = errors.New("record: length mismatch")

// Pack returns the raw 1024-byte layout of exactly 256 area IDs.
func Pack(areaIDs []uint32) ([]byte, error) {
	if len(areaIDs) != tile.ChunksPerTile {
		return nil, fmt.Errorf("%w: expected %d area IDs, got %d", ErrLengthMismatch, tile.ChunksPerTile, len(areaIDs))
	}
	var buffer bytes.Buffer
	buffer.Grow(Length)
	if err := binary.Write(&buffer, binary.LittleEndian, areaIDs); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Unpack is the inverse of Pack.
func Unpack(data []byte) ([]uint32, error) {
	if len(data) != Length {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrLengthMismatch, Length, len(data))
	}
	areaIDs := make([]uint32, tile.ChunksPerTile)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, areaIDs); err != nil {
		return nil, err
	}
	return areaIDs, nil
}

// Encode packs exactly 256 area IDs and returns their text record.
func Encode(areaIDs []uint32) (string, error) {
	data, err := Pack(areaIDs)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode returns the 256 area IDs of a text record.
func Decode(text string) ([]uint32, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("record: failed to decode: %w", err)
	}
	return Unpack(data)
}
