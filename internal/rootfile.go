package internal

import (
	"bytes"
	"encoding/binary"

	"github.com/eak1mov/go-zonetiles/adt"
	"github.com/eak1mov/go-zonetiles/tile"
)

// AppendChunk appends a tagged chunk in on-disk layout to buf.
func AppendChunk(buf []byte, tag string, payload []byte) []byte {
	rawTag := adt.EncodeTag(tag)
	buf = append(buf, rawTag[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(payload)))
	return append(buf, payload...)
}

// BuildRootTile returns a well-formed root tile file with one MCNK chunk
// per area ID, interleaved with chunks the reader is expected to skip.
func BuildRootTile(areaIDs ...uint32) []byte {
	buf := AppendChunk(nil, adt.TagVersion, binary.LittleEndian.AppendUint32(nil, adt.Version))
	buf = AppendChunk(buf, "MHDR", make([]byte, 64))
	buf = AppendChunk(buf, "MCIN", make([]byte, 16*tile.ChunksPerTile))

	for i, areaID := range areaIDs {
		header := adt.ChunkHeader{
			IndexX: uint32(i % tile.ChunkSide),
			IndexY: uint32(i / tile.ChunkSide),
			AreaID: areaID,
		}
		var payload bytes.Buffer
		payload.Write(adt.SerializeChunkHeader(&header))
		payload.Write(AppendChunk(nil, "MCVT", make([]byte, 145*4)))
		buf = AppendChunk(buf, adt.TagMapChunk, payload.Bytes())
	}

	return AppendChunk(buf, "MFBO", make([]byte, 36))
}
