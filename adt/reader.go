// Package adt provides a structural reader for root terrain tile files.
//
// A root tile file is a flat sequence of chunks. Every chunk starts with a
// 4-byte tag, stored byte-reversed ("REVM" for MVER), followed by a
// little-endian uint32 payload size and the payload itself. Only the chunks
// needed to recover per-chunk area identifiers are decoded; everything else
// is skipped.
package adt

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Version is the only supported MVER value.
	Version = 18

	chunkPrefixLength = 8
)

const (
	TagVersion  = "MVER"
	TagMapChunk = "MCNK"
)

var ErrInvalidFile = errors.New("adt: invalid file")
var ErrInvalidVersion = errors.New("adt: invalid version")
var ErrInvalidChunk = errors.New("adt: invalid chunk")

// Chunk is a raw tagged chunk.
type Chunk struct {
	Tag     string
	Offset  int
	Payload []byte
}

// VisitChunks calls visitor for every chunk in data, in file order.
func VisitChunks(data []byte, visitor func(Chunk) error) error {
	for offset := 0; offset < len(data); {
		if len(data)-offset < chunkPrefixLength {
			return fmt.Errorf("%w: truncated chunk header at offset %d", ErrInvalidChunk, offset)
		}
		tag := decodeTag(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4:])
		start := offset + chunkPrefixLength

		if uint64(size) > uint64(len(data)-start) {
			return fmt.Errorf("%w: %s at offset %d declares %d bytes, %d left", ErrInvalidChunk, tag, offset, size, len(data)-start)
		}

		end := start + int(size)
		if err := visitor(Chunk{Tag: tag, Offset: offset, Payload: data[start:end]}); err != nil {
			return err
		}
		offset = end
	}
	return nil
}

// ParseChunks returns MCNK records of a root tile file in file order.
// The first chunk must be MVER with a supported version.
// A well-formed file without MCNK chunks yields an empty slice.
func ParseChunks(data []byte) ([]MapChunk, error) {
	chunks := make([]MapChunk, 0)
	versionSeen := false

	err := VisitChunks(data, func(chunk Chunk) error {
		if !versionSeen {
			if chunk.Tag != TagVersion {
				return fmt.Errorf("%w: first chunk is %q, want %s", ErrInvalidFile, chunk.Tag, TagVersion)
			}
			if len(chunk.Payload) < 4 {
				return fmt.Errorf("%w: %s payload is %d bytes", ErrInvalidChunk, TagVersion, len(chunk.Payload))
			}
			if version := binary.LittleEndian.Uint32(chunk.Payload); version != Version {
				return fmt.Errorf("%w: %d", ErrInvalidVersion, version)
			}
			versionSeen = true
			return nil
		}

		if chunk.Tag != TagMapChunk {
			return nil
		}
		header, err := DeserializeChunkHeader(chunk.Payload)
		if err != nil {
			return fmt.Errorf("%w (offset %d)", err, chunk.Offset)
		}
		chunks = append(chunks, *header)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !versionSeen {
		return nil, fmt.Errorf("%w: no %s chunk", ErrInvalidFile, TagVersion)
	}

	return chunks, nil
}

// EncodeTag returns the on-disk (byte-reversed) form of a chunk tag.
func EncodeTag(tag string) [4]byte {
	var raw [4]byte
	for i := range 4 {
		raw[i] = tag[3-i]
	}
	return raw
}

func decodeTag(raw []byte) string {
	return string([]byte{raw[3], raw[2], raw[1], raw[0]})
}
