package adt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ChunkHeader is the fixed-size header at the start of every MCNK chunk.
type ChunkHeader struct {
	Flags                uint32
	IndexX               uint32
	IndexY               uint32
	NLayers              uint32
	NDoodadRefs          uint32
	OfsHeight            uint32
	OfsNormal            uint32
	OfsLayer             uint32
	OfsRefs              uint32
	OfsAlpha             uint32
	SizeAlpha            uint32
	OfsShadow            uint32
	SizeShadow           uint32
	AreaID               uint32
	NMapObjRefs          uint32
	HolesLowRes          uint16
	Unknown              uint16
	LowQualityTextureMap [16]byte
	NoEffectDoodad       [8]byte
	OfsSndEmitters       uint32
	NSndEmitters         uint32
	OfsLiquid            uint32
	SizeLiquid           uint32
	Position             [3]float32
	OfsMCCV              uint32
	OfsMCLV              uint32
	Unused               uint32
}

// MapChunk is a single terrain chunk record of a root tile file.
type MapChunk = ChunkHeader

const (
	ChunkHeaderLength = 128

	// AreaIDOffset is the offset of the area identifier inside ChunkHeader.
	AreaIDOffset = 0x34
)

func SerializeChunkHeader(header *ChunkHeader) []byte {
	var buffer bytes.Buffer
	binary.Write(&buffer, binary.LittleEndian, header)
	return buffer.Bytes()
}

func DeserializeChunkHeader(payload []byte) (*ChunkHeader, error) {
	if len(payload) < ChunkHeaderLength {
		return nil, fmt.Errorf("%w: MCNK payload is %d bytes, header needs %d", ErrInvalidChunk, len(payload), ChunkHeaderLength)
	}
	header := ChunkHeader{}
	if err := binary.Read(bytes.NewReader(payload[:ChunkHeaderLength]), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}
	return &header, nil
}
