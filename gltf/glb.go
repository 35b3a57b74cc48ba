// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// GLB chunk header.
type glbChunk [2]uint32

// Indices in glbChunk.
const (
	chunkLength = 0
	chunkType   = 1
	// Then payload.
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// glbChunk[chunkType].
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942

	headerSize = 12
	chunkSize  = 8
)

var (
	// ErrNotGLB means that the data is not a complete binary
	// glTF (version 2).
	ErrNotGLB = errors.New("gltf: not a GLB blob")
	// ErrChunk means that a GLB chunk is malformed.
	ErrChunk = errors.New("gltf: invalid GLB chunk")
)

// pad4 returns the number of bytes needed to align n
// to 4 bytes.
func pad4(n int) int { return (4 - n&3) & 3 }

// EncodeGLB writes gltf and bin into w as a binary glTF
// (version 2).
// The JSON chunk is padded with spaces and the BIN chunk
// with zeros. The BIN chunk is omitted if bin is empty.
func EncodeGLB(w io.Writer, gltf *GLTF, bin []byte) error {
	js, err := Marshal(gltf)
	if err != nil {
		return err
	}
	js = append(js, bytes.Repeat([]byte{' '}, pad4(len(js)))...)
	length := headerSize + chunkSize + len(js)
	var binPad int
	if len(bin) > 0 {
		binPad = pad4(len(bin))
		length += chunkSize + len(bin) + binPad
	}
	if uint64(length) > 1<<32-1 {
		return fmt.Errorf("gltf: GLB length %d exceeds limit", length)
	}

	b := make([]byte, 0, length)
	b = binary.LittleEndian.AppendUint32(b, magic)
	b = binary.LittleEndian.AppendUint32(b, 2)
	b = binary.LittleEndian.AppendUint32(b, uint32(length))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(js)))
	b = binary.LittleEndian.AppendUint32(b, typeJSON)
	b = append(b, js...)
	if len(bin) > 0 {
		b = binary.LittleEndian.AppendUint32(b, uint32(len(bin)+binPad))
		b = binary.LittleEndian.AppendUint32(b, typeBIN)
		b = append(b, bin...)
		b = append(b, make([]byte, binPad)...)
	}
	_, err = w.Write(b)
	return err
}

// DecodeGLB decodes a binary glTF read from r.
// It returns the JSON content and the payload of the BIN
// chunk (nil if there is none). Unknown chunks are skipped.
func DecodeGLB(r io.Reader) (*GLTF, []byte, error) {
	var h glbHeader
	if err := binary.Read(r, binary.LittleEndian, h[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotGLB, err)
	}
	if h[headerMagic] != magic || h[headerVersion] != 2 {
		return nil, nil, ErrNotGLB
	}
	if h[headerLength] < headerSize+chunkSize {
		return nil, nil, ErrNotGLB
	}
	// The declared length is not trusted for allocation.
	size := int64(h[headerLength]) - headerSize
	body, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotGLB, err)
	}
	if int64(len(body)) < size {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotGLB, io.ErrUnexpectedEOF)
	}

	var gltf *GLTF
	var bin []byte
	for i := 0; len(body) > 0; i++ {
		if len(body) < chunkSize {
			return nil, nil, ErrChunk
		}
		n := binary.LittleEndian.Uint32(body[chunkLength*4:])
		typ := binary.LittleEndian.Uint32(body[chunkType*4:])
		body = body[chunkSize:]
		if uint64(n) > uint64(len(body)) || n&3 != 0 {
			return nil, nil, ErrChunk
		}
		data := body[:n]
		body = body[n:]
		switch {
		case i == 0:
			if typ != typeJSON || n == 0 {
				return nil, nil, ErrChunk
			}
			if gltf, err = Decode(bytes.NewReader(data)); err != nil {
				return nil, nil, err
			}
		case i == 1 && typ == typeBIN:
			bin = data
		}
	}
	return gltf, bin, nil
}

// IsGLB returns whether r refers to a binary glTF (version 2).
// It assumes that r was positioned accordingly, and
// consumes the GLB header.
func IsGLB(r io.Reader) bool {
	var h glbHeader
	err := binary.Read(r, binary.LittleEndian, h[:])
	switch {
	case err != nil, h[headerMagic] != magic, h[headerVersion] != 2:
		return false
	default:
		return true
	}
}
