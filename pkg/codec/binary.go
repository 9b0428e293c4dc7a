// Package codec reads and writes grids in the packed binary layout:
//
//	offset 0: rows          uint16, big-endian
//	offset 2: column rem    uint8, columns % 8
//	offset 3: rows*blocks   raw row-major blocks
//
// The column count is not stored; decoders recover it from the payload
// length and the remainder byte.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"bitlife/pkg/core"
)

// HeaderLen is the size of the fixed header preceding the blocks.
const HeaderLen = 3

// MaxBlocksPerRow is the widest row a stream may carry: 0xffff columns.
const MaxBlocksPerRow = (0xffff + 7) / 8

// ErrFormat is wrapped by every decode failure.
var ErrFormat = errors.New("codec: malformed grid stream")

// EncodedLen returns the number of bytes Encode writes for g.
func EncodedLen(g *core.BitGrid) int {
	return HeaderLen + len(g.Blocks())
}

// AppendBinary appends the encoded form of g to dst.
func AppendBinary(dst []byte, g *core.BitGrid) []byte {
	dst = binary.BigEndian.AppendUint16(dst, g.Rows())
	dst = append(dst, byte(g.Columns()%8))
	return append(dst, g.Blocks()...)
}

// Encode writes g to w.
func Encode(w io.Writer, g *core.BitGrid) error {
	buf := AppendBinary(make([]byte, 0, EncodedLen(g)), g)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("codec: write grid: %w", err)
	}
	return nil
}

// DecodeBytes decodes a grid held entirely in memory.
func DecodeBytes(b []byte) (*core.BitGrid, error) {
	return Decode(bytes.NewReader(b))
}

// Decode reads a grid from r until EOF. No grid is returned on error. At most
// rows*MaxBlocksPerRow payload bytes are read; a longer stream is rejected.
func Decode(r io.Reader) (*core.BitGrid, error) {
	var hdr [HeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header", ErrFormat)
		}
		return nil, fmt.Errorf("codec: read header: %w", err)
	}
	rows := binary.BigEndian.Uint16(hdr[:2])
	rem := hdr[2]
	if rows == 0 {
		return nil, fmt.Errorf("%w: zero rows", ErrFormat)
	}
	if rem > 7 {
		return nil, fmt.Errorf("%w: column remainder %d out of range", ErrFormat, rem)
	}

	limit := int(rows) * MaxBlocksPerRow
	payload, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("codec: read blocks: %w", err)
	}
	if len(payload) > limit {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes for %d rows", ErrFormat, limit, rows)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrFormat)
	}
	if len(payload)%int(rows) != 0 {
		return nil, fmt.Errorf("%w: %d bytes do not split into %d rows", ErrFormat, len(payload), rows)
	}

	blocks := len(payload) / int(rows)
	full := blocks
	if rem > 0 {
		full--
	}
	columns := full*8 + int(rem)
	if columns <= 0 || columns > 0xffff {
		return nil, fmt.Errorf("%w: %d columns out of range", ErrFormat, columns)
	}

	g, err := core.NewBitGrid(rows, uint16(columns))
	if err != nil {
		return nil, fmt.Errorf("codec: allocate %dx%d grid: %w", rows, columns, err)
	}
	mask := g.PaddingMask()
	for row := 0; row < int(rows); row++ {
		if last := payload[row*blocks+blocks-1]; last&^mask != 0 {
			return nil, fmt.Errorf("%w: row %d has padding bits set", ErrFormat, row)
		}
	}
	copy(g.Blocks(), payload)
	return g, nil
}
