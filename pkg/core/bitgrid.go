package core

import (
	"errors"
	"math/bits"
)

// MaxGridBytes caps the number of blocks a single BitGrid may allocate.
const MaxGridBytes = 1 << 28

var (
	// ErrInvalidSize is returned when a grid is requested with a zero dimension.
	ErrInvalidSize = errors.New("core: grid rows and columns must be non-zero")
	// ErrGridTooLarge is returned when a grid would exceed MaxGridBytes.
	ErrGridTooLarge = errors.New("core: grid exceeds maximum size")
	// ErrSizeMismatch is returned when two grids of different dimensions are combined.
	ErrSizeMismatch = errors.New("core: grid dimensions differ")
)

// BitGrid stores one generation of cells packed eight to a byte. Cell (r, c)
// is bit c%8 of block c/8 in row r; rows are laid out back to back.
type BitGrid struct {
	rows    uint16
	columns uint16
	blocks  uint16
	data    []byte
}

// BlocksFor returns how many blocks are needed to hold the given columns.
func BlocksFor(columns uint16) uint16 {
	b := columns / 8
	if columns%8 != 0 {
		b++
	}
	return b
}

// NewBitGrid allocates an all-dead grid with the given dimensions.
func NewBitGrid(rows, columns uint16) (*BitGrid, error) {
	if rows == 0 || columns == 0 {
		return nil, ErrInvalidSize
	}
	blocks := BlocksFor(columns)
	total := int(rows) * int(blocks)
	if total > MaxGridBytes {
		return nil, ErrGridTooLarge
	}
	return &BitGrid{rows: rows, columns: columns, blocks: blocks, data: make([]byte, total)}, nil
}

// Rows returns the number of rows.
func (g *BitGrid) Rows() uint16 { return g.rows }

// Columns returns the number of columns.
func (g *BitGrid) Columns() uint16 { return g.columns }

// BlocksPerRow returns the number of bytes backing each row.
func (g *BitGrid) BlocksPerRow() uint16 { return g.blocks }

// Blocks exposes the backing row-major block slice.
func (g *BitGrid) Blocks() []byte { return g.data }

// IsAlive reports whether the cell is alive. Coordinates outside the grid are
// always dead.
func (g *BitGrid) IsAlive(row, column uint16) bool {
	if row >= g.rows || column >= g.columns {
		return false
	}
	return g.data[g.index(row, column/8)]&(1<<(column%8)) != 0
}

// SetAlive marks a cell alive. Out-of-range coordinates are ignored.
func (g *BitGrid) SetAlive(row, column uint16) {
	if row >= g.rows || column >= g.columns {
		return
	}
	g.data[g.index(row, column/8)] |= 1 << (column % 8)
}

// SetDead marks a cell dead. Out-of-range coordinates are ignored.
func (g *BitGrid) SetDead(row, column uint16) {
	if row >= g.rows || column >= g.columns {
		return
	}
	g.data[g.index(row, column/8)] &^= 1 << (column % 8)
}

// Set writes a single cell state.
func (g *BitGrid) Set(row, column uint16, alive bool) {
	if alive {
		g.SetAlive(row, column)
		return
	}
	g.SetDead(row, column)
}

// Block returns the raw block at (row, block), or 0 when out of range.
func (g *BitGrid) Block(row, block uint16) byte {
	if row >= g.rows || block >= g.blocks {
		return 0
	}
	return g.data[g.index(row, block)]
}

// SetBlock replaces a whole block with v. Bits that fall past the last
// column are cleared so padding never carries live cells. Out-of-range
// coordinates are ignored.
func (g *BitGrid) SetBlock(row, block uint16, v byte) {
	if row >= g.rows || block >= g.blocks {
		return
	}
	if block == g.blocks-1 {
		v &= g.PaddingMask()
	}
	g.data[g.index(row, block)] = v
}

// PaddingMask returns the bits of the last block in each row that map to
// real columns.
func (g *BitGrid) PaddingMask() byte {
	rem := g.columns % 8
	if rem == 0 {
		return 0xff
	}
	return byte(1)<<rem - 1
}

// Clear sets every cell to dead.
func (g *BitGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// CopyFrom overwrites g with the cells of src.
func (g *BitGrid) CopyFrom(src *BitGrid) error {
	if !g.SameSize(src) {
		return ErrSizeMismatch
	}
	copy(g.data, src.data)
	return nil
}

// Clone returns an independent copy of the grid.
func (g *BitGrid) Clone() *BitGrid {
	c := *g
	c.data = append([]byte(nil), g.data...)
	return &c
}

// SameSize reports whether both grids have identical dimensions.
func (g *BitGrid) SameSize(other *BitGrid) bool {
	return other != nil && g.rows == other.rows && g.columns == other.columns
}

// Equal reports whether both grids have the same dimensions and live cells.
// Padding bits are ignored.
func (g *BitGrid) Equal(other *BitGrid) bool {
	if !g.SameSize(other) {
		return false
	}
	mask := g.PaddingMask()
	for r := uint16(0); r < g.rows; r++ {
		for b := uint16(0); b < g.blocks; b++ {
			x, y := g.data[g.index(r, b)], other.data[g.index(r, b)]
			if b == g.blocks-1 {
				x &= mask
				y &= mask
			}
			if x != y {
				return false
			}
		}
	}
	return true
}

// Population counts the live cells.
func (g *BitGrid) Population() int {
	mask := g.PaddingMask()
	total := 0
	for r := uint16(0); r < g.rows; r++ {
		for b := uint16(0); b < g.blocks; b++ {
			v := g.data[g.index(r, b)]
			if b == g.blocks-1 {
				v &= mask
			}
			total += bits.OnesCount8(v)
		}
	}
	return total
}

func (g *BitGrid) index(row, block uint16) int {
	return int(row)*int(g.blocks) + int(block)
}
