package codec

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"bitlife/pkg/core"
)

func randomGrid(t *testing.T, rows, cols uint16, seed int64) *core.BitGrid {
	t.Helper()
	g, err := core.NewBitGrid(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	core.NewRNG(seed).FillBlocks(g)
	return g
}

func TestEncodeLayout(t *testing.T) {
	g := randomGrid(t, 10, 13, 1)
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if len(out) != 23 || EncodedLen(g) != 23 {
		t.Fatalf("encoded %d bytes (EncodedLen %d), expected 23", len(out), EncodedLen(g))
	}
	if out[0] != 0 || out[1] != 10 {
		t.Fatalf("rows header=%v, expected big-endian 10", out[:2])
	}
	if out[2] != 5 {
		t.Fatalf("remainder=%d, expected 5", out[2])
	}
	if !slices.Equal(out[3:], g.Blocks()) {
		t.Fatal("blocks should follow the header verbatim")
	}
}

func TestEncodeRowsBigEndian(t *testing.T) {
	g, _ := core.NewBitGrid(0x0102, 8)
	out := AppendBinary(nil, g)
	if out[0] != 0x01 || out[1] != 0x02 || out[2] != 0 {
		t.Fatalf("header=%v, expected [1 2 0]", out[:3])
	}
	if len(out) != 3+0x0102 {
		t.Fatalf("length=%d", len(out))
	}
}

func TestRoundTrip(t *testing.T) {
	sizes := [][2]uint16{{10, 13}, {24, 24}, {500, 500}, {1, 1}, {7, 8}, {3, 65535}}
	for i, size := range sizes {
		g := randomGrid(t, size[0], size[1], int64(i))
		got, err := DecodeBytes(AppendBinary(nil, g))
		if err != nil {
			t.Fatalf("%dx%d: %v", size[0], size[1], err)
		}
		if got.Rows() != g.Rows() || got.Columns() != g.Columns() {
			t.Fatalf("dimensions %dx%d, expected %dx%d", got.Rows(), got.Columns(), g.Rows(), g.Columns())
		}
		if !got.Equal(g) || !slices.Equal(got.Blocks(), g.Blocks()) {
			t.Fatalf("%dx%d: decoded grid differs", size[0], size[1])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string][]byte{
		"empty":          {},
		"short header":   {0, 1},
		"zero rows":      {0, 0, 3, 0xff},
		"bad remainder":  {0, 1, 9, 0x01},
		"no blocks":      {0, 2, 0},
		"uneven rows":    {0, 2, 0, 1, 2, 3},
		"padding bits":   {0, 1, 3, 0x08},
		"too many cols":  append([]byte{0, 1, 0}, make([]byte, 8192)...),
		"padding in row": {0, 2, 4, 0x0f, 0x10},
	}
	for name, in := range cases {
		g, err := DecodeBytes(in)
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("%s: err=%v, expected ErrFormat", name, err)
		}
		if g != nil {
			t.Fatalf("%s: grid returned alongside error", name)
		}
	}
}

func TestDecodeMaxColumns(t *testing.T) {
	// 8192 blocks with remainder 7 is the widest representable row.
	in := append([]byte{0, 1, 7}, make([]byte, 8192)...)
	g, err := DecodeBytes(in)
	if err != nil {
		t.Fatal(err)
	}
	if g.Columns() != 65535 {
		t.Fatalf("columns=%d, expected 65535", g.Columns())
	}
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func TestDecodeStopsAtRowLimit(t *testing.T) {
	// One row can hold at most MaxBlocksPerRow blocks; a 64 MiB tail must
	// be rejected without being buffered.
	src := &countingReader{r: io.MultiReader(
		bytes.NewReader([]byte{0, 1, 0}),
		io.LimitReader(zeroReader{}, 64<<20),
	)}
	g, err := Decode(src)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err=%v, expected ErrFormat", err)
	}
	if g != nil {
		t.Fatal("grid returned alongside error")
	}
	if max := int64(HeaderLen + MaxBlocksPerRow + 1); src.n > max {
		t.Fatalf("read %d bytes, expected at most %d", src.n, max)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestEncodePropagatesWriteErrors(t *testing.T) {
	g := randomGrid(t, 2, 2, 0)
	if err := Encode(failingWriter{}, g); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := randomGrid(t, 64, 77, 5)
	for _, name := range []string{"save.bin", "save.bin.zst"} {
		path := filepath.Join(dir, name)
		if err := Save(path, g); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !got.Equal(g) {
			t.Fatalf("%s: loaded grid differs", name)
		}
	}
}

func TestSnapshotSuffixSelectsCompression(t *testing.T) {
	dir := t.TempDir()
	g, _ := core.NewBitGrid(200, 200)
	raw := filepath.Join(dir, "empty")
	packed := filepath.Join(dir, "empty.zst")
	if err := Save(raw, g); err != nil {
		t.Fatal(err)
	}
	if err := Save(packed, g); err != nil {
		t.Fatal(err)
	}
	rawGrid, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rawGrid.Columns() != 200 {
		t.Fatalf("columns=%d, expected 200", rawGrid.Columns())
	}
	rawInfo, err := os.Stat(raw)
	if err != nil {
		t.Fatal(err)
	}
	packedInfo, err := os.Stat(packed)
	if err != nil {
		t.Fatal(err)
	}
	if rawInfo.Size() != int64(EncodedLen(g)) {
		t.Fatalf("raw snapshot is %d bytes, expected %d", rawInfo.Size(), EncodedLen(g))
	}
	if packedInfo.Size() >= rawInfo.Size() {
		t.Fatalf("zstd snapshot (%d bytes) should be smaller than raw (%d bytes)", packedInfo.Size(), rawInfo.Size())
	}
	if _, err := Load(packed + ".missing"); err == nil {
		t.Fatal("loading a missing file should fail")
	}
	if !Compressed(packed) || Compressed(raw) {
		t.Fatal("Compressed should key off the .zst suffix")
	}
}
