package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"bitlife/pkg/core"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks snapshot paths whose stream is zstd-compressed.
const CompressedExt = ".zst"

// Compressed reports whether path names a zstd snapshot.
func Compressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

// Save writes g to path, creating or truncating the file.
func Save(path string, g *core.BitGrid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("codec: close snapshot: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if Compressed(path) {
		if err := encodeCompressed(w, g); err != nil {
			return err
		}
	} else if err := Encode(w, g); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("codec: flush snapshot: %w", err)
	}
	return nil
}

// Load reads a grid from path.
func Load(path string) (*core.BitGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codec: open snapshot: %w", err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if Compressed(path) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("codec: zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	return Decode(r)
}

func encodeCompressed(w io.Writer, g *core.BitGrid) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("codec: zstd writer: %w", err)
	}
	if err := Encode(enc, g); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("codec: zstd close: %w", err)
	}
	return nil
}
