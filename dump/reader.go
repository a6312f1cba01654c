// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package dump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Open opens the dump file at the given path. Files compressed with zstd or
// gzip are detected by their magic bytes and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader, err := NewReader(file)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to open %s: %w", path, err), file.Close())
	}
	return &fileReader{ReadCloser: reader, file: file}, nil
}

// NewReader wraps the given input, decompressing it if it starts with the
// magic bytes of a zstd or gzip stream. The returned reader does not close
// the given input.
func NewReader(in io.Reader) (io.ReadCloser, error) {
	buffered := bufio.NewReaderSize(in, 1<<16)
	magic, err := buffered.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("invalid zstd stream: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case bytes.HasPrefix(magic, gzipMagic):
		decoder, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("invalid gzip stream: %w", err)
		}
		return decoder, nil
	default:
		return io.NopCloser(buffered), nil
	}
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.file.Close())
}
