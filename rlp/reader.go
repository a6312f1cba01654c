// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rlp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxItemSize bounds the size of a single top-level item read by a
// Reader. Larger declared sizes are treated as corrupted length prefixes.
const DefaultMaxItemSize = 1 << 30

// Reader reads a stream of concatenated top-level items from an io.Reader,
// keeping only a single item in memory at a time.
type Reader struct {
	in          *bufio.Reader
	offset      uint64
	maxItemSize uint64
}

func NewReader(in io.Reader) *Reader {
	return NewReaderWithLimit(in, DefaultMaxItemSize)
}

// NewReaderWithLimit creates a reader refusing items with a payload larger
// than the given number of bytes.
func NewReaderWithLimit(in io.Reader, maxItemSize uint64) *Reader {
	return &Reader{
		in:          bufio.NewReaderSize(in, 1<<20),
		maxItemSize: maxItemSize,
	}
}

// Offset returns the stream position of the next item.
func (r *Reader) Offset() uint64 {
	return r.offset
}

// Next reads the next item. At the regular end of the stream io.EOF is
// returned. A truncated or oversized item yields ErrMalformedLength; the
// stream can not be resumed after such an error.
func (r *Reader) Next() (Raw, error) {
	prefix, header, kind, contentSize, err := r.readHeader()
	if err != nil {
		return Raw{}, err
	}
	if contentSize > r.maxItemSize {
		return Raw{}, fmt.Errorf("%w: item at offset %d declares %d bytes, limit is %d", ErrMalformedLength, r.offset, contentSize, r.maxItemSize)
	}

	var buf []byte
	if prefix < 0x80 {
		buf = []byte{prefix}
	} else {
		buf = make([]byte, len(header)+int(contentSize))
		copy(buf, header)
		if _, err := io.ReadFull(r.in, buf[len(header):]); err != nil {
			return Raw{}, r.truncated(err)
		}
	}
	r.offset += uint64(len(buf))
	return Raw{kind: kind, encoded: buf, content: buf[len(buf)-int(contentSize):]}, nil
}

// Enter consumes the header of the next item, which has to be a list, and
// returns the size of its payload. Subsequent calls to Next produce the
// elements of the list. The size limit of the reader does not apply to the
// entered list.
func (r *Reader) Enter() (uint64, error) {
	_, header, kind, contentSize, err := r.readHeader()
	if err != nil {
		return 0, err
	}
	if kind != KindList {
		return 0, fmt.Errorf("%w: item at offset %d is not a list", ErrUnexpectedStructure, r.offset)
	}
	r.offset += uint64(len(header))
	return contentSize, nil
}

// readHeader reads the prefix of the next item, including the size bytes of
// long-form prefixes. The item's content is left in the stream. Single-byte
// items have an empty header; their value is the prefix.
func (r *Reader) readHeader() (byte, []byte, Kind, uint64, error) {
	var header [9]byte
	prefix, err := r.in.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, 0, 0, io.EOF
		}
		return 0, nil, 0, 0, err
	}
	header[0] = prefix

	headerSize := 1
	if (prefix > 0xb7 && prefix < 0xc0) || prefix > 0xf7 {
		headerSize += int(lengthOfLength(prefix))
		if _, err := io.ReadFull(r.in, header[1:headerSize]); err != nil {
			return 0, nil, 0, 0, r.truncated(err)
		}
	}

	kind, headerSize, contentSize, err := readHeader(header[:headerSize])
	if err != nil {
		return 0, nil, 0, 0, fmt.Errorf("item at offset %d: %w", r.offset, err)
	}
	return prefix, header[:headerSize], kind, contentSize, nil
}

func (r *Reader) truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: item at offset %d is truncated", ErrMalformedLength, r.offset)
	}
	return err
}

// lengthOfLength returns the number of size bytes following a long-form
// prefix.
func lengthOfLength(prefix byte) byte {
	if prefix >= 0xf8 {
		return prefix - 0xf7
	}
	return prefix - 0xb7
}
