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
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
)

const (
	// ErrEmptyInput is reported when an item is expected but no input is left.
	ErrEmptyInput = common.ConstError("empty input")
	// ErrMalformedLength is reported if a length prefix is inconsistent with
	// the available input.
	ErrMalformedLength = common.ConstError("malformed length prefix")
	// ErrUnexpectedStructure is reported if a string is found where a list is
	// required or vice versa.
	ErrUnexpectedStructure = common.ConstError("unexpected structure")
	// ErrTrailingBytes is reported if an item does not consume its full input.
	ErrTrailingBytes = common.ConstError("trailing bytes after item")
	// ErrValueOverflow is reported if an integer does not fit its target type.
	ErrValueOverflow = common.ConstError("value overflows target type")
	// ErrNoSuchElement is reported when accessing a list element beyond its end.
	ErrNoSuchElement = common.ConstError("no such list element")
)

// Kind distinguishes the two kinds of RLP items.
type Kind byte

const (
	KindString Kind = iota
	KindList
)

func (k Kind) String() string {
	if k == KindList {
		return "list"
	}
	return "string"
}

// Raw is a validated view on a single encoded item. Only the outer header of
// the item is checked when creating a Raw; children of a list are parsed
// on demand. A Raw shares its memory with the buffer it was created from.
type Raw struct {
	kind    Kind
	encoded []byte
	content []byte
}

// Decode decodes a buffer containing exactly one item into a fully
// materialized item tree.
func Decode(buf []byte) (Item, error) {
	raw, err := DecodeRaw(buf)
	if err != nil {
		return nil, err
	}
	return raw.Item()
}

// DecodeRaw validates the header of the single item contained in buf.
func DecodeRaw(buf []byte) (Raw, error) {
	raw, rest, err := Split(buf)
	if err != nil {
		return Raw{}, err
	}
	if len(rest) > 0 {
		return Raw{}, fmt.Errorf("%w: %d bytes left", ErrTrailingBytes, len(rest))
	}
	return raw, nil
}

// Split separates the first item in buf from the rest of the buffer.
func Split(buf []byte) (Raw, []byte, error) {
	kind, headerSize, contentSize, err := readHeader(buf)
	if err != nil {
		return Raw{}, nil, err
	}
	if contentSize > uint64(len(buf)-headerSize) {
		return Raw{}, nil, fmt.Errorf("%w: item declares %d bytes, only %d available", ErrMalformedLength, contentSize, len(buf)-headerSize)
	}
	end := headerSize + int(contentSize)
	return Raw{
		kind:    kind,
		encoded: buf[:end:end],
		content: buf[headerSize:end:end],
	}, buf[end:], nil
}

// readHeader parses the prefix of the item at the start of the buffer and
// returns the item's kind, the size of the prefix and the declared size of
// the payload. The payload itself is not checked.
func readHeader(buf []byte) (Kind, int, uint64, error) {
	if len(buf) == 0 {
		return KindString, 0, 0, ErrEmptyInput
	}
	prefix := buf[0]
	switch {
	case prefix < 0x80:
		return KindString, 0, 1, nil
	case prefix <= 0xb7:
		return KindString, 1, uint64(prefix - 0x80), nil
	case prefix < 0xc0:
		size, err := readSize(buf[1:], prefix-0xb7)
		return KindString, 1 + int(prefix-0xb7), size, err
	case prefix <= 0xf7:
		return KindList, 1, uint64(prefix - 0xc0), nil
	default:
		size, err := readSize(buf[1:], prefix-0xf7)
		return KindList, 1 + int(prefix-0xf7), size, err
	}
}

// readSize reads a big-endian length of slen bytes.
func readSize(b []byte, slen byte) (uint64, error) {
	if int(slen) > len(b) {
		return 0, fmt.Errorf("%w: expected %d length bytes, got %d", ErrMalformedLength, slen, len(b))
	}
	var s uint64
	for _, cur := range b[:slen] {
		s = s<<8 | uint64(cur)
	}
	return s, nil
}

// Kind returns whether this item is a string or a list.
func (r Raw) Kind() Kind {
	return r.kind
}

func (r Raw) IsList() bool {
	return r.kind == KindList
}

// IsEmpty returns true for the zero-length string, the encoding used for
// absent optional fields.
func (r Raw) IsEmpty() bool {
	return r.kind == KindString && len(r.content) == 0
}

// Encoded returns the full encoding of the item including its prefix.
func (r Raw) Encoded() []byte {
	return r.encoded
}

// Content returns the payload of the item without its prefix.
func (r Raw) Content() []byte {
	return r.content
}

// Bytes returns the payload of a string item.
func (r Raw) Bytes() ([]byte, error) {
	if r.kind != KindString {
		return nil, fmt.Errorf("%w: expected string, got %v", ErrUnexpectedStructure, r.kind)
	}
	return r.content, nil
}

// Uint64 interprets a string item as a big-endian unsigned integer.
func (r Raw) Uint64() (uint64, error) {
	data, err := r.Bytes()
	if err != nil {
		return 0, err
	}
	if len(data) > 8 {
		return 0, fmt.Errorf("%w: %d bytes do not fit into uint64", ErrValueOverflow, len(data))
	}
	var res uint64
	for _, cur := range data {
		res = res<<8 | uint64(cur)
	}
	return res, nil
}

// BigInt interprets a string item as a big-endian unsigned integer of
// arbitrary size.
func (r Raw) BigInt() (*big.Int, error) {
	data, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(data), nil
}

// Len returns the number of elements of a list item.
func (r Raw) Len() (int, error) {
	iter, err := r.Iterator()
	if err != nil {
		return 0, err
	}
	count := 0
	for iter.Next() {
		count++
	}
	return count, iter.Err()
}

// At returns the i-th element of a list item. Elements before i are skipped
// by their headers only.
func (r Raw) At(i int) (Raw, error) {
	if r.kind != KindList {
		return Raw{}, fmt.Errorf("%w: expected list, got %v", ErrUnexpectedStructure, r.kind)
	}
	if i < 0 {
		return Raw{}, fmt.Errorf("%w: negative index %d", ErrNoSuchElement, i)
	}
	rest := r.content
	for pos := 0; ; pos++ {
		if len(rest) == 0 {
			return Raw{}, fmt.Errorf("%w: index %d, list has %d elements", ErrNoSuchElement, i, pos)
		}
		cur, next, err := Split(rest)
		if err != nil {
			return Raw{}, fmt.Errorf("element %d: %w", pos, err)
		}
		if pos == i {
			return cur, nil
		}
		rest = next
	}
}

// Iterator returns a lazy iterator over the elements of a list item.
func (r Raw) Iterator() (*Iterator, error) {
	if r.kind != KindList {
		return nil, fmt.Errorf("%w: expected list, got %v", ErrUnexpectedStructure, r.kind)
	}
	return NewIterator(r.content), nil
}

// Item materializes the full item tree rooted at this item.
func (r Raw) Item() (Item, error) {
	if r.kind == KindString {
		return String{Str: r.content}, nil
	}
	iter := NewIterator(r.content)
	items := []Item{}
	for iter.Next() {
		item, err := iter.Value().Item()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return List{Items: items}, nil
}

// Iterator walks a sequence of concatenated items, one at a time. It is
// restartable through Reset. After Next returned false, Err reports whether
// the sequence ended regularly.
type Iterator struct {
	data    []byte
	rest    []byte
	current Raw
	index   int
	err     error
}

// NewIterator creates an iterator over the items concatenated in buf.
func NewIterator(buf []byte) *Iterator {
	return &Iterator{data: buf, rest: buf, index: -1}
}

// Next advances to the next item.
func (i *Iterator) Next() bool {
	if i.err != nil || len(i.rest) == 0 {
		return false
	}
	cur, rest, err := Split(i.rest)
	if err != nil {
		i.err = fmt.Errorf("element %d: %w", i.index+1, err)
		return false
	}
	i.current, i.rest = cur, rest
	i.index++
	return true
}

// Value returns the item the iterator is positioned on.
func (i *Iterator) Value() Raw {
	return i.current
}

// Index returns the position of the current item, -1 before the first call
// to Next.
func (i *Iterator) Index() int {
	return i.index
}

func (i *Iterator) Err() error {
	return i.err
}

// Reset moves the iterator back before the first item.
func (i *Iterator) Reset() {
	i.rest = i.data
	i.current = Raw{}
	i.index = -1
	i.err = nil
}
