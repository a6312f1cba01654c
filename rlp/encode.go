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
	"encoding/binary"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
)

// The definition of the RLP encoding can be found here:
// https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp
//
// An item is either a string of bytes or a list of items. The first byte of
// an encoded item determines its kind and the size of its payload:
//
//	[0x00, 0x7f]  a single byte string, the byte itself
//	[0x80, 0xb7]  a string of 0-55 bytes, length = prefix - 0x80
//	[0xb8, 0xbf]  a longer string, prefix - 0xb7 bytes of big-endian length follow
//	[0xc0, 0xf7]  a list with 0-55 bytes of payload, length = prefix - 0xc0
//	[0xf8, 0xff]  a longer list, prefix - 0xf7 bytes of big-endian length follow

// Item is an interface for everything that can be RLP encoded by this package.
type Item interface {
	// write writes the RLP encoding of this item to the given writer.
	write(writer) writer

	// getEncodedLength computes the encoded length of this item in bytes.
	getEncodedLength() int
}

// Encode is a convenience function for serializing an item structure.
func Encode(item Item) []byte {
	return EncodeInto(make([]byte, 0, item.getEncodedLength()), item)
}

// EncodeInto appends the encoding of the given item to dst.
func EncodeInto(dst []byte, item Item) []byte {
	return item.write(writer(dst))
}

// writer appends encoded RLP content to a pre-allocated buffer.
type writer []byte

func (w writer) Write(data []byte) writer {
	return append(w, data...)
}

func (w writer) Put(c byte) writer {
	return append(w, c)
}

// String is the atomic ground type of an RLP input structure representing a
// (potentially empty) string of bytes.
type String struct {
	Str []byte
}

func (s String) write(writer writer) writer {
	if len(s.Str) == 1 && s.Str[0] < 0x80 {
		return writer.Write(s.Str)
	}
	writer = encodeLength(len(s.Str), 0x80, writer)
	return writer.Write(s.Str)
}

func (s String) getEncodedLength() int {
	l := len(s.Str)
	if l == 1 && s.Str[0] < 0x80 {
		return 1
	}
	return l + getEncodedLengthLength(l)
}

// Hash encodes a 32-byte hash as a string without converting it to a slice
// first.
type Hash struct {
	Hash *common.Hash
}

func (h Hash) write(writer writer) writer {
	writer = writer.Put(0x80 + common.HashSize)
	return writer.Write(h.Hash[:])
}

func (h Hash) getEncodedLength() int {
	return common.HashSize + 1
}

// List composes a list of items into a new item to be serialized.
type List struct {
	Items []Item
}

func (l List) write(writer writer) writer {
	writer = encodeLength(l.payloadLength(), 0xc0, writer)
	for _, item := range l.Items {
		writer = item.write(writer)
	}
	return writer
}

func (l List) getEncodedLength() int {
	sum := l.payloadLength()
	return sum + getEncodedLengthLength(sum)
}

func (l List) payloadLength() int {
	sum := 0
	for _, item := range l.Items {
		sum += item.getEncodedLength()
	}
	return sum
}

// Encoded embeds an already RLP encoded fragment in a new encoding.
type Encoded struct {
	Data []byte
}

func (e Encoded) write(writer writer) writer {
	return writer.Write(e.Data)
}

func (e Encoded) getEncodedLength() int {
	return len(e.Data)
}

// Uint64 encodes an unsigned integer as the string of its big-endian bytes
// without leading zeros. Zero is the empty string.
type Uint64 struct {
	Value uint64
}

func (u Uint64) write(writer writer) writer {
	if u.Value == 0 {
		return writer.Put(0x80)
	}
	if u.Value < 0x80 {
		return writer.Put(byte(u.Value))
	}
	var buffer [8]byte
	binary.BigEndian.PutUint64(buffer[:], u.Value)
	numBytes := getNumBytes(u.Value)
	writer = writer.Put(0x80 + numBytes)
	return writer.Write(buffer[8-numBytes:])
}

func (u Uint64) getEncodedLength() int {
	if u.Value < 0x80 {
		return 1
	}
	return 1 + int(getNumBytes(u.Value))
}

// BigInt encodes a non-negative big.Int the same way Uint64 encodes its
// values. A nil value is encoded as zero.
type BigInt struct {
	Value *big.Int
}

func (i BigInt) write(writer writer) writer {
	if i.Value == nil || i.Value.BitLen() <= 64 {
		return Uint64{Value: i.uint64()}.write(writer)
	}
	length := (i.Value.BitLen() + 7) / 8
	writer = encodeLength(length, 0x80, writer)
	start := len(writer)
	writer = append(writer, make([]byte, length)...)
	i.Value.FillBytes(writer[start:])
	return writer
}

func (i BigInt) getEncodedLength() int {
	if i.Value == nil || i.Value.BitLen() <= 64 {
		return Uint64{Value: i.uint64()}.getEncodedLength()
	}
	length := (i.Value.BitLen() + 7) / 8
	return getEncodedLengthLength(length) + length
}

func (i BigInt) uint64() uint64 {
	if i.Value == nil {
		return 0
	}
	return i.Value.Uint64()
}

// encodeLength writes the prefix of a string (offset 0x80) or a list
// (offset 0xc0) with a payload of the given length.
func encodeLength(length int, offset byte, writer writer) writer {
	if length < 56 {
		return writer.Put(offset + byte(length))
	}
	numBytesForLength := getNumBytes(uint64(length))
	writer = writer.Put(offset + 55 + numBytesForLength)
	for i := byte(0); i < numBytesForLength; i++ {
		writer = writer.Put(byte(length >> (8 * (numBytesForLength - i - 1))))
	}
	return writer
}

// getNumBytes computes the minimum number of bytes required to represent
// the given value in big-endian encoding.
func getNumBytes(value uint64) byte {
	if value == 0 {
		return 0
	}
	for res := byte(1); ; res++ {
		if value >>= 8; value == 0 {
			return res
		}
	}
}

func getEncodedLengthLength(length int) int {
	if length < 56 {
		return 1
	}
	return int(getNumBytes(uint64(length))) + 1
}
